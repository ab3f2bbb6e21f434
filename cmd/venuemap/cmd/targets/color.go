package targets

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/output"
	"github.com/agentstation/venuemap/internal/cmd/table"
)

// NewColorCommand creates the color command.
func NewColorCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "color <venue-name>...",
		GroupID: "market",
		Short:   "Show the chart color assigned to venue names",
		Example: `  venuemap color "Casino Otium" "Eclipse Casino"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Targets()
			if err != nil {
				return err
			}

			colors := make(map[string]string, len(args))
			for _, name := range args {
				colors[name] = cfg.ColorOf(name)
			}
			return output.Print(cmd.OutOrStdout(), output.Format(app.OutputFormat()), colors, func() table.Data {
				return table.ColorsToTableData(args, cfg.Palette)
			})
		},
	}
}
