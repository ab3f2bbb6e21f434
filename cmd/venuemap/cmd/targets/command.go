// Package targets provides commands that inspect the market definition.
package targets

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/output"
	"github.com/agentstation/venuemap/internal/cmd/table"
)

// NewCommand creates the targets command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "targets",
		GroupID: "market",
		Short:   "Show the configured venues, subject and location",
		Long: `Targets prints the market definition used for syncs: the venues
asked about, the subject venue that benchmarks compare against and the
location sent to the provider. Load a different definition with --targets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Targets()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format := output.Format(app.OutputFormat()); format {
			case output.FormatYAML:
				// The definition file format itself, so output can seed --targets.
				data, err := cfg.Marshal()
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			default:
				return output.Print(w, format, cfg, func() table.Data {
					return table.TargetsToTableData(cfg)
				})
			}
		},
	}
}
