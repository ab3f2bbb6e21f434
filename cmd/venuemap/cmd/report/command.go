// Package report provides the report command.
package report

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/venuemap/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/emoji"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/report"
)

// NewCommand creates the report command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "market",
		Short:   "Render the latest snapshot as a Markdown briefing",
		Example: `  venuemap report
  venuemap report --title "Weekly Market Report" --out report.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			title, _ := cmd.Flags().GetString("title")
			out, _ := cmd.Flags().GetString("out")

			client, err := app.Client()
			if err != nil {
				return err
			}
			tgts, err := app.Targets()
			if err != nil {
				return err
			}
			market, err := client.Market(cmd.Context())
			if err != nil {
				return err
			}
			if market.Empty() {
				return errors.NewNotFoundError("snapshot", "")
			}

			in := report.Input{
				Title:         title,
				Location:      tgts.Location,
				SubjectMarker: tgts.Subject,
				Snapshot:      market.Latest,
				History:       market.History,
				Palette:       tgts.Palette,
			}

			if out == "" || out == "-" {
				return report.Write(cmd.OutOrStdout(), in)
			}
			if err := writeFile(out, in); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s Report written to %s\n", emoji.Success, out)
			return nil
		},
	}

	cmd.Flags().String("title", "Market Report", "report title")
	cmd.Flags().StringP("out", "O", "", "write the report to this file instead of stdout")

	return cmd
}

func writeFile(path string, in report.Input) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapIO("close", path, cerr)
		}
	}()
	return report.Write(f, in)
}
