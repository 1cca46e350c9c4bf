package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/modcache/internal/app"
	"go.trai.ch/modcache/internal/ui/style"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checksum, _ := cmd.Flags().GetBool("checksum")

			entries, err := c.app.List(cmd.Context(), options(cmd), app.ListOptions{Checksum: checksum})
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			if len(entries) == 0 {
				p.line(p.muted.Render("no cache entries"))
				return nil
			}

			headers := []string{"", "FINGERPRINT", "STATE", "MODIFIED"}
			if checksum {
				headers = append(headers, "CHECKSUM")
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				mark := style.Circle
				if e.Published {
					mark = style.Dot
				}

				state := "partial"
				if e.Complete {
					state = "complete"
				}

				row := []string{mark, e.Fingerprint.String(), state, e.ModTime.UTC().Format(time.RFC3339)}
				if checksum {
					row = append(row, e.Checksum)
				}
				rows = append(rows, row)
			}

			p.table(headers, rows)
			return nil
		},
	}

	cmd.Flags().Bool("checksum", false, "Compute the content checksum of every complete entry")

	return cmd
}
