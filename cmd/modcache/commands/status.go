package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/modcache/internal/app"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare the published link against the current inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checksum, _ := cmd.Flags().GetBool("checksum")
			check, _ := cmd.Flags().GetBool("check")

			st, err := c.app.Status(cmd.Context(), options(cmd), app.StatusOptions{Checksum: checksum})
			if err != nil {
				return err
			}

			target := st.PublishedTarget
			p := newPrinter(cmd.OutOrStdout())
			if target == "" {
				target = p.muted.Render("(none)")
			}

			p.field("fingerprint", st.Fingerprint.String())
			p.field("tool", st.ToolVersion)
			p.field("platform", st.Platform.String())
			p.field("entry", st.ExpectedEntry)
			p.field("link", st.LinkPath)
			p.field("target", target)
			p.flag("complete", st.Complete, "yes", "no")
			p.flag("up to date", st.UpToDate, "yes", "no")
			if st.Checksum != "" {
				p.field("checksum", st.Checksum)
			}

			if check && !st.UpToDate {
				err := zerr.With(domain.ErrNotUpToDate, "link", st.LinkPath)
				return zerr.With(err, "expected", st.ExpectedEntry)
			}
			return nil
		},
	}

	cmd.Flags().Bool("checksum", false, "Compute the content checksum of the expected entry")
	cmd.Flags().Bool("check", false, "Exit with an error when the published link is not up to date")

	return cmd
}
