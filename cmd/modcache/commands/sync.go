package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Install the dependencies if needed and publish the matching cache entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.app.Sync(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}

			action := "reused"
			if res.Installed {
				action = "installed"
			}

			p := newPrinter(cmd.OutOrStdout())
			p.field("fingerprint", res.Fingerprint.String())
			p.field("entry", res.EntryPath)
			p.field("link", res.LinkPath)
			p.field("action", action)
			return nil
		},
	}
}
