package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the fingerprint of the current dependency file and installer version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fp, err := c.app.Fingerprint(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), fp.String())
			return nil
		},
	}
}
