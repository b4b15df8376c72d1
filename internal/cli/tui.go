package cli

import (
	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridnav/internal/tui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit endpoints and search interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			sess, err := newSession(s)
			if err != nil {
				return err
			}

			return tui.Run(sess, cmd.InOrStdin(), cmd.OutOrStdout(), useColor(cmd))
		},
	}
}
