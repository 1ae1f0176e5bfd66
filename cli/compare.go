package cli

import (
	"github.com/spf13/cobra"
)

func newCompareCommand(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compare <player> <player>",
		Short:   "Compare the fantasy points of two players",
		Example: `  fantasy_basketball compare "Stephen Curry" "LeBron James"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := newController(cmd.Context(), cfg, cfg.csvPath)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := ctrl.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			renderComparison(cmd.OutOrStdout(), c)
			return nil
		},
	}
	return cmd
}
