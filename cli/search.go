package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for players by name",
		Long: `Search for players whose name contains the query, ignoring case.

The query can also filter by position and team with pos: and team: tags.`,
		Example: `  fantasy_basketball search curry
  fantasy_basketball search "pos:C team:DEN"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := newController(cmd.Context(), cfg, cfg.csvPath)
			if err != nil {
				return err
			}
			defer cleanup()

			results, err := ctrl.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			renderPlayers(cmd.OutOrStdout(), results)
			return nil
		},
	}
	return cmd
}
