package cli

import (
	"github.com/mww/fantasy_basketball/model"
	"github.com/spf13/cobra"
)

func newRankCommand(cfg *config) *cobra.Command {
	var pos string
	var limit int

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the fantasy rankings",
		Example: `  # Top 20 overall
  fantasy_basketball rank --limit 20

  # Point guards only
  fantasy_basketball rank --pos PG`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, cleanup, err := newController(cmd.Context(), cfg, cfg.csvPath)
			if err != nil {
				return err
			}
			defer cleanup()

			players := ctrl.Rankings(cmd.Context(), model.ParsePosition(pos))
			if limit > 0 && limit < len(players) {
				players = players[:limit]
			}
			renderPlayers(cmd.OutOrStdout(), players)
			return nil
		},
	}

	cmd.Flags().StringVar(&pos, "pos", "", "only rank players at this position, e.g. PG")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of players to print (0 for all)")
	return cmd
}
