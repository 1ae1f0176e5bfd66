package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCommand(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [stats.csv]",
		Short: "Import a stats CSV file into the database",
		Long: `Rank the players in the stats file and save the stats to the database,
replacing any earlier import. Uses the --csv file if no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.connString == "" {
				return errors.New("a database connection string is required, set --db or " + envConnString)
			}
			path := cfg.csvPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no stats file to import")
			}

			ctrl, cleanup, err := newController(cmd.Context(), cfg, path)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d players from %s\n", len(ctrl.PlayerNames(cmd.Context())), path)
			return nil
		},
	}
	return cmd
}
