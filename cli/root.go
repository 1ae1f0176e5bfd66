// Package cli provides the command-line interface for fantasy_basketball.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/itbasis/go-clock"
	"github.com/mww/fantasy_basketball/controller"
	"github.com/mww/fantasy_basketball/db"
	"github.com/spf13/cobra"
)

const (
	envCSVPath       = "STATS_CSV_PATH"
	envConnString    = "POSTGRES_CONN_STR"
	envPort          = "PORT"
	envAdminUser     = "ADMIN_USER"
	envAdminPassword = "ADMIN_PASSWORD"

	defaultCSVPath   = "nbastats.csv"
	defaultPort      = 3000
	defaultAdminUser = "admin"
)

type config struct {
	csvPath    string
	connString string
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:   "fantasy_basketball",
		Short: "Fantasy basketball rankings",
		Long: `Ranks basketball players by fantasy points computed from a per-game stats CSV file.

The stats file needs a header row with at least the Player and Pos columns. Stat
columns that are missing count as zero.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("csv") {
				if p := os.Getenv(envCSVPath); p != "" {
					cfg.csvPath = p
				}
			}
			if !flags.Changed("db") {
				cfg.connString = os.Getenv(envConnString)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.csvPath, "csv", defaultCSVPath, "path to the stats CSV file (env "+envCSVPath+")")
	rootCmd.PersistentFlags().StringVar(&cfg.connString, "db", "", "postgres connection string (env "+envConnString+")")

	rootCmd.AddCommand(newServeCommand(cfg))
	rootCmd.AddCommand(newRankCommand(cfg))
	rootCmd.AddCommand(newSearchCommand(cfg))
	rootCmd.AddCommand(newCompareCommand(cfg))
	rootCmd.AddCommand(newImportCommand(cfg))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newController connects to the database if there is a connection string,
// creates a controller and loads the rankings. The returned func closes the
// database.
func newController(ctx context.Context, cfg *config, csvPath string) (controller.C, func(), error) {
	clock := clock.New()

	var database db.DB
	if cfg.connString != "" {
		var err error
		database, err = db.New(ctx, cfg.connString, clock)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot connect to DB: %w", err)
		}
	}
	cleanup := func() {
		if database != nil {
			database.Close()
		}
	}

	ctrl, err := controller.New(clock, database, csvPath)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("error creating a new controller: %w", err)
	}

	if err := ctrl.Reload(ctx); err != nil {
		if !errors.Is(err, db.ErrNoStats) {
			cleanup()
			return nil, nil, err
		}
		log.Printf("no stats have been imported yet")
	}
	return ctrl, cleanup, nil
}
