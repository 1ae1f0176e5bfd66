package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/mww/fantasy_basketball/web"
	"github.com/spf13/cobra"
)

func newServeCommand(cfg *config) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Load and rank the stats, then serve the search, rankings and compare pages.

The /admin routes use basic auth with ADMIN_USER and ADMIN_PASSWORD. They are
disabled if ADMIN_PASSWORD is not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("port") {
				p, err := portFromEnv()
				if err != nil {
					return err
				}
				port = p
			}
			return runServe(cmd, cfg, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", defaultPort, "port to listen on (env "+envPort+")")
	return cmd
}

func portFromEnv() (int, error) {
	portNum := defaultPort
	port := os.Getenv(envPort)
	if port != "" {
		var err error
		portNum, err = strconv.Atoi(port)
		if err != nil {
			return 0, fmt.Errorf("error parsing port number: %w", err)
		}
	}
	return portNum, nil
}

func runServe(cmd *cobra.Command, cfg *config, port int) error {
	ctrl, cleanup, err := newController(cmd.Context(), cfg, cfg.csvPath)
	if err != nil {
		return err
	}
	defer cleanup()

	admin := web.AdminAuth{
		User:     os.Getenv(envAdminUser),
		Password: os.Getenv(envAdminPassword),
	}
	if admin.User == "" {
		admin.User = defaultAdminUser
	}

	server, err := web.NewServer(port, ctrl, admin)
	if err != nil {
		return fmt.Errorf("error creating new web server: %w", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
	return nil
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
