package main

import (
	"context"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"

	"credential_store_backend/internal/config"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Without a subcommand it starts the server.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "credential-store",
		Short:        "Credential store and session service",
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, _ []string) error { return runServer() },
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewCheckConfigCmd())
	return cmd
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  func(cmd *cobra.Command, _ []string) error { return runServer() },
	}
}

// NewCheckConfigCmd creates the check-config subcommand.
func NewCheckConfigCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "check-config",
		Short: "Load and validate the configuration, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !quiet {
				cmd.Printf("store_driver=%s listen=%s:%s gin_mode=%s log_level=%s registry_report=%q\n",
					cfg.StoreDriver, cfg.ServerHost, cfg.ServerPort, cfg.GinMode, cfg.LogLevel, cfg.RegistryReportSchedule)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report errors")
	return cmd
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("FATAL: Failed to load configuration: %v", err)
		return err
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Printf("FATAL: Failed to initialize server: %v", err)
		return err
	}
	defer cleanup()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)
	case err := <-serverErr:
		if err != nil {
			log.Printf("ERROR: Server failed: %v", err)
		}
		return err
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
		return err
	}
	log.Println("INFO: Server shutdown complete.")
	return nil
}
