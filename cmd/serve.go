package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"contacthub/internal/app"
	"contacthub/internal/logger"
)

func newServeCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Configure(cfg.LogLevel, cfg.Environment)
			log := logger.GetLogger()
			defer logger.Close()

			a, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- a.Listen()
			}()

			select {
			case err := <-serveErr:
				_ = a.Shutdown(shutdownTimeout)
				return fmt.Errorf("server failed: %w", err)
			case sig := <-quit:
				log.Infow("Shutting down server...", "signal", sig.String())
			}

			if err := a.Shutdown(shutdownTimeout); err != nil {
				log.Errorw("Error during shutdown", "error", err)
				return err
			}
			log.Info("Server gracefully stopped")
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Maximum time to wait for graceful shutdown")

	return cmd
}
