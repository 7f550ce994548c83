package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contacthub/internal/logger"
	"contacthub/internal/tui"
	"contacthub/pkg/client"
)

func newTUICommand() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal client against a running API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// The screen belongs to the UI; logs go to a file or nowhere.
			if logFile != "" {
				zcfg := zap.NewDevelopmentConfig()
				zcfg.OutputPaths = []string{logFile}
				zcfg.ErrorOutputPaths = []string{logFile}
				l, err := zcfg.Build()
				if err != nil {
					return err
				}
				logger.SetLogger(l.Sugar())
			} else {
				logger.SetLogger(zap.NewNop().Sugar())
			}
			defer logger.Close()

			api := client.New(client.Config{BaseURL: cfg.APIURL, Timeout: cfg.RequestTimeout})
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return tui.Run(ctx, api)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", os.Getenv("CONTACTHUB_TUI_LOG"), "write logs to this file while the UI runs")

	return cmd
}
