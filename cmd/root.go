package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"contacthub/internal/config"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "contacthub",
	Short: "Contact management API server and terminal client.",
	Long: `contacthub stores contacts (name, email, phone and an optional message)
behind a small REST API, and ships a terminal client for adding, searching
and deleting them.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (env vars take precedence)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newEventsCommand())
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.New(), cfgFile)
}
