package main

import (
	"fmt"
	"os"

	"github.com/OFFIS-RIT/wikigraph/internal/config"
	"github.com/OFFIS-RIT/wikigraph/internal/util"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger"
	"github.com/OFFIS-RIT/wikigraph/pkg/logger/console"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "wikigraph",
		Short:         "Build company knowledge graphs from Wikipedia infoboxes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(newCrawlCmd())
	rootCmd.AddCommand(newServeCmd())
}

// setup loads .env and the config file and initializes the console logger.
func setup() (config.Config, error) {
	util.LoadEnv()

	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: cfg.Log.Debug,
		JSON:  cfg.Log.Format == "json",
	}))
	return cfg, nil
}
