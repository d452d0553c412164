// Package cli wires the cobra commands: a batch run over an alias list and
// a long-running API service.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/channel-scraper/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "channelscope",
	Short: "Resolve channel aliases and extract social links and engagement data",
	Long: `channelscope resolves a list of channel aliases to canonical channel
URLs, extracts social links from each channel's pages and buckets average
view counts into engagement categories, using a pool of headless browser
workers.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

// bootstrap loads configuration and builds the logger shared by commands.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	var logger *zap.Logger
	if cfg.LogLevel == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
