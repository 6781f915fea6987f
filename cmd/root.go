package cmd

import (
	"fmt"
	"os"

	"github.com/doughepi/grain/core/logger"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "grain",
	Short: "Sync personal data into a document ingestion service",
	Long: `Grain collects messages, notes, email and local files and keeps them in sync
with an R2R-compatible document ingestion service without uploading duplicates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps reads better for a CLI.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			for _, hint := range errors.GetAllHints(err) {
				l.Info("hint: " + hint)
			}
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, toml or json); environment variables and .env still apply")
}
