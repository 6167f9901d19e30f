package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smoothies/internal/config"
	"smoothies/internal/logging"
)

var (
	cfg    = config.New()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "smoothies",
	Short: "Custom smoothie ordering service",
	Long: `smoothies lets customers pick up to five fruits, shows nutrition data
for each of them and records the order.

Run "smoothies serve" for the web form or "smoothies order" for the terminal flow.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ApplyEnv(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		var err error
		logger, err = logging.New(cfg.Verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cfg.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, orderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
