package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smoothies/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file.yaml]",
	Short: "Load fruit options from a YAML file",
	Long: `Upserts fruit options into the reference table. The file looks like:

  fruits:
    - name: Apple
      search_on: apple
    - name: Guava
      search_on: ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		options, err := database.LoadSeedFile(args[0])
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		n, err := database.Seed(cmd.Context(), a.db, options)
		if err != nil {
			return err
		}
		logger.Info("fruit options seeded", zap.Int("count", n), zap.String("file", args[0]))
		return nil
	},
}
