package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smoothies/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the fruit_options and orders tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewDB(cfg.DatabaseURI)
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		defer database.CloseDB(db, logger)

		if err := database.InitSchema(db, cfg.DatabaseURI); err != nil {
			return err
		}
		logger.Info("schema ready")
		return nil
	},
}
