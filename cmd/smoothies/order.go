package main

import (
	"os"

	"github.com/spf13/cobra"

	"smoothies/internal/tui"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Order a smoothie from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		flow := tui.NewFlow(a.catalogs, a.enricher, a.orders, tui.NewSurveyPrompter(), os.Stdout, logger)
		return flow.Run(cmd.Context())
	},
}
