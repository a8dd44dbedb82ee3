package cli

import (
	"github.com/spf13/cobra"

	"bond-sale-alerts/internal/app"
)

var (
	simulateSentiment string
	simulateTrend     float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate-alert",
	Short: "Run one scoring cycle under overridden market conditions",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.SimulateOptions{
			Sentiment: simulateSentiment,
			TrendPct:  simulateTrend,
		}
		return getApp().SimulateAlert(cmd.Context(), opts)
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateSentiment, "sentiment", "", "Market sentiment override (very_negative..very_positive)")
	simulateCmd.Flags().Float64Var(&simulateTrend, "trend", 0, "Market trend percent override")
}
