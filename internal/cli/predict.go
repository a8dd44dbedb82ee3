package cli

import (
	"github.com/spf13/cobra"

	"bond-sale-alerts/internal/app"
)

var (
	predictBond    string
	predictHorizon int
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Print the full sale prediction for one holding",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.PredictOptions{
			BondID:      predictBond,
			HorizonDays: predictHorizon,
		}
		return getApp().Predict(cmd.Context(), opts)
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictBond, "bond", "", "Bond ID of the holding to score")
	predictCmd.Flags().IntVar(&predictHorizon, "horizon", 30, "Price forecast horizon in days")
	_ = predictCmd.MarkFlagRequired("bond")
}
