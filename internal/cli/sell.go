package cli

import (
	"github.com/spf13/cobra"

	"bond-sale-alerts/internal/app"
)

var (
	sellBond     string
	sellInstant  bool
	sellPrice    float64
	sellQuantity int
)

var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sell a holding instantly via the reserve fund or list it peer-to-peer",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.SellOptions{
			BondID:   sellBond,
			Instant:  sellInstant,
			Price:    sellPrice,
			Quantity: sellQuantity,
		}
		return getApp().Sell(cmd.Context(), opts)
	},
}

func init() {
	sellCmd.Flags().StringVar(&sellBond, "bond", "", "Bond ID of the holding to sell")
	sellCmd.Flags().BoolVar(&sellInstant, "instant", false, "Settle instantly against the reserve fund")
	sellCmd.Flags().Float64Var(&sellPrice, "price", 0, "Listing price (defaults to market price)")
	sellCmd.Flags().IntVar(&sellQuantity, "quantity", 0, "Units to list (defaults to the whole holding)")
	_ = sellCmd.MarkFlagRequired("bond")
}
