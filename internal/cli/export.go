package cli

import (
	"github.com/spf13/cobra"

	"bond-sale-alerts/internal/app"
)

var (
	exportPNGPath   string
	exportCSVPath   string
	exportBond      string
	exportCycles    int
	exportMaxPoints int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Simulate scoring cycles and export them as CSV and/or PNG chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			PNGPath:   exportPNGPath,
			CSVPath:   exportCSVPath,
			BondID:    exportBond,
			Cycles:    exportCycles,
			MaxPoints: exportMaxPoints,
		}
		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "Path to write PNG chart (requires --bond)")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Path to write CSV data")
	exportCmd.Flags().StringVar(&exportBond, "bond", "", "Restrict the export to one bond")
	exportCmd.Flags().IntVar(&exportCycles, "cycles", 0, "Scoring cycles to simulate (defaults to config)")
	exportCmd.Flags().IntVar(&exportMaxPoints, "max-points", 0, "Maximum data points to export (defaults to config)")
}
