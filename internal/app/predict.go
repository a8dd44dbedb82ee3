package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"bond-sale-alerts/internal/predictor"
)

// Predict prints the full prediction detail for one holding: probability,
// confidence, timing, factors, reserve allocation, and explanations.
func (a *App) Predict(ctx context.Context, opts PredictOptions) error {
	if opts.BondID == "" {
		return fmt.Errorf("a bond id is required")
	}
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = 30
	}

	book := a.newBook()
	bond, ok := book.BondByID(opts.BondID)
	if !ok {
		return fmt.Errorf("bond %q is not listed", opts.BondID)
	}
	holding, ok := book.HoldingByBond(opts.BondID)
	if !ok {
		return fmt.Errorf("no holding in bond %q", opts.BondID)
	}

	snapshots, statusProvider, err := a.newProviders()
	if err != nil {
		return err
	}
	snapshot, err := snapshots.Snapshot(ctx)
	if err != nil {
		return err
	}
	status, err := statusProvider.Status(ctx)
	if err != nil {
		return err
	}

	engine := a.newEngine()
	result := engine.Predict(bond, holding, snapshot, status)
	price := engine.PredictPrice(bond, snapshot, opts.HorizonDays)
	allocation := predictor.PersonalizedReserve(holding, status)
	impact := predictor.ReserveImpactFor(holding, status)
	explanation := predictor.Explain(result, bond)

	out := os.Stdout
	fmt.Fprintf(out, "%s (%s)  model %s\n\n", bond.IssuerName, bond.ID, result.ModelVersion)
	fmt.Fprintf(out, "Sale probability:  %d%%\n", result.SaleProbability)
	fmt.Fprintf(out, "Confidence:        %d%%\n", result.Confidence)
	fmt.Fprintf(out, "Expected timing:   %s\n", result.ExpectedTiming)
	fmt.Fprintf(out, "Price impact:      %+.2f%%\n", result.PriceImpact)
	fmt.Fprintf(out, "Price in %d days:  %.2f (now %.2f)\n", opts.HorizonDays, price, bond.CurrentPrice)
	fmt.Fprintf(out, "Recommendation:    %s\n\n", result.Recommendation)

	fmt.Fprintf(out, "Key factors:\n  %s\n\n", strings.Join(result.Factors, "\n  "))

	if allocation.Eligible {
		fmt.Fprintf(out, "Reserve allocation: %s (%.1f%% of position)\n",
			allocation.Allocation.StringFixed(2), allocation.Percentage)
		fmt.Fprintf(out, "Remaining monthly capacity: %s\n", allocation.RemainingCapacity.StringFixed(2))
	} else if allocation.DaysUntilEligible != nil {
		fmt.Fprintf(out, "Reserve eligible in %d days\n", *allocation.DaysUntilEligible)
	} else {
		fmt.Fprintln(out, "Not reserve eligible")
	}
	fmt.Fprintf(out, "Reserve impact: %.1f (%s)\n\n", impact.Impact, impact.Reason)

	fmt.Fprintf(out, "Why:\n  %s\n  %s\n  %s\n  %s\n",
		explanation.Probability, explanation.Confidence, explanation.Timing, explanation.Recommendation)

	return nil
}
