package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"bond-sale-alerts/internal/service"
)

// Show scores the portfolio once and prints the resulting predictions.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	snapshots, status, err := a.newProviders()
	if err != nil {
		return err
	}

	store := a.newStore()
	svc := service.New(a.Config, nil, a.newEngine(), a.newBook(),
		snapshots, status, store, nil, nil, a.Logger)

	cycle := time.Now().UTC().Truncate(a.Config.Scheduler.Interval)
	if err := svc.ProcessCycle(ctx, cycle); err != nil {
		return err
	}

	samples := store.RecentSamples(opts.Limit)
	if len(samples) == 0 {
		fmt.Fprintln(os.Stdout, "no holdings scored")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Bond\tIssuer\tProb%\tConf%\tImpact%\tEst.Price\tTiming\tRecommendation")

	for _, sample := range samples {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%d\t%d\t%+.2f\t%.2f\t%s\t%s\n",
			sample.BondID,
			sample.Issuer,
			sample.SaleProbability,
			sample.Confidence,
			sample.PriceImpact,
			sample.PredictedPrice,
			sample.ExpectedTiming,
			sanitizeInline(sample.Recommendation),
		)
	}

	writer.Flush()
	return nil
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
