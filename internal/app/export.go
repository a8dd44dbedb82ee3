package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"bond-sale-alerts/internal/history"
	"bond-sale-alerts/internal/service"
)

// Export runs a batch of simulated scoring cycles in process and renders the
// recorded predictions as CSV and/or PNG. With no persistence, the history is
// generated fresh on every invocation.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}
	if opts.PNGPath != "" && opts.BondID == "" {
		return errors.New("--png charts a single bond; --bond is required")
	}

	cycles := a.Config.ResolveCycles(opts.Cycles)
	maxPoints := a.Config.ResolveMaxPoints(opts.MaxPoints)

	snapshots, status, err := a.newProviders()
	if err != nil {
		return err
	}
	store := a.newStore()
	svc := service.New(a.Config, nil, a.newEngine(), a.newBook(),
		snapshots, status, store, nil, nil, a.Logger)

	base := time.Now().UTC().Truncate(a.Config.Scheduler.Interval)
	for i := 0; i < cycles; i++ {
		cycle := base.Add(time.Duration(i) * a.Config.Scheduler.Interval)
		if err := svc.ProcessCycle(ctx, cycle); err != nil {
			return fmt.Errorf("cycle %d: %w", i, err)
		}
	}

	samples := a.collectSamples(store, opts.BondID)
	if len(samples) == 0 {
		a.Logger.Info().Msg("no samples recorded for export")
		return nil
	}

	downsampled := downsampleSamples(samples, maxPoints)
	a.Logger.Info().Int("total", len(samples)).Int("exported", len(downsampled)).Msg("exporting samples")

	if opts.CSVPath != "" {
		if err := writeSamplesCSV(opts.CSVPath, downsampled); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeSamplesPNG(opts.PNGPath, opts.BondID, downsampled); err != nil {
			return err
		}
	}

	return nil
}

// collectSamples returns recorded samples in cycle order, optionally
// restricted to one bond.
func (a *App) collectSamples(store *history.Store, bondID string) []history.PredictionSample {
	if bondID != "" {
		return store.SamplesForBond(bondID)
	}
	recent := store.RecentSamples(0)
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent
}

func downsampleSamples(samples []history.PredictionSample, max int) []history.PredictionSample {
	if max <= 0 || len(samples) <= max {
		return samples
	}

	result := make([]history.PredictionSample, 0, max)
	step := float64(len(samples)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(samples) {
			idx = len(samples) - 1
		}
		result = append(result, samples[idx])
	}
	return result
}

func writeSamplesCSV(path string, samples []history.PredictionSample) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"cycle_ts", "bond", "sale_probability_pct", "confidence_pct", "expected_timing", "price_impact_pct", "predicted_price", "recommendation", "fallback"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, sample := range samples {
		record := []string{
			sample.Cycle.Format(time.RFC3339),
			sample.BondID,
			strconv.Itoa(sample.SaleProbability),
			strconv.Itoa(sample.Confidence),
			sample.ExpectedTiming,
			strconv.FormatFloat(sample.PriceImpact, 'f', 2, 64),
			strconv.FormatFloat(sample.PredictedPrice, 'f', 2, 64),
			sample.Recommendation,
			strconv.FormatBool(sample.Fallback),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeSamplesPNG(path, bondID string, samples []history.PredictionSample) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]time.Time, len(samples))
	probability := make([]float64, len(samples))
	confidence := make([]float64, len(samples))
	price := make([]float64, len(samples))

	for i, sample := range samples {
		x[i] = sample.Cycle
		probability[i] = float64(sample.SaleProbability)
		confidence[i] = float64(sample.Confidence)
		price[i] = sample.PredictedPrice
	}

	pctFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.0f")
	}
	graph := chart.Chart{
		Title:  fmt.Sprintf("Sale outlook: %s", bondID),
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Percent",
			ValueFormatter: pctFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name: "Predicted price",
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.2f")
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Sale probability %",
				XValues: x,
				YValues: probability,
			},
			chart.TimeSeries{
				Name:    "Confidence %",
				XValues: x,
				YValues: confidence,
			},
			chart.TimeSeries{
				Name:    "Predicted price",
				XValues: x,
				YValues: price,
				YAxis:   chart.YAxisSecondary,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
