package app

import (
	"context"
	"errors"
	"time"

	"bond-sale-alerts/internal/market"
	"bond-sale-alerts/internal/predictor"
	"bond-sale-alerts/internal/service"
)

// SimulateAlert runs one scoring cycle under overridden market conditions to
// exercise the alert path end to end.
func (a *App) SimulateAlert(ctx context.Context, opts SimulateOptions) error {
	if !a.Config.Alerting.Enabled {
		return errors.New("alerting is disabled in configuration")
	}

	mc := a.Config.Market
	sentiment := predictor.Sentiment(mc.Sentiment)
	if opts.Sentiment != "" {
		sentiment = predictor.Sentiment(opts.Sentiment)
	}
	trend := mc.TrendPct
	if opts.TrendPct != 0 {
		trend = opts.TrendPct
	}

	// Deterministic snapshot, no jitter: the simulation should be repeatable.
	snapshots := market.NewSimulator(market.SimulatorOptions{
		Sentiment:             sentiment,
		TrendPct:              trend,
		InterestRateChangePct: mc.InterestRateDelta,
		CreditSpreadChangePct: mc.CreditSpreadDelta,
		SectorTrends:          mc.SectorTrends,
		SectorPerformance:     mc.SectorPerformance,
	}, a.Logger)

	_, status, err := a.newProviders()
	if err != nil {
		return err
	}

	store := a.newStore()
	svc := service.New(a.Config, nil, a.newEngine(), a.newBook(),
		snapshots, status, store, store, a.newNotifier(), a.Logger)

	cycle := time.Now().UTC().Truncate(a.Config.Scheduler.Interval)
	if err := svc.ProcessCycle(ctx, cycle); err != nil {
		return err
	}

	alerts := store.RecentAlerts(0)
	a.Logger.Info().Int("alerts", len(alerts)).
		Str("sentiment", string(sentiment)).
		Float64("trend_pct", trend).
		Msg("simulation cycle complete")
	return nil
}
