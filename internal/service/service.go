// Package service orchestrates the refresh loop: snapshot the market, rescore
// every holding, record the cycle, and raise sale-opportunity alerts.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"bond-sale-alerts/internal/alerting"
	"bond-sale-alerts/internal/config"
	"bond-sale-alerts/internal/history"
	"bond-sale-alerts/internal/market"
	"bond-sale-alerts/internal/portfolio"
	"bond-sale-alerts/internal/predictor"
	"bond-sale-alerts/internal/scheduler"
)

// priceHorizonDays is the horizon recorded with each sample's price estimate.
const priceHorizonDays = 30

// Service drives scoring cycles over the portfolio.
type Service struct {
	scheduler  *scheduler.Scheduler
	engine     *predictor.Engine
	book       *portfolio.Book
	snapshots  market.SnapshotProvider
	platform   market.StatusProvider
	store      history.SampleStore
	alertStore history.AlertStore
	notifier   alerting.Notifier
	logger     zerolog.Logger

	threshold float64
	cooldown  time.Duration
	channels  []string
	alertsOn  bool

	// lastAlert tracks the most recent alert cycle per bond so the cooldown
	// is measured in cycle time, not wall time.
	lastAlert map[string]time.Time
}

// New constructs the scoring service.
func New(cfg *config.Config, sched *scheduler.Scheduler, engine *predictor.Engine, book *portfolio.Book, snapshots market.SnapshotProvider, platform market.StatusProvider, store history.SampleStore, alertStore history.AlertStore, notifier alerting.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		scheduler:  sched,
		engine:     engine,
		book:       book,
		snapshots:  snapshots,
		platform:   platform,
		store:      store,
		alertStore: alertStore,
		notifier:   notifier,
		logger:     logger.With().Str("component", "service").Logger(),
		threshold:  cfg.Alerting.ThresholdPct,
		cooldown:   cfg.Alerting.Cooldown,
		channels:   cfg.Alerting.Channels,
		alertsOn:   cfg.Alerting.Enabled,
		lastAlert:  make(map[string]time.Time),
	}
}

// Run begins the aligned scoring loop.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return fmt.Errorf("scheduler not configured")
	}
	return s.scheduler.Run(ctx, s.ProcessCycle)
}

// ProcessCycle scores every holding against a fresh snapshot and raises
// alerts for holdings that cross the probability threshold.
func (s *Service) ProcessCycle(ctx context.Context, cycle time.Time) error {
	snapshot, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("fetch market snapshot: %w", err)
	}

	status, err := s.platform.Status(ctx)
	if err != nil {
		return fmt.Errorf("fetch platform status: %w", err)
	}

	holdings := s.book.Holdings()
	results := s.engine.PredictBatch(holdings, s.book, snapshot, status)

	for i := range holdings {
		bondID := holdings[i].BondID
		result, ok := results[bondID]
		if !ok {
			continue
		}
		bond, _ := s.book.BondByID(bondID)

		sample := history.PredictionSample{
			Cycle:           cycle,
			BondID:          bondID,
			Issuer:          bond.IssuerName,
			SaleProbability: result.SaleProbability,
			Confidence:      result.Confidence,
			ExpectedTiming:  result.ExpectedTiming,
			PriceImpact:     result.PriceImpact,
			PredictedPrice:  s.engine.PredictPrice(bond, snapshot, priceHorizonDays),
			Recommendation:  result.Recommendation,
			Fallback:        result.Fallback,
			CreatedAt:       time.Now().UTC(),
		}
		if s.store != nil {
			s.store.AppendSample(sample)
		}

		s.logger.Info().Time("cycle", cycle).
			Str("bond", bondID).
			Int("sale_probability", result.SaleProbability).
			Int("confidence", result.Confidence).
			Str("timing", result.ExpectedTiming).
			Msg("holding scored")

		s.maybeAlert(ctx, cycle, bond, result)
	}

	return nil
}

func (s *Service) maybeAlert(ctx context.Context, cycle time.Time, bond *predictor.Bond, result predictor.PredictionResult) {
	if !s.alertsOn || s.notifier == nil || s.threshold <= 0 {
		return
	}
	if result.Fallback || float64(result.SaleProbability) < s.threshold {
		return
	}
	if last, ok := s.lastAlert[bond.ID]; ok && cycle.Sub(last) < s.cooldown {
		s.logger.Debug().Str("bond", bond.ID).Time("cycle", cycle).Msg("alert suppressed by cooldown")
		return
	}
	s.lastAlert[bond.ID] = cycle

	if s.alertStore != nil {
		s.alertStore.AppendAlert(history.AlertRecord{
			Cycle:           cycle,
			BondID:          bond.ID,
			SaleProbability: result.SaleProbability,
			ThresholdPct:    s.threshold,
			ExpectedTiming:  result.ExpectedTiming,
			Channels:        s.channels,
			CreatedAt:       time.Now().UTC(),
		})
	}

	note := alerting.Notification{
		Cycle:           cycle,
		BondID:          bond.ID,
		Issuer:          bond.IssuerName,
		SaleProbability: result.SaleProbability,
		Confidence:      result.Confidence,
		ThresholdPct:    s.threshold,
		ExpectedTiming:  result.ExpectedTiming,
		Recommendation:  result.Recommendation,
		Channels:        s.channels,
	}
	if err := s.notifier.Notify(ctx, note); err != nil {
		s.logger.Error().Err(err).Str("bond", bond.ID).Time("cycle", cycle).Msg("failed to dispatch alert")
	}
}
