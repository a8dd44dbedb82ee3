package market

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"bond-sale-alerts/internal/predictor"
)

// SimulatorOptions parameterise the simulated market feed.
type SimulatorOptions struct {
	Sentiment             predictor.Sentiment
	TrendPct              float64
	InterestRateChangePct float64
	CreditSpreadChangePct float64
	SectorTrends          map[string]float64
	SectorPerformance     map[string]float64
	// JitterPct adds uniform noise of ±JitterPct to the market and sector
	// trends. Zero keeps the feed fully deterministic.
	JitterPct float64
	// Rand is the noise source. Required when JitterPct is non-zero so
	// reproducibility stays in the caller's hands.
	Rand *rand.Rand
	Now  func() time.Time
}

// Simulator produces market snapshots from configured base conditions.
// Randomness never reaches the scoring engine; it only shapes the snapshot
// handed in.
type Simulator struct {
	opts   SimulatorOptions
	logger zerolog.Logger
}

// NewSimulator constructs a simulated snapshot provider.
func NewSimulator(opts SimulatorOptions, logger zerolog.Logger) *Simulator {
	if opts.Sentiment == "" {
		opts.Sentiment = predictor.SentimentNeutral
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Simulator{
		opts:   opts,
		logger: logger.With().Str("component", "market_simulator").Logger(),
	}
}

// Snapshot builds a fresh immutable snapshot. Maps are copied so callers can
// never share mutable state across cycles.
func (s *Simulator) Snapshot(ctx context.Context) (*predictor.MarketSnapshot, error) {
	_ = ctx

	snapshot := &predictor.MarketSnapshot{
		Sentiment:             s.opts.Sentiment,
		TrendPct:              s.jitter(s.opts.TrendPct),
		InterestRateChangePct: s.opts.InterestRateChangePct,
		CreditSpreadChangePct: s.opts.CreditSpreadChangePct,
		LastUpdated:           s.opts.Now(),
		SectorTrends:          make(map[string]float64, len(s.opts.SectorTrends)),
		SectorPerformance:     make(map[string]float64, len(s.opts.SectorPerformance)),
	}

	for sector, trend := range s.opts.SectorTrends {
		snapshot.SectorTrends[sector] = s.jitter(trend)
	}
	for sector, perf := range s.opts.SectorPerformance {
		snapshot.SectorPerformance[sector] = perf
	}

	s.logger.Debug().
		Str("sentiment", string(snapshot.Sentiment)).
		Float64("trend_pct", snapshot.TrendPct).
		Msg("snapshot generated")

	return snapshot, nil
}

func (s *Simulator) jitter(v float64) float64 {
	if s.opts.JitterPct <= 0 || s.opts.Rand == nil {
		return v
	}
	return v + (s.opts.Rand.Float64()*2-1)*s.opts.JitterPct
}

var _ SnapshotProvider = (*Simulator)(nil)
