// Package app wires configuration, the scoring engine, and the simulated
// marketplace into the CLI commands.
package app

import (
	"context"
	"errors"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bond-sale-alerts/internal/alerting"
	"bond-sale-alerts/internal/config"
	"bond-sale-alerts/internal/history"
	"bond-sale-alerts/internal/market"
	"bond-sale-alerts/internal/portfolio"
	"bond-sale-alerts/internal/predictor"
	"bond-sale-alerts/internal/scheduler"
	"bond-sale-alerts/internal/service"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newBook() *portfolio.Book {
	book := portfolio.NewBook()
	portfolio.Seed(book)
	return book
}

func (a *App) newEngine() *predictor.Engine {
	return predictor.New(predictor.Options{ModelVersion: a.Config.Model.Version}, a.Logger)
}

func (a *App) newStore() *history.Store {
	return history.NewStore(a.Config.History.MaxSamples, a.Config.History.MaxAlerts)
}

func (a *App) newNotifier() alerting.Notifier {
	return alerting.NewLogNotifier(a.Logger)
}

func (a *App) newProviders() (market.SnapshotProvider, market.StatusProvider, error) {
	mc := a.Config.Market

	var rng *rand.Rand
	if mc.JitterPct > 0 {
		seed := mc.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	sim := market.NewSimulator(market.SimulatorOptions{
		Sentiment:             predictor.Sentiment(mc.Sentiment),
		TrendPct:              mc.TrendPct,
		InterestRateChangePct: mc.InterestRateDelta,
		CreditSpreadChangePct: mc.CreditSpreadDelta,
		SectorTrends:          mc.SectorTrends,
		SectorPerformance:     mc.SectorPerformance,
		JitterPct:             mc.JitterPct,
		Rand:                  rng,
	}, a.Logger)

	rc := a.Config.Reserve
	status, err := market.NewReserveStatus(market.StatusOptions{
		ReserveTotal:     decimal.NewFromFloat(rc.Total),
		Available:        decimal.NewFromFloat(rc.Available),
		MonthlyCapacity:  decimal.NewFromFloat(rc.MonthlyCapacity),
		CapacityUsed:     decimal.NewFromFloat(rc.CapacityUsed),
		WindowDayOfMonth: rc.WindowDayOfMonth,
	}, a.Logger)
	if err != nil {
		return nil, nil, err
	}

	return sim, status, nil
}

// Run executes the long-running scoring service.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	snapshots, status, err := a.newProviders()
	if err != nil {
		return err
	}

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Scheduler.Interval,
		AlignToStart: a.Config.Scheduler.AlignToCycle,
		StartupDelay: a.Config.Scheduler.StartupDelay,
	}, a.Logger)

	store := a.newStore()
	svc := service.New(a.Config, sched, a.newEngine(), a.newBook(),
		snapshots, status, store, store, a.newNotifier(), a.Logger)

	a.Logger.Info().Msg("starting scoring service")
	err = svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("service terminated with error")
		return err
	}

	a.Logger.Info().Msg("scoring service stopped")
	return nil
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// PredictOptions configure the predict command.
type PredictOptions struct {
	BondID      string
	HorizonDays int
}

// SellOptions configure the sell command.
type SellOptions struct {
	BondID   string
	Instant  bool
	Price    float64
	Quantity int
}

// ExportOptions hold parameters for exporting simulated scoring history.
type ExportOptions struct {
	PNGPath   string
	CSVPath   string
	BondID    string
	Cycles    int
	MaxPoints int
}

// SimulateOptions override the market feed for the simulate-alert command.
type SimulateOptions struct {
	Sentiment string
	TrendPct  float64
}
