package market

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bond-sale-alerts/internal/predictor"
)

const windowDurationDays = 3

// StatusOptions describe the simulated reserve fund.
type StatusOptions struct {
	ReserveTotal    decimal.Decimal
	Available       decimal.Decimal
	MonthlyCapacity decimal.Decimal
	CapacityUsed    decimal.Decimal
	// WindowDayOfMonth is the calendar day each monthly liquidity window
	// opens; the window stays open for three days.
	WindowDayOfMonth int
	Now              func() time.Time
}

// ReserveStatus derives the platform status from a monthly window schedule.
type ReserveStatus struct {
	opts   StatusOptions
	logger zerolog.Logger
}

// NewReserveStatus constructs a platform status provider.
func NewReserveStatus(opts StatusOptions, logger zerolog.Logger) (*ReserveStatus, error) {
	if opts.WindowDayOfMonth < 1 || opts.WindowDayOfMonth > 28 {
		return nil, errors.New("window day of month must be within 1..28")
	}
	if opts.ReserveTotal.IsZero() {
		return nil, errors.New("reserve total must be positive")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ReserveStatus{
		opts:   opts,
		logger: logger.With().Str("component", "reserve_status").Logger(),
	}, nil
}

// Status reports the reserve fund shape plus the current or upcoming window
// start. While a window is open the reported date is the running window's
// start, so eligibility checks downstream see it as open.
func (r *ReserveStatus) Status(ctx context.Context) (*predictor.PlatformStatus, error) {
	_ = ctx

	percentage := r.opts.Available.Div(r.opts.ReserveTotal).Mul(decimal.NewFromInt(100)).InexactFloat64()
	capacityUsedPct := 0.0
	if r.opts.MonthlyCapacity.IsPositive() {
		capacityUsedPct = r.opts.CapacityUsed.Div(r.opts.MonthlyCapacity).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	return &predictor.PlatformStatus{ReserveFund: predictor.ReserveFund{
		Total:           r.opts.ReserveTotal,
		Available:       r.opts.Available,
		Percentage:      percentage,
		MonthlyCapacity: r.opts.MonthlyCapacity,
		CapacityUsed:    r.opts.CapacityUsed,
		CapacityUsedPct: capacityUsedPct,
		NextWindow:      r.nextWindow(r.opts.Now()),
	}}, nil
}

func (r *ReserveStatus) nextWindow(now time.Time) time.Time {
	window := time.Date(now.Year(), now.Month(), r.opts.WindowDayOfMonth, 0, 0, 0, 0, now.Location())
	windowEnd := window.AddDate(0, 0, windowDurationDays)
	if now.After(windowEnd) {
		window = window.AddDate(0, 1, 0)
	}
	return window
}

var _ StatusProvider = (*ReserveStatus)(nil)
