package predictor

import (
	"math"
	"time"
)

const (
	hoursPerDay       = 24
	windowOpenDays    = 3
	staleDataDays     = 7.0
	marketHoursOpen   = 9
	marketHoursClose  = 17
	marketHoursFactor = 0.8
	offHoursFactor    = 1.2
)

// liquidityScore rates how quickly the holding can be turned into cash.
func (e *Engine) liquidityScore(holding *Holding, platform *PlatformStatus) float64 {
	if holding.ReserveEligible && e.isWindowOpen(platform) {
		return 1.0 // instant liquidity
	}
	if holding.ReserveEligible {
		return 0.8 // reserve access, next window
	}
	return 0.3 // peer-to-peer only
}

// priceMovementScore maps the gain/loss since purchase onto a step function.
// Bands are evaluated top-down; the first match wins.
func priceMovementScore(bond *Bond, holding *Holding) float64 {
	if holding.PurchasePrice == 0 {
		return 0.6
	}
	change := (bond.CurrentPrice - holding.PurchasePrice) / holding.PurchasePrice

	switch {
	case change > 0.05:
		return 1.0
	case change > 0.02:
		return 0.8
	case change > -0.02:
		return 0.6
	case change > -0.05:
		return 0.4
	default:
		return 0.2
	}
}

// sectorStrengthScore is the sector base score shifted by the snapshot's
// sector trend, clamped into [0.1, 1.0].
func sectorStrengthScore(sector string, market *MarketSnapshot) float64 {
	base, ok := sectorBaseScores[sector]
	if !ok {
		base = defaultSectorScore
	}
	return clamp(base+market.SectorTrends[sector], 0.1, 1.0)
}

func (e *Engine) holdingPeriodScore(holding *Holding) float64 {
	days := e.daysSince(holding.PurchaseDate)

	switch {
	case days < 30:
		return 0.3
	case days < 90:
		return 0.5
	case days < 180:
		return 0.7
	case days < 365:
		return 0.9
	default:
		return 1.0
	}
}

// isWindowOpen reports whether now falls inside the 3-day liquidity window
// starting at the platform's next window date (inclusive on both ends).
func (e *Engine) isWindowOpen(platform *PlatformStatus) bool {
	start := platform.ReserveFund.NextWindow
	if start.IsZero() {
		return false
	}
	end := start.Add(windowOpenDays * hoursPerDay * time.Hour)
	now := e.now()
	return !now.Before(start) && !now.After(end)
}

// daysToNextWindow is the ceiling of calendar days until the next window.
func (e *Engine) daysToNextWindow(platform *PlatformStatus) int {
	diff := platform.ReserveFund.NextWindow.Sub(e.now())
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / hoursPerDay))
}

// dataAgeDays measures snapshot staleness. A missing timestamp is treated as
// a week old.
func (e *Engine) dataAgeDays(market *MarketSnapshot) float64 {
	if market.LastUpdated.IsZero() {
		return staleDataDays
	}
	return e.now().Sub(market.LastUpdated).Hours() / hoursPerDay
}

func (e *Engine) daysSince(t time.Time) float64 {
	days := e.now().Sub(t).Hours() / hoursPerDay
	if days < 0 {
		return 0
	}
	return days
}

// marketHoursMultiplier speeds up peer-to-peer estimates during trading
// hours and slows them outside.
func (e *Engine) marketHoursMultiplier() float64 {
	hour := e.now().Hour()
	if hour >= marketHoursOpen && hour <= marketHoursClose {
		return marketHoursFactor
	}
	return offHoursFactor
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
