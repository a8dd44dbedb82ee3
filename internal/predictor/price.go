package predictor

// PredictPrice estimates the bond price after horizonDays under the given
// snapshot: market trend, interest-rate sensitivity via modified duration,
// credit-spread drift, the sector performance multiplier, and pull-to-par
// inside the final year to maturity.
func (e *Engine) PredictPrice(bond *Bond, market *MarketSnapshot, horizonDays int) float64 {
	if bond == nil || market == nil {
		return 0
	}
	_ = horizonDays // horizon is carried for callers plotting a curve; the model itself is horizon-flat

	predicted := bond.CurrentPrice

	predicted *= 1 + market.TrendPct/100

	duration := e.modifiedDuration(bond)
	predicted *= 1 - duration*market.InterestRateChangePct/100

	predicted *= 1 - market.CreditSpreadChangePct/100

	predicted *= sectorMultiplier(bond.Sector, market)

	if e.daysToMaturity(bond) < 365 {
		predicted += (bond.FaceValue - predicted) * 0.1 // pull to par
	}

	return predicted
}

// modifiedDuration approximates interest-rate sensitivity from years to
// maturity and the coupon rate.
func (e *Engine) modifiedDuration(bond *Bond) float64 {
	yearsToMaturity := e.daysToMaturity(bond) / 365
	couponRate := bond.CouponRate / 100
	return yearsToMaturity / (1 + couponRate)
}

func (e *Engine) daysToMaturity(bond *Bond) float64 {
	days := bond.MaturityDate.Sub(e.now()).Hours() / hoursPerDay
	if days < 0 {
		return 0
	}
	return days
}

func sectorMultiplier(sector string, market *MarketSnapshot) float64 {
	if m, ok := market.SectorPerformance[sector]; ok {
		return m
	}
	return 1.0
}
