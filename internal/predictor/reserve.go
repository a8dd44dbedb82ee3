package predictor

import "github.com/shopspring/decimal"

var (
	maxReserveSharePerUser  = decimal.NewFromFloat(0.1)  // 10% of available reserve
	maxCapacitySharePerUser = decimal.NewFromFloat(0.05) // 5% of monthly capacity
	hundred                 = decimal.NewFromInt(100)
)

// PersonalizedReserve computes the instant-liquidity cap for a holding: the
// smallest of the holding's total value, the per-user share of the available
// reserve, and the per-user share of the monthly capacity.
func PersonalizedReserve(holding *Holding, platform *PlatformStatus) ReserveAllocation {
	if holding == nil || platform == nil {
		return ReserveAllocation{Allocation: decimal.Zero, Eligible: false}
	}
	if !holding.ReserveEligible {
		return ReserveAllocation{
			Allocation:        decimal.Zero,
			Eligible:          false,
			DaysUntilEligible: holding.DaysUntilEligible,
		}
	}

	fund := platform.ReserveFund
	totalValue := holding.CurrentValue.Add(holding.AccruedInterest)
	allocation := decimal.Min(
		totalValue,
		fund.Available.Mul(maxReserveSharePerUser),
		fund.MonthlyCapacity.Mul(maxCapacitySharePerUser),
	)

	percentage := 0.0
	if totalValue.IsPositive() {
		percentage = allocation.Div(totalValue).Mul(hundred).InexactFloat64()
	}

	return ReserveAllocation{
		Allocation:        allocation,
		Eligible:          true,
		Percentage:        percentage,
		RemainingCapacity: fund.MonthlyCapacity.Sub(fund.CapacityUsed),
	}
}

// ReserveImpactFor grades how much the reserve fund improves the sale: a
// base positive impact, boosted by high reserves and low utilisation.
func ReserveImpactFor(holding *Holding, platform *PlatformStatus) ReserveImpact {
	if holding == nil || platform == nil || !holding.ReserveEligible {
		impact := ReserveImpact{Impact: 0, Reason: "Not reserve eligible"}
		if holding != nil {
			impact.DaysUntilEligible = holding.DaysUntilEligible
		}
		return impact
	}

	fund := platform.ReserveFund
	impact := 0.8
	if fund.Percentage/100 > 0.8 {
		impact += 0.2
	}
	if fund.CapacityUsedPct/100 < 0.1 {
		impact += 0.1
	}

	return ReserveImpact{Impact: impact, Reason: "Reserve fund available"}
}
