package predictor

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPersonalizedReserveIneligible(t *testing.T) {
	holding := testHolding()
	holding.ReserveEligible = false
	holding.DaysUntilEligible = intPtr(120)

	alloc := PersonalizedReserve(holding, testPlatformOpenWindow())

	if alloc.Eligible {
		t.Error("ineligible holding must report eligible=false")
	}
	if !alloc.Allocation.IsZero() {
		t.Errorf("ineligible allocation = %s, want 0", alloc.Allocation)
	}
	if alloc.DaysUntilEligible == nil || *alloc.DaysUntilEligible != 120 {
		t.Error("days until eligible should be carried through")
	}
}

func TestPersonalizedReserveCaps(t *testing.T) {
	tests := []struct {
		name            string
		currentValue    float64
		accrued         float64
		available       int64
		monthlyCapacity int64
		want            float64
	}{
		{
			// total value 5287.50 is below both pool caps
			name:         "holding value is the binding cap",
			currentValue: 5125, accrued: 162.5,
			available: 8_000_000, monthlyCapacity: 500_000,
			want: 5287.5,
		},
		{
			// 10% of a small pool binds before the holding value
			name:         "available reserve binds",
			currentValue: 50_000, accrued: 0,
			available: 100_000, monthlyCapacity: 10_000_000,
			want: 10_000,
		},
		{
			// 5% of monthly capacity binds last
			name:         "monthly capacity binds",
			currentValue: 50_000, accrued: 0,
			available: 10_000_000, monthlyCapacity: 200_000,
			want: 10_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holding := testHolding()
			holding.CurrentValue = decimal.NewFromFloat(tt.currentValue)
			holding.AccruedInterest = decimal.NewFromFloat(tt.accrued)

			platform := testPlatformOpenWindow()
			platform.ReserveFund.Available = decimal.NewFromInt(tt.available)
			platform.ReserveFund.MonthlyCapacity = decimal.NewFromInt(tt.monthlyCapacity)

			alloc := PersonalizedReserve(holding, platform)

			if !alloc.Eligible {
				t.Fatal("eligible holding must report eligible=true")
			}
			if !alloc.Allocation.Equal(decimal.NewFromFloat(tt.want)) {
				t.Errorf("allocation = %s, want %v", alloc.Allocation, tt.want)
			}

			total := holding.CurrentValue.Add(holding.AccruedInterest)
			if alloc.Allocation.GreaterThan(total) {
				t.Error("allocation exceeds holding value")
			}
			if alloc.Allocation.GreaterThan(platform.ReserveFund.Available.Mul(maxReserveSharePerUser)) {
				t.Error("allocation exceeds per-user reserve share")
			}
			if alloc.Allocation.GreaterThan(platform.ReserveFund.MonthlyCapacity.Mul(maxCapacitySharePerUser)) {
				t.Error("allocation exceeds per-user capacity share")
			}
		})
	}
}

func TestPersonalizedReserveRemainingCapacity(t *testing.T) {
	alloc := PersonalizedReserve(testHolding(), testPlatformOpenWindow())

	want := decimal.NewFromInt(475_000) // 500k capacity minus 25k used
	if !alloc.RemainingCapacity.Equal(want) {
		t.Errorf("remaining capacity = %s, want %s", alloc.RemainingCapacity, want)
	}
	if alloc.Percentage != 100 {
		t.Errorf("full coverage should be 100%%, got %v", alloc.Percentage)
	}
}

func TestPersonalizedReserveNilInputs(t *testing.T) {
	alloc := PersonalizedReserve(nil, nil)
	if alloc.Eligible || !alloc.Allocation.IsZero() {
		t.Error("nil inputs must yield a zero, ineligible allocation")
	}
}

func TestReserveImpact(t *testing.T) {
	holding := testHolding()
	platform := testPlatformOpenWindow()
	platform.ReserveFund.Percentage = 85
	platform.ReserveFund.CapacityUsedPct = 5

	impact := ReserveImpactFor(holding, platform)
	if impact.Impact != 1.1 { // 0.8 base + 0.2 high reserves + 0.1 low utilisation
		t.Errorf("impact = %v, want 1.1", impact.Impact)
	}

	holding.ReserveEligible = false
	holding.DaysUntilEligible = intPtr(30)
	blocked := ReserveImpactFor(holding, platform)
	if blocked.Impact != 0 || blocked.Reason != "Not reserve eligible" {
		t.Errorf("ineligible impact = %+v", blocked)
	}
}
