package market

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bond-sale-alerts/internal/predictor"
)

func fixedNow() time.Time {
	return time.Date(2025, 9, 4, 12, 0, 0, 0, time.UTC)
}

func TestSimulatorDeterministicWithoutJitter(t *testing.T) {
	sim := NewSimulator(SimulatorOptions{
		Sentiment:    predictor.SentimentPositive,
		TrendPct:     0.5,
		SectorTrends: map[string]float64{"Government": 0.1},
		Now:          fixedNow,
	}, zerolog.Nop())

	a, err := sim.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	b, _ := sim.Snapshot(context.Background())

	if a.TrendPct != b.TrendPct || a.SectorTrends["Government"] != b.SectorTrends["Government"] {
		t.Error("snapshots without jitter must be identical")
	}
	if a.Sentiment != predictor.SentimentPositive {
		t.Errorf("sentiment = %q", a.Sentiment)
	}
	if !a.LastUpdated.Equal(fixedNow()) {
		t.Error("last updated should come from the injected clock")
	}
}

func TestSimulatorSeededJitterIsReproducible(t *testing.T) {
	build := func() *Simulator {
		return NewSimulator(SimulatorOptions{
			TrendPct:  0.5,
			JitterPct: 0.2,
			Rand:      rand.New(rand.NewSource(42)),
			Now:       fixedNow,
		}, zerolog.Nop())
	}

	a, _ := build().Snapshot(context.Background())
	b, _ := build().Snapshot(context.Background())

	if a.TrendPct != b.TrendPct {
		t.Errorf("same seed should give same jitter: %v vs %v", a.TrendPct, b.TrendPct)
	}
	if a.TrendPct < 0.3 || a.TrendPct > 0.7 {
		t.Errorf("jittered trend %v outside ±0.2 band", a.TrendPct)
	}
}

func TestSimulatorCopiesMaps(t *testing.T) {
	trends := map[string]float64{"Government": 0.1}
	sim := NewSimulator(SimulatorOptions{SectorTrends: trends, Now: fixedNow}, zerolog.Nop())

	snapshot, _ := sim.Snapshot(context.Background())
	snapshot.SectorTrends["Government"] = 9.9

	if trends["Government"] != 0.1 {
		t.Error("mutating a snapshot must not leak back into the simulator")
	}
}

func testStatusOptions() StatusOptions {
	return StatusOptions{
		ReserveTotal:     decimal.NewFromInt(10_000_000),
		Available:        decimal.NewFromInt(7_200_000),
		MonthlyCapacity:  decimal.NewFromInt(200_000),
		CapacityUsed:     decimal.NewFromInt(2_800),
		WindowDayOfMonth: 15,
		Now:              fixedNow,
	}
}

func TestReserveStatusDerivesPercentages(t *testing.T) {
	rs, err := NewReserveStatus(testStatusOptions(), zerolog.Nop())
	if err != nil {
		t.Fatalf("constructor failed: %v", err)
	}

	status, err := rs.Status(context.Background())
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	if status.ReserveFund.Percentage != 72 {
		t.Errorf("percentage = %v, want 72", status.ReserveFund.Percentage)
	}
	if status.ReserveFund.CapacityUsedPct != 1.4 {
		t.Errorf("capacity used = %v, want 1.4", status.ReserveFund.CapacityUsedPct)
	}
}

func TestReserveStatusWindowSchedule(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before this month's window",
			now:  time.Date(2025, 9, 4, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "inside the window keeps its start",
			now:  time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "after the window rolls to next month",
			now:  time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testStatusOptions()
			opts.Now = func() time.Time { return tt.now }
			rs, err := NewReserveStatus(opts, zerolog.Nop())
			if err != nil {
				t.Fatalf("constructor failed: %v", err)
			}
			status, _ := rs.Status(context.Background())
			if !status.ReserveFund.NextWindow.Equal(tt.want) {
				t.Errorf("next window = %v, want %v", status.ReserveFund.NextWindow, tt.want)
			}
		})
	}
}

func TestReserveStatusRejectsBadConfig(t *testing.T) {
	opts := testStatusOptions()
	opts.WindowDayOfMonth = 31
	if _, err := NewReserveStatus(opts, zerolog.Nop()); err == nil {
		t.Error("day 31 should be rejected")
	}

	opts = testStatusOptions()
	opts.ReserveTotal = decimal.Zero
	if _, err := NewReserveStatus(opts, zerolog.Nop()); err == nil {
		t.Error("zero reserve total should be rejected")
	}
}
