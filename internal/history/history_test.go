package history

import (
	"fmt"
	"testing"
	"time"
)

func TestRecentSamplesNewestFirst(t *testing.T) {
	store := NewStore(10, 10)
	base := time.Date(2025, 9, 4, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		store.AppendSample(PredictionSample{
			BondID: fmt.Sprintf("B%d", i),
			Cycle:  base.Add(time.Duration(i) * time.Minute),
		})
	}

	recent := store.RecentSamples(2)
	if len(recent) != 2 {
		t.Fatalf("recent = %d entries, want 2", len(recent))
	}
	if recent[0].BondID != "B2" || recent[1].BondID != "B1" {
		t.Errorf("unexpected ordering: %v", recent)
	}
}

func TestSampleBoundEvictsOldest(t *testing.T) {
	store := NewStore(2, 2)

	for i := 0; i < 5; i++ {
		store.AppendSample(PredictionSample{BondID: fmt.Sprintf("B%d", i)})
	}

	if got := store.CountSamples(); got != 2 {
		t.Fatalf("retained = %d, want 2", got)
	}
	if len(store.SamplesForBond("B0")) != 0 {
		t.Error("oldest sample should have been evicted")
	}
	if len(store.SamplesForBond("B4")) != 1 {
		t.Error("newest sample should be retained")
	}
}

func TestSamplesForBondKeepsCycleOrder(t *testing.T) {
	store := NewStore(10, 10)
	base := time.Date(2025, 9, 4, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		store.AppendSample(PredictionSample{BondID: "HDFC2026", Cycle: base.Add(time.Duration(i) * time.Minute)})
		store.AppendSample(PredictionSample{BondID: "GEC2027", Cycle: base.Add(time.Duration(i) * time.Minute)})
	}

	samples := store.SamplesForBond("HDFC2026")
	if len(samples) != 3 {
		t.Fatalf("samples = %d, want 3", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Cycle.Before(samples[i-1].Cycle) {
			t.Error("samples should stay in cycle order")
		}
	}
}

func TestAlertIDsAreMonotonic(t *testing.T) {
	store := NewStore(10, 10)

	first := store.AppendAlert(AlertRecord{BondID: "A"})
	second := store.AppendAlert(AlertRecord{BondID: "B"})

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("alert IDs = %d, %d, want 1, 2", first.ID, second.ID)
	}

	recent := store.RecentAlerts(1)
	if len(recent) != 1 || recent[0].BondID != "B" {
		t.Errorf("recent alerts = %v", recent)
	}
}
