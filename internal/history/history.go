// Package history keeps a bounded in-memory record of scoring cycles and
// emitted alerts. The platform is a demo with no persistence, so the record
// lives and dies with the process.
package history

import (
	"sync"
	"time"
)

// PredictionSample is one scored holding inside one refresh cycle.
type PredictionSample struct {
	Cycle           time.Time
	BondID          string
	Issuer          string
	SaleProbability int
	Confidence      int
	ExpectedTiming  string
	PriceImpact     float64
	PredictedPrice  float64
	Recommendation  string
	Fallback        bool
	CreatedAt       time.Time
}

// AlertRecord captures an emitted alert for auditing.
type AlertRecord struct {
	ID              int64
	Cycle           time.Time
	BondID          string
	SaleProbability int
	ThresholdPct    float64
	ExpectedTiming  string
	Channels        []string
	CreatedAt       time.Time
}

// SampleStore records and serves prediction samples.
type SampleStore interface {
	AppendSample(sample PredictionSample)
	RecentSamples(limit int) []PredictionSample
	SamplesForBond(bondID string) []PredictionSample
	CountSamples() int
}

// AlertStore records and serves alert audit entries.
type AlertStore interface {
	AppendAlert(alert AlertRecord) AlertRecord
	RecentAlerts(limit int) []AlertRecord
}

// Store is a bounded, concurrency-safe sample and alert buffer. When a
// bound is hit the oldest entries fall off.
type Store struct {
	mu          sync.Mutex
	samples     []PredictionSample
	alerts      []AlertRecord
	maxSamples  int
	maxAlerts   int
	nextAlertID int64
}

// NewStore builds a store bounded to the given entry counts.
func NewStore(maxSamples, maxAlerts int) *Store {
	if maxSamples <= 0 {
		maxSamples = 10_000
	}
	if maxAlerts <= 0 {
		maxAlerts = 1_000
	}
	return &Store{maxSamples: maxSamples, maxAlerts: maxAlerts}
}

// AppendSample records a sample, evicting the oldest past the bound.
func (s *Store) AppendSample(sample PredictionSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sample)
	if overflow := len(s.samples) - s.maxSamples; overflow > 0 {
		s.samples = append(s.samples[:0:0], s.samples[overflow:]...)
	}
}

// RecentSamples returns up to limit samples, newest first.
func (s *Store) RecentSamples(limit int) []PredictionSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.samples) {
		limit = len(s.samples)
	}
	out := make([]PredictionSample, limit)
	for i := 0; i < limit; i++ {
		out[i] = s.samples[len(s.samples)-1-i]
	}
	return out
}

// SamplesForBond returns all retained samples for a bond in cycle order.
func (s *Store) SamplesForBond(bondID string) []PredictionSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []PredictionSample
	for _, sample := range s.samples {
		if sample.BondID == bondID {
			out = append(out, sample)
		}
	}
	return out
}

// CountSamples reports how many samples are retained.
func (s *Store) CountSamples() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples)
}

// AppendAlert records an alert and assigns it an ID.
func (s *Store) AppendAlert(alert AlertRecord) AlertRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAlertID++
	alert.ID = s.nextAlertID
	s.alerts = append(s.alerts, alert)
	if overflow := len(s.alerts) - s.maxAlerts; overflow > 0 {
		s.alerts = append(s.alerts[:0:0], s.alerts[overflow:]...)
	}
	return alert
}

// RecentAlerts returns up to limit alerts, newest first.
func (s *Store) RecentAlerts(limit int) []AlertRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.alerts) {
		limit = len(s.alerts)
	}
	out := make([]AlertRecord, limit)
	for i := 0; i < limit; i++ {
		out[i] = s.alerts[len(s.alerts)-1-i]
	}
	return out
}

var (
	_ SampleStore = (*Store)(nil)
	_ AlertStore  = (*Store)(nil)
)
