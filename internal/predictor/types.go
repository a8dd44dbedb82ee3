package predictor

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskLevel classifies a bond into one of three known risk tiers.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Sentiment is the categorical market mood attached to a snapshot.
type Sentiment string

const (
	SentimentVeryPositive Sentiment = "very_positive"
	SentimentPositive     Sentiment = "positive"
	SentimentNeutral      Sentiment = "neutral"
	SentimentNegative     Sentiment = "negative"
	SentimentVeryNegative Sentiment = "very_negative"
)

// Bond describes a listed instrument. All fields are inputs to the scoring
// engine; the engine never mutates them.
type Bond struct {
	ID           string
	IssuerName   string
	Sector       string
	CouponRate   float64 // annual coupon, percent
	MaturityDate time.Time
	RiskLevel    RiskLevel
	CreditRating string
	FaceValue    float64
	CurrentPrice float64
}

// Holding is a user position in a bond. DaysUntilEligible is only meaningful
// while ReserveEligible is false; a nil value falls back to peer-to-peer
// timing estimates.
type Holding struct {
	BondID            string
	Quantity          int
	PurchaseDate      time.Time
	PurchasePrice     float64
	LockInExpiry      time.Time
	ReserveEligible   bool
	DaysUntilEligible *int
	ReserveAllocation decimal.Decimal
	CurrentValue      decimal.Decimal
	AccruedInterest   decimal.Decimal
}

// MarketSnapshot is an immutable view of market conditions passed wholesale
// into every prediction call. The engine never caches or merges snapshots.
type MarketSnapshot struct {
	Sentiment             Sentiment
	TrendPct              float64
	InterestRateChangePct float64
	CreditSpreadChangePct float64
	LastUpdated           time.Time
	SectorTrends          map[string]float64
	SectorPerformance     map[string]float64
}

// ReserveFund captures platform-wide liquidity pool state. Percentage is
// assumed consistent with Total/Available by the producer; the engine does
// not recompute it.
type ReserveFund struct {
	Total           decimal.Decimal
	Available       decimal.Decimal
	Percentage      float64
	MonthlyCapacity decimal.Decimal
	CapacityUsed    decimal.Decimal
	CapacityUsedPct float64
	NextWindow      time.Time
}

// PlatformStatus aggregates platform liquidity inputs.
type PlatformStatus struct {
	ReserveFund ReserveFund
}

// PredictionResult is the output of a single prediction call.
type PredictionResult struct {
	SaleProbability int     // percent, bounded [35,98]
	Confidence      int     // percent, bounded [60,98]
	ExpectedTiming  string
	PriceImpact     float64 // signed percent, 2 decimals
	Recommendation  string
	Factors         []string
	ModelVersion    string
	Timestamp       time.Time
	Fallback        bool
}

// ReserveAllocation is the personalised instant-liquidity cap for a holding.
type ReserveAllocation struct {
	Allocation        decimal.Decimal
	Eligible          bool
	Percentage        float64
	RemainingCapacity decimal.Decimal
	DaysUntilEligible *int
}

// ReserveImpact grades how much the reserve fund helps a sale.
type ReserveImpact struct {
	Impact            float64
	Reason            string
	DaysUntilEligible *int
}

// Explanation carries display-ready rationale for each prediction section.
type Explanation struct {
	Probability    string
	Confidence     string
	Timing         string
	Recommendation string
}

// BondResolver maps holding references onto bonds during batch scoring.
type BondResolver interface {
	BondByID(id string) (*Bond, bool)
}
