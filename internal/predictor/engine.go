package predictor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultModelVersion = "1.2.3"

// Options parameterise the prediction engine.
type Options struct {
	ModelVersion string
	// Now overrides the wall clock. Every time-dependent read (data age,
	// holding period, window checks, market hours, timestamps) goes through
	// it so tests and replays stay deterministic.
	Now func() time.Time
}

// Engine scores the likelihood and timing of selling a bond holding. It is
// stateless: every call is a pure function of its inputs and the clock.
type Engine struct {
	modelVersion string
	now          func() time.Time
	logger       zerolog.Logger
}

// New constructs a prediction engine.
func New(opts Options, logger zerolog.Logger) *Engine {
	if opts.ModelVersion == "" {
		opts.ModelVersion = defaultModelVersion
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		modelVersion: opts.ModelVersion,
		now:          opts.Now,
		logger:       logger.With().Str("component", "predictor").Logger(),
	}
}

// Predict produces the full prediction for one holding. Missing inputs and
// unknown risk tiers never propagate as errors; they yield the fixed
// fallback result with Fallback set.
func (e *Engine) Predict(bond *Bond, holding *Holding, market *MarketSnapshot, platform *PlatformStatus) PredictionResult {
	if bond == nil || holding == nil || market == nil || platform == nil {
		e.logger.Warn().Msg("prediction input missing, returning fallback")
		return e.Fallback()
	}
	if _, ok := riskParams[bond.RiskLevel]; !ok {
		e.logger.Warn().Str("bond", bond.ID).Str("risk_level", string(bond.RiskLevel)).
			Msg("unknown risk level, returning fallback")
		return e.Fallback()
	}

	probability := e.saleProbability(bond, holding, market, platform)
	confidence := e.confidence(bond, market)
	timing := e.expectedTiming(bond, holding, platform)
	impact := priceImpact(bond, holding, market)
	recommendation := recommend(holding, probability, timing)
	factors := e.keyFactors(bond, holding, market, platform)

	return PredictionResult{
		SaleProbability: int(math.Round(probability)),
		Confidence:      int(math.Round(confidence)),
		ExpectedTiming:  timing,
		PriceImpact:     round2(impact),
		Recommendation:  recommendation,
		Factors:         factors,
		ModelVersion:    e.modelVersion,
		Timestamp:       e.now(),
	}
}

// PredictBatch applies Predict independently to each holding against a
// shared snapshot. Holdings whose bond cannot be resolved are skipped.
func (e *Engine) PredictBatch(holdings []Holding, resolver BondResolver, market *MarketSnapshot, platform *PlatformStatus) map[string]PredictionResult {
	results := make(map[string]PredictionResult, len(holdings))
	for i := range holdings {
		holding := &holdings[i]
		bond, ok := resolver.BondByID(holding.BondID)
		if !ok {
			e.logger.Debug().Str("bond", holding.BondID).Msg("skipping holding with unresolved bond")
			continue
		}
		results[holding.BondID] = e.Predict(bond, holding, market, platform)
	}
	return results
}

// saleProbability combines the risk-tier base score with the six weighted
// factor scores. Clamping happens after the sum on purpose: the raw total
// can mathematically exceed the upper bound and the bound is the contract.
func (e *Engine) saleProbability(bond *Bond, holding *Holding, market *MarketSnapshot, platform *PlatformStatus) float64 {
	probability := riskParams[bond.RiskLevel].BaseScore

	probability += creditRatingScore(bond.CreditRating) * weightCreditRating * 100
	probability += sentimentScore(market.Sentiment) * weightMarketSentiment * 100
	probability += e.liquidityScore(holding, platform) * weightLiquidityWindow * 100
	probability += priceMovementScore(bond, holding) * weightPriceMovement * 100
	probability += sectorStrengthScore(bond.Sector, market) * weightSectorStrength * 100
	probability += e.holdingPeriodScore(holding) * weightHoldingPeriod * 100

	return clamp(probability, 35, 98)
}

// confidence estimates how reliable the probability is, from data freshness,
// tier volatility, rating certainty, and historical accuracy.
func (e *Engine) confidence(bond *Bond, market *MarketSnapshot) float64 {
	confidence := 85.0

	age := e.dataAgeDays(market)
	if age < 1 {
		confidence += 10
	} else if age > 7 {
		confidence -= 15
	}

	confidence -= riskParams[bond.RiskLevel].Volatility * 50
	confidence += ratingCertainty(bond.CreditRating)

	accuracy := sectorAccuracy(bond.Sector, bond.RiskLevel)
	confidence = (confidence + accuracy) / 2

	return clamp(confidence, 60, 98)
}

// expectedTiming walks the sale-channel rules in strict priority order;
// the first matching branch wins.
func (e *Engine) expectedTiming(bond *Bond, holding *Holding, platform *PlatformStatus) string {
	if holding.ReserveEligible && e.isWindowOpen(platform) {
		return "Instant via reserve"
	}
	if holding.ReserveEligible {
		return fmt.Sprintf("Next window in %d days", e.daysToNextWindow(platform))
	}
	if holding.DaysUntilEligible != nil {
		return fmt.Sprintf("Lock-in expires in %d days", *holding.DaysUntilEligible)
	}

	timing := p2pBaseTimings[bond.RiskLevel]
	multiplier := e.marketHoursMultiplier()
	minDays := int(math.Round(timing.Min * multiplier))
	maxDays := int(math.Round(timing.Max * multiplier))
	return fmt.Sprintf("Peer-to-peer: %d-%d days", minDays, maxDays)
}

// priceImpact is the expected drift from market trend, sector trend, and the
// liquidity channel.
func priceImpact(bond *Bond, holding *Holding, market *MarketSnapshot) float64 {
	liquidityAdjustment := -0.2
	if holding.ReserveEligible {
		liquidityAdjustment = 0.1
	}
	return market.TrendPct + market.SectorTrends[bond.Sector] + liquidityAdjustment
}

// recommend derives the headline advice. Ordered rule chain, first match wins.
func recommend(holding *Holding, probability float64, timing string) string {
	switch {
	case probability > 90 && strings.Contains(timing, "Instant"):
		return "Excellent time to sell - high demand and instant liquidity"
	case probability > 80 && holding.ReserveEligible:
		return "Good sale opportunity with reserve fund access"
	case probability < 60:
		return "Consider holding - market conditions not optimal"
	case !holding.ReserveEligible:
		return "Hold until reserve eligibility for better liquidity"
	default:
		return "Market conditions favorable for sale"
	}
}

// keyFactors assembles the human-readable factor labels. The list is not
// ranked or truncated.
func (e *Engine) keyFactors(bond *Bond, holding *Holding, market *MarketSnapshot, platform *PlatformStatus) []string {
	factors := make([]string, 0, 6)

	if holding.ReserveEligible {
		factors = append(factors, "Reserve fund eligible")
	} else if holding.DaysUntilEligible != nil {
		factors = append(factors, fmt.Sprintf("Lock-in period: %d days remaining", *holding.DaysUntilEligible))
	} else {
		factors = append(factors, "Lock-in period active")
	}

	if market.Sentiment == SentimentPositive {
		factors = append(factors, "Positive market sentiment")
	}

	if bond.CreditRating == "AAA" || bond.CreditRating == "AA" {
		factors = append(factors, "High credit rating")
	}

	if holding.PurchasePrice > 0 {
		changePct := (bond.CurrentPrice - holding.PurchasePrice) / holding.PurchasePrice * 100
		if changePct > 2 {
			factors = append(factors, "Price above purchase level")
		} else if changePct < -2 {
			factors = append(factors, "Price below purchase level")
		}
	}

	if highDemandSectors[bond.Sector] {
		factors = append(factors, "High demand sector")
	}

	if platform.ReserveFund.Percentage > 70 {
		factors = append(factors, "Strong platform liquidity")
	}

	return factors
}

// Fallback is the fixed result returned when required inputs are missing.
func (e *Engine) Fallback() PredictionResult {
	return PredictionResult{
		SaleProbability: 75,
		Confidence:      70,
		ExpectedTiming:  "5-10 days",
		PriceImpact:     0,
		Recommendation:  "Standard market conditions",
		Factors:         []string{"Limited data available"},
		ModelVersion:    e.modelVersion,
		Timestamp:       e.now(),
		Fallback:        true,
	}
}
