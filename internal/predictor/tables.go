package predictor

// Model weights combine the six factor scores into the sale probability.
// They must sum to 1.0.
const (
	weightCreditRating    = 0.25
	weightMarketSentiment = 0.20
	weightLiquidityWindow = 0.18
	weightPriceMovement   = 0.15
	weightSectorStrength  = 0.12
	weightHoldingPeriod   = 0.10
)

// riskParams are per-tier model parameters. Unknown tiers are absent on
// purpose: a bond with an unrecognised risk level fails closed into the
// fallback prediction.
type riskProfile struct {
	Volatility float64
	BaseScore  float64
}

var riskParams = map[RiskLevel]riskProfile{
	RiskHigh:   {Volatility: 0.15, BaseScore: 75},
	RiskMedium: {Volatility: 0.08, BaseScore: 80},
	RiskLow:    {Volatility: 0.03, BaseScore: 85},
}

// Peer-to-peer sale windows in days, before the market-hours multiplier.
type dayRange struct {
	Min float64
	Max float64
}

var p2pBaseTimings = map[RiskLevel]dayRange{
	RiskLow:    {Min: 3, Max: 8},
	RiskMedium: {Min: 5, Max: 12},
	RiskHigh:   {Min: 7, Max: 18},
}

var creditRatingScores = map[string]float64{
	"AAA": 1.0, "AA+": 0.95, "AA": 0.90, "AA-": 0.85,
	"A+": 0.80, "A": 0.75, "A-": 0.70,
	"BBB+": 0.65, "BBB": 0.60, "BBB-": 0.55,
	"BB+": 0.50, "BB": 0.45, "BB-": 0.40,
}

const defaultCreditScore = 0.30

// creditRatingCertainty adjusts confidence, not probability. Distinct from
// creditRatingScores above.
var creditRatingCertainty = map[string]float64{
	"AAA": 15, "AA+": 12, "AA": 10, "AA-": 8,
	"A+": 6, "A": 4, "A-": 2,
	"BBB+": 0, "BBB": -2, "BBB-": -4,
	"BB+": -6, "BB": -8, "BB-": -10,
}

const defaultRatingCertainty = -5

var sentimentScores = map[Sentiment]float64{
	SentimentVeryPositive: 1.0,
	SentimentPositive:     0.7,
	SentimentNeutral:      0.5,
	SentimentNegative:     0.3,
	SentimentVeryNegative: 0.1,
}

const defaultSentimentScore = 0.5

var sectorBaseScores = map[string]float64{
	"Banking & Financial Services": 0.9,
	"Government":                   1.0,
	"Energy & Petrochemicals":      0.7,
	"Renewable Energy":             0.8,
	"Technology":                   0.6,
	"Healthcare":                   0.8,
	"Real Estate":                  0.5,
}

const defaultSectorScore = 0.6

// historicalAccuracy is the simulated backtest accuracy per sector and risk
// tier, averaged into the confidence estimate.
var historicalAccuracy = map[string]map[RiskLevel]float64{
	"Banking & Financial Services": {RiskHigh: 88, RiskMedium: 92, RiskLow: 95},
	"Government":                   {RiskHigh: 90, RiskMedium: 94, RiskLow: 98},
	"Energy & Petrochemicals":      {RiskHigh: 82, RiskMedium: 87, RiskLow: 91},
	"Renewable Energy":             {RiskHigh: 79, RiskMedium: 84, RiskLow: 89},
}

const defaultHistoricalAccuracy = 85

var highDemandSectors = map[string]bool{
	"Banking & Financial Services": true,
	"Government":                   true,
	"Renewable Energy":             true,
}

func creditRatingScore(rating string) float64 {
	if score, ok := creditRatingScores[rating]; ok {
		return score
	}
	return defaultCreditScore
}

func ratingCertainty(rating string) float64 {
	if adj, ok := creditRatingCertainty[rating]; ok {
		return adj
	}
	return defaultRatingCertainty
}

func sentimentScore(sentiment Sentiment) float64 {
	if score, ok := sentimentScores[sentiment]; ok {
		return score
	}
	return defaultSentimentScore
}

func sectorAccuracy(sector string, risk RiskLevel) float64 {
	if byRisk, ok := historicalAccuracy[sector]; ok {
		if acc, ok := byRisk[risk]; ok {
			return acc
		}
	}
	return defaultHistoricalAccuracy
}
