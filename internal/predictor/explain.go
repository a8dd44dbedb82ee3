package predictor

import "fmt"

// Explain renders per-section rationale strings for display layers.
func Explain(result PredictionResult, bond *Bond) Explanation {
	sector := "similar"
	if bond != nil && bond.Sector != "" {
		sector = bond.Sector
	}
	return Explanation{
		Probability: fmt.Sprintf(
			"Based on %d key factors including market sentiment, credit rating, and liquidity conditions.",
			len(result.Factors)),
		Confidence: fmt.Sprintf(
			"Model has %d%% confidence based on historical data accuracy for %s bonds.",
			result.Confidence, sector),
		Timing:         "Expected timing calculated from current market liquidity and your reserve fund eligibility status.",
		Recommendation: "Recommendation considers your holding period, market conditions, and optimal exit strategy.",
	}
}
