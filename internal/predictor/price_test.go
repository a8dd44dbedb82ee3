package predictor

import (
	"math"
	"testing"
	"time"
)

func TestPredictPriceMarketTrendOnly(t *testing.T) {
	e := testEngine(testNow)

	bond := testBond()
	bond.CurrentPrice = 100
	bond.FaceValue = 100
	bond.MaturityDate = testNow.Add(3 * 365 * 24 * time.Hour) // no pull to par

	market := &MarketSnapshot{TrendPct: 1.0}

	got := e.PredictPrice(bond, market, 30)
	if math.Abs(got-101) > 1e-9 {
		t.Errorf("predicted price = %v, want 101", got)
	}
}

func TestPredictPriceInterestRateSensitivity(t *testing.T) {
	e := testEngine(testNow)

	bond := testBond()
	bond.CurrentPrice = 100
	bond.CouponRate = 0
	bond.MaturityDate = testNow.Add(2 * 365 * 24 * time.Hour) // duration = 2 years

	market := &MarketSnapshot{InterestRateChangePct: 1.0}

	// price * (1 - 2 * 1/100) = 98
	got := e.PredictPrice(bond, market, 30)
	if math.Abs(got-98) > 1e-9 {
		t.Errorf("predicted price = %v, want 98", got)
	}
}

func TestPredictPricePullToPar(t *testing.T) {
	e := testEngine(testNow)

	bond := testBond()
	bond.CurrentPrice = 90
	bond.FaceValue = 100
	bond.MaturityDate = testNow.Add(100 * 24 * time.Hour)

	market := &MarketSnapshot{}

	// 90 plus 10% of the gap to par
	got := e.PredictPrice(bond, market, 30)
	if math.Abs(got-91) > 1e-9 {
		t.Errorf("predicted price = %v, want 91", got)
	}
}

func TestPredictPriceSectorMultiplier(t *testing.T) {
	e := testEngine(testNow)

	bond := testBond()
	bond.CurrentPrice = 100
	bond.MaturityDate = testNow.Add(3 * 365 * 24 * time.Hour)

	market := &MarketSnapshot{
		SectorPerformance: map[string]float64{"Banking & Financial Services": 1.05},
	}

	got := e.PredictPrice(bond, market, 30)
	if math.Abs(got-105) > 1e-9 {
		t.Errorf("predicted price = %v, want 105", got)
	}

	market.SectorPerformance = nil // unknown sector multiplies by 1.0
	got = e.PredictPrice(bond, market, 30)
	if math.Abs(got-100) > 1e-9 {
		t.Errorf("predicted price without sector data = %v, want 100", got)
	}
}

func TestPredictPriceNilInputs(t *testing.T) {
	e := testEngine(testNow)
	if got := e.PredictPrice(nil, nil, 30); got != 0 {
		t.Errorf("nil inputs should predict 0, got %v", got)
	}
}

func TestExplain(t *testing.T) {
	e := testEngine(testNow)
	result := e.Predict(testBond(), testHolding(), testMarket(), testPlatformOpenWindow())

	explanation := Explain(result, testBond())
	if explanation.Probability == "" || explanation.Confidence == "" {
		t.Error("explanations should not be empty")
	}
}
