package portfolio

import (
	"time"

	"github.com/shopspring/decimal"

	"bond-sale-alerts/internal/predictor"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

// Seed fills the book with the demo marketplace data set: three listed
// bonds and the matching user holdings.
func Seed(book *Book) {
	book.AddBond(predictor.Bond{
		ID:           "GEC2027",
		IssuerName:   "Green Energy Corp",
		Sector:       "Renewable Energy",
		CouponRate:   4.8,
		MaturityDate: date(2027, time.November, 30),
		RiskLevel:    predictor.RiskMedium,
		CreditRating: "A-",
		FaceValue:    1000,
		CurrentPrice: 945.60,
	})
	book.AddBond(predictor.Bond{
		ID:           "REL2028",
		IssuerName:   "Reliance Industries",
		Sector:       "Energy & Petrochemicals",
		CouponRate:   8.5,
		MaturityDate: date(2028, time.December, 15),
		RiskLevel:    predictor.RiskHigh,
		CreditRating: "AA",
		FaceValue:    100,
		CurrentPrice: 98.5,
	})
	book.AddBond(predictor.Bond{
		ID:           "HDFC2026",
		IssuerName:   "HDFC Bank",
		Sector:       "Banking & Financial Services",
		CouponRate:   6.2,
		MaturityDate: date(2026, time.August, 30),
		RiskLevel:    predictor.RiskLow,
		CreditRating: "AAA",
		FaceValue:    100,
		CurrentPrice: 101.2,
	})

	// Seeded after the bonds so the reference checks pass.
	_ = book.AddHolding(predictor.Holding{
		BondID:            "GEC2027",
		Quantity:          10,
		PurchaseDate:      date(2025, time.March, 15),
		PurchasePrice:     940.00,
		LockInExpiry:      date(2025, time.September, 15),
		ReserveEligible:   false,
		DaysUntilEligible: intPtr(11),
		CurrentValue:      decimal.NewFromInt(9456),
		AccruedInterest:   decimal.NewFromFloat(234.50),
	})
	_ = book.AddHolding(predictor.Holding{
		BondID:            "REL2028",
		Quantity:          50,
		PurchaseDate:      date(2024, time.December, 10),
		PurchasePrice:     97.50,
		LockInExpiry:      date(2025, time.June, 10),
		ReserveEligible:   true,
		ReserveAllocation: decimal.NewFromInt(4850),
		CurrentValue:      decimal.NewFromInt(4925),
		AccruedInterest:   decimal.NewFromFloat(412.75),
	})
	_ = book.AddHolding(predictor.Holding{
		BondID:            "HDFC2026",
		Quantity:          100,
		PurchaseDate:      date(2024, time.November, 20),
		PurchasePrice:     100.80,
		LockInExpiry:      date(2025, time.May, 20),
		ReserveEligible:   true,
		ReserveAllocation: decimal.NewFromInt(10120),
		CurrentValue:      decimal.NewFromInt(10120),
		AccruedInterest:   decimal.NewFromFloat(287.60),
	})
}
