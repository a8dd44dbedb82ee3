package portfolio

import (
	"testing"

	"bond-sale-alerts/internal/predictor"
)

func TestSeedPopulatesBook(t *testing.T) {
	book := NewBook()
	Seed(book)

	if got := len(book.Bonds()); got != 3 {
		t.Fatalf("seeded bonds = %d, want 3", got)
	}
	if got := len(book.Holdings()); got != 3 {
		t.Fatalf("seeded holdings = %d, want 3", got)
	}

	bond, ok := book.BondByID("HDFC2026")
	if !ok {
		t.Fatal("HDFC2026 missing from catalogue")
	}
	if bond.RiskLevel != predictor.RiskLow || bond.CreditRating != "AAA" {
		t.Errorf("unexpected bond data: %+v", bond)
	}
}

func TestAddHoldingRejectsUnknownBond(t *testing.T) {
	book := NewBook()
	err := book.AddHolding(predictor.Holding{BondID: "GHOST"})
	if err == nil {
		t.Error("holding on an unknown bond should be rejected")
	}
}

func TestBondByIDReturnsCopy(t *testing.T) {
	book := NewBook()
	Seed(book)

	bond, _ := book.BondByID("REL2028")
	bond.CurrentPrice = 1

	fresh, _ := book.BondByID("REL2028")
	if fresh.CurrentPrice == 1 {
		t.Error("mutating a returned bond must not affect the book")
	}
}

func TestRemoveHolding(t *testing.T) {
	book := NewBook()
	Seed(book)

	if !book.RemoveHolding("GEC2027") {
		t.Fatal("expected removal to succeed")
	}
	if book.RemoveHolding("GEC2027") {
		t.Error("second removal should report false")
	}
	if got := len(book.Holdings()); got != 2 {
		t.Errorf("holdings after removal = %d, want 2", got)
	}
}
