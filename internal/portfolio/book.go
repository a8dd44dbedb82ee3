// Package portfolio holds the in-memory bond catalogue and user holdings
// the demo platform trades against.
package portfolio

import (
	"fmt"
	"sort"
	"sync"

	"bond-sale-alerts/internal/predictor"
)

// Book is the in-memory marketplace ledger: listed bonds plus the user's
// holdings. Safe for concurrent readers while a scoring cycle runs.
type Book struct {
	mu       sync.RWMutex
	bonds    map[string]predictor.Bond
	holdings []predictor.Holding
}

// NewBook builds an empty ledger.
func NewBook() *Book {
	return &Book{bonds: make(map[string]predictor.Bond)}
}

// AddBond registers or replaces a bond in the catalogue.
func (b *Book) AddBond(bond predictor.Bond) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bonds[bond.ID] = bond
}

// AddHolding appends a holding to the user portfolio.
func (b *Book) AddHolding(holding predictor.Holding) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.bonds[holding.BondID]; !ok {
		return fmt.Errorf("holding references unknown bond %q", holding.BondID)
	}
	b.holdings = append(b.holdings, holding)
	return nil
}

// BondByID resolves a bond reference. Implements predictor.BondResolver.
func (b *Book) BondByID(id string) (*predictor.Bond, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	bond, ok := b.bonds[id]
	if !ok {
		return nil, false
	}
	return &bond, true
}

// Bonds returns the catalogue sorted by ID.
func (b *Book) Bonds() []predictor.Bond {
	b.mu.RLock()
	defer b.mu.RUnlock()
	bonds := make([]predictor.Bond, 0, len(b.bonds))
	for _, bond := range b.bonds {
		bonds = append(bonds, bond)
	}
	sort.Slice(bonds, func(i, j int) bool { return bonds[i].ID < bonds[j].ID })
	return bonds
}

// Holdings returns a copy of the user portfolio.
func (b *Book) Holdings() []predictor.Holding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	holdings := make([]predictor.Holding, len(b.holdings))
	copy(holdings, b.holdings)
	return holdings
}

// HoldingByBond finds the user's holding in a given bond.
func (b *Book) HoldingByBond(bondID string) (*predictor.Holding, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i := range b.holdings {
		if b.holdings[i].BondID == bondID {
			holding := b.holdings[i]
			return &holding, true
		}
	}
	return nil, false
}

// RemoveHolding drops the holding for a bond, e.g. after a settled sale.
func (b *Book) RemoveHolding(bondID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.holdings {
		if b.holdings[i].BondID == bondID {
			b.holdings = append(b.holdings[:i], b.holdings[i+1:]...)
			return true
		}
	}
	return false
}

var _ predictor.BondResolver = (*Book)(nil)
