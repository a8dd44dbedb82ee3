// Package listings implements the peer-to-peer marketplace board: holdings
// listed for sale by users and matched against buyers, all in memory.
package listings

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bond-sale-alerts/internal/predictor"
)

var (
	// ErrNotFound indicates the listing is unknown or already settled.
	ErrNotFound = errors.New("listings: listing not found")
	// ErrExpired indicates the listing passed its expiry date.
	ErrExpired = errors.New("listings: listing expired")
)

// Listing is a holding offered for peer-to-peer sale.
type Listing struct {
	ID              string
	BondID          string
	SellerName      string
	BondName        string
	Sector          string
	CreditRating    string
	RiskLevel       predictor.RiskLevel
	ListingPrice    decimal.Decimal
	MarketPrice     decimal.Decimal
	PremiumPct      float64
	Quantity        int
	AccruedInterest decimal.Decimal
	ListedAt        time.Time
	ExpiresAt       time.Time
	QuickSale       bool
	Priority        bool
}

// Trade records a settled peer-to-peer sale.
type Trade struct {
	ListingID   string
	BondID      string
	Quantity    int
	GrossValue  decimal.Decimal
	PlatformFee decimal.Decimal
	NetProceeds decimal.Decimal
	SettledAt   time.Time
}

// Options tune board fees and listing lifetime.
type Options struct {
	ListingFeePct float64 // charged when a listing is created
	TradeFeePct   float64 // charged on settlement
	ListingTTL    time.Duration
	Now           func() time.Time
}

// Board holds active listings.
type Board struct {
	mu       sync.Mutex
	listings map[string]Listing
	seq      int
	opts     Options
	logger   zerolog.Logger
}

// NewBoard constructs an empty board.
func NewBoard(opts Options, logger zerolog.Logger) *Board {
	if opts.ListingTTL <= 0 {
		opts.ListingTTL = 14 * 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Board{
		listings: make(map[string]Listing),
		opts:     opts,
		logger:   logger.With().Str("component", "p2p_board").Logger(),
	}
}

// Create lists a holding for sale and returns the listing plus the upfront
// listing fee on the order value.
func (b *Board) Create(bond *predictor.Bond, holding *predictor.Holding, seller string, price decimal.Decimal, quantity int) (Listing, decimal.Decimal, error) {
	if bond == nil || holding == nil {
		return Listing{}, decimal.Zero, errors.New("listings: bond and holding required")
	}
	if quantity <= 0 || quantity > holding.Quantity {
		return Listing{}, decimal.Zero, fmt.Errorf("listings: quantity %d outside held range 1..%d", quantity, holding.Quantity)
	}
	if !price.IsPositive() {
		return Listing{}, decimal.Zero, errors.New("listings: listing price must be positive")
	}

	marketPrice := decimal.NewFromFloat(bond.CurrentPrice)
	premium := 0.0
	if marketPrice.IsPositive() {
		premium = price.Sub(marketPrice).Div(marketPrice).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	now := b.opts.Now()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	listing := Listing{
		ID:              fmt.Sprintf("P2P%03d", b.seq),
		BondID:          bond.ID,
		SellerName:      seller,
		BondName:        bond.IssuerName,
		Sector:          bond.Sector,
		CreditRating:    bond.CreditRating,
		RiskLevel:       bond.RiskLevel,
		ListingPrice:    price,
		MarketPrice:     marketPrice,
		PremiumPct:      premium,
		Quantity:        quantity,
		AccruedInterest: holding.AccruedInterest,
		ListedAt:        now,
		ExpiresAt:       now.Add(b.opts.ListingTTL),
	}
	b.listings[listing.ID] = listing

	orderValue := price.Mul(decimal.NewFromInt(int64(quantity)))
	fee := pctOf(orderValue, b.opts.ListingFeePct)

	b.logger.Info().Str("listing", listing.ID).Str("bond", bond.ID).
		Int("quantity", quantity).Str("fee", fee.String()).Msg("listing created")

	return listing, fee, nil
}

// Active returns unexpired listings, priority entries first, then newest.
func (b *Board) Active() []Listing {
	now := b.opts.Now()

	b.mu.Lock()
	defer b.mu.Unlock()
	active := make([]Listing, 0, len(b.listings))
	for _, l := range b.listings {
		if now.Before(l.ExpiresAt) {
			active = append(active, l)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority
		}
		return active[i].ListedAt.After(active[j].ListedAt)
	})
	return active
}

// Filter narrows the active board view.
type Filter struct {
	Sector    string
	QuickSale bool
}

// Match returns active listings satisfying the filter, in Active order.
func (b *Board) Match(f Filter) []Listing {
	matched := make([]Listing, 0)
	for _, l := range b.Active() {
		if f.Sector != "" && l.Sector != f.Sector {
			continue
		}
		if f.QuickSale && !l.QuickSale {
			continue
		}
		matched = append(matched, l)
	}
	return matched
}

// Settle matches a listing with a buyer: the gross value includes accrued
// interest, the platform takes its trade fee, and the listing leaves the
// board.
func (b *Board) Settle(listingID string) (Trade, error) {
	now := b.opts.Now()

	b.mu.Lock()
	defer b.mu.Unlock()
	listing, ok := b.listings[listingID]
	if !ok {
		return Trade{}, ErrNotFound
	}
	if !now.Before(listing.ExpiresAt) {
		return Trade{}, ErrExpired
	}
	delete(b.listings, listingID)

	gross := listing.ListingPrice.Mul(decimal.NewFromInt(int64(listing.Quantity))).Add(listing.AccruedInterest)
	fee := pctOf(gross, b.opts.TradeFeePct)

	trade := Trade{
		ListingID:   listing.ID,
		BondID:      listing.BondID,
		Quantity:    listing.Quantity,
		GrossValue:  gross,
		PlatformFee: fee,
		NetProceeds: gross.Sub(fee),
		SettledAt:   now,
	}

	b.logger.Info().Str("listing", listing.ID).Str("net", trade.NetProceeds.String()).Msg("listing settled")
	return trade, nil
}

// Prune drops expired listings and reports how many were removed.
func (b *Board) Prune() int {
	now := b.opts.Now()

	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for id, l := range b.listings {
		if !now.Before(l.ExpiresAt) {
			delete(b.listings, id)
			removed++
		}
	}
	return removed
}

func pctOf(v decimal.Decimal, pct float64) decimal.Decimal {
	return v.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100))
}
