package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"bond-sale-alerts/internal/listings"
	"bond-sale-alerts/internal/predictor"
)

// Sell exits a holding, either instantly against the reserve fund or by
// creating a peer-to-peer listing.
func (a *App) Sell(ctx context.Context, opts SellOptions) error {
	if opts.BondID == "" {
		return fmt.Errorf("a bond id is required")
	}

	book := a.newBook()
	bond, ok := book.BondByID(opts.BondID)
	if !ok {
		return fmt.Errorf("bond %q is not listed", opts.BondID)
	}
	holding, ok := book.HoldingByBond(opts.BondID)
	if !ok {
		return fmt.Errorf("no holding in bond %q", opts.BondID)
	}

	if opts.Instant {
		return a.sellInstant(ctx, bond, holding)
	}
	return a.sellPeerToPeer(bond, holding, opts)
}

func (a *App) sellInstant(ctx context.Context, bond *predictor.Bond, holding *predictor.Holding) error {
	_, statusProvider, err := a.newProviders()
	if err != nil {
		return err
	}
	status, err := statusProvider.Status(ctx)
	if err != nil {
		return err
	}

	allocation := predictor.PersonalizedReserve(holding, status)
	if !allocation.Eligible {
		if allocation.DaysUntilEligible != nil {
			return fmt.Errorf("holding in %s becomes reserve eligible in %d days", bond.ID, *allocation.DaysUntilEligible)
		}
		return fmt.Errorf("holding in %s is not reserve eligible", bond.ID)
	}

	impact := predictor.ReserveImpactFor(holding, status)

	out := os.Stdout
	fmt.Fprintf(out, "Instant sale via reserve fund: %s (%s)\n", bond.IssuerName, bond.ID)
	fmt.Fprintf(out, "Proceeds:        %s (%.1f%% of position value)\n",
		allocation.Allocation.StringFixed(2), allocation.Percentage)
	fmt.Fprintf(out, "Reserve impact:  %.1f (%s)\n", impact.Impact, impact.Reason)
	fmt.Fprintf(out, "Remaining monthly reserve capacity: %s\n", allocation.RemainingCapacity.StringFixed(2))

	a.Logger.Info().Str("bond", bond.ID).
		Str("proceeds", allocation.Allocation.StringFixed(2)).
		Msg("instant sale settled against reserve")
	return nil
}

func (a *App) sellPeerToPeer(bond *predictor.Bond, holding *predictor.Holding, opts SellOptions) error {
	if opts.Quantity <= 0 {
		opts.Quantity = holding.Quantity
	}
	price := decimal.NewFromFloat(opts.Price)
	if opts.Price <= 0 {
		price = decimal.NewFromFloat(bond.CurrentPrice)
	}

	board := listings.NewBoard(listings.Options{
		ListingFeePct: a.Config.Listings.ListingFeePct,
		TradeFeePct:   a.Config.Listings.TradeFeePct,
		ListingTTL:    a.Config.Listings.TTL,
	}, a.Logger)

	listing, fee, err := board.Create(bond, holding, "you", price, opts.Quantity)
	if err != nil {
		return err
	}

	out := os.Stdout
	fmt.Fprintf(out, "Listed %d units of %s at %s (%+.2f%% vs market)\n",
		listing.Quantity, bond.ID, listing.ListingPrice.StringFixed(2), listing.PremiumPct)
	fmt.Fprintf(out, "Listing fee: %s, expires %s\n\n", fee.StringFixed(2),
		listing.ExpiresAt.UTC().Format("2006-01-02"))

	sameSector := board.Match(listings.Filter{Sector: bond.Sector})
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Listing\tBond\tPrice\tPremium%\tQty\tExpires")
	for _, l := range sameSector {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%+.2f\t%d\t%s\n",
			l.ID, l.BondID, l.ListingPrice.StringFixed(2), l.PremiumPct,
			l.Quantity, l.ExpiresAt.UTC().Format("2006-01-02"))
	}
	writer.Flush()
	return nil
}
