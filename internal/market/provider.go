package market

import (
	"context"

	"bond-sale-alerts/internal/predictor"
)

// SnapshotProvider supplies the market snapshot scored on each cycle.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*predictor.MarketSnapshot, error)
}

// StatusProvider supplies the platform liquidity status.
type StatusProvider interface {
	Status(ctx context.Context) (*predictor.PlatformStatus, error)
}
