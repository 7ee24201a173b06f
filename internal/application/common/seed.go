package common

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
)

// SeedLedgers opens one ledger per starting balance for a new subject
func SeedLedgers(
	ctx context.Context,
	snapshots resource.SnapshotRepository,
	subject resource.Subject,
	balances []catalog.StartingBalance,
	at time.Time,
) error {
	ledger := resource.NewLedger(snapshots)
	for _, balance := range balances {
		snapshot, err := resource.NewSnapshot(subject, balance.Resource, balance.Count, at, balance.NaturalRate, decimal.Zero, balance.Limit)
		if err != nil {
			return fmt.Errorf("invalid starting balance for %s: %w", balance.Resource, err)
		}
		if err := ledger.AppendSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to seed %s ledger: %w", balance.Resource, err)
		}
	}
	return nil
}
