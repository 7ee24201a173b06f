package resource

import (
	"context"
	"fmt"
	"time"
)

// Ledger answers "how much of X does S have at time T" from the snapshot log
// and guards the log's monotonic ordering on append.
type Ledger struct {
	repo SnapshotRepository
}

// NewLedger creates a ledger over a snapshot store
func NewLedger(repo SnapshotRepository) *Ledger {
	return &Ledger{repo: repo}
}

// Projection is an extrapolated amount together with the snapshot it came from
type Projection struct {
	Amount int
	AsOf   time.Time
	Basis  *Snapshot
}

// Project locates the latest snapshot at or before asOf and extrapolates it
func (l *Ledger) Project(ctx context.Context, subject Subject, kind Kind, asOf time.Time) (*Projection, error) {
	snapshot, err := l.repo.FindLatestAt(ctx, subject, kind, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, &SnapshotNotFoundError{Subject: subject, Kind: kind, AsOf: asOf}
	}

	return &Projection{
		Amount: snapshot.AmountAt(asOf),
		AsOf:   asOf,
		Basis:  snapshot,
	}, nil
}

// CurrentAmount returns the extrapolated amount at asOf
func (l *Ledger) CurrentAmount(ctx context.Context, subject Subject, kind Kind, asOf time.Time) (int, error) {
	projection, err := l.Project(ctx, subject, kind, asOf)
	if err != nil {
		return 0, err
	}
	return projection.Amount, nil
}

// AppendSnapshot adds a snapshot to the end of its ledger. The timestamp must
// not precede the latest existing snapshot of the same subject and kind.
func (l *Ledger) AppendSnapshot(ctx context.Context, snapshot *Snapshot) error {
	latest, err := l.repo.FindLatest(ctx, snapshot.Subject(), snapshot.Kind())
	if err != nil {
		return fmt.Errorf("failed to load latest snapshot: %w", err)
	}
	if latest != nil && snapshot.Timestamp().Before(latest.Timestamp()) {
		return &InvalidTimestampError{
			Subject:   snapshot.Subject(),
			Kind:      snapshot.Kind(),
			Timestamp: snapshot.Timestamp(),
			Latest:    latest.Timestamp(),
		}
	}

	if err := l.repo.Append(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to append snapshot: %w", err)
	}
	return nil
}

// History returns the full audit trail of a ledger, oldest first
func (l *Ledger) History(ctx context.Context, subject Subject, kind Kind) ([]*Snapshot, error) {
	snapshots, err := l.repo.FindHistory(ctx, subject, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot history: %w", err)
	}
	return snapshots, nil
}

// Adjust records a discontinuous change of delta units (a spend when negative).
//
// The change takes effect at asOf, or at the latest existing snapshot when that
// one is future-dated, so pre-registered rate changes are never rewritten. A
// spend must be covered at asOf and at every snapshot after it.
func (l *Ledger) Adjust(ctx context.Context, subject Subject, kind Kind, delta int, asOf time.Time) (*Snapshot, error) {
	latest, err := l.repo.FindLatest(ctx, subject, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}
	if latest == nil {
		return nil, &SnapshotNotFoundError{Subject: subject, Kind: kind, AsOf: asOf}
	}

	effectiveAt := asOf
	if latest.Timestamp().After(effectiveAt) {
		effectiveAt = latest.Timestamp()
	}

	available := latest.AmountAt(effectiveAt)
	if delta < 0 && effectiveAt.After(asOf) {
		available, err = l.lowestFrom(ctx, subject, kind, asOf, available)
		if err != nil {
			return nil, err
		}
	}
	if available+delta < 0 {
		return nil, &InsufficientResourcesError{Kind: kind, Required: -delta, Available: available}
	}

	next, err := latest.Successor(latest.AmountAt(effectiveAt)+delta, effectiveAt, latest.RateAdjustment(), latest.Limit())
	if err != nil {
		return nil, err
	}
	if err := l.AppendSnapshot(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// lowestFrom returns the smallest amount held at asOf or at any later snapshot
func (l *Ledger) lowestFrom(ctx context.Context, subject Subject, kind Kind, asOf time.Time, lowest int) (int, error) {
	current, err := l.repo.FindLatestAt(ctx, subject, kind, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if current != nil {
		lowest = min(lowest, current.AmountAt(asOf))
	}

	history, err := l.History(ctx, subject, kind)
	if err != nil {
		return 0, err
	}
	for _, s := range history {
		if s.Timestamp().After(asOf) {
			lowest = min(lowest, s.AmountAt(s.Timestamp()))
		}
	}
	return lowest, nil
}
