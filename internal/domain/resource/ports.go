package resource

import (
	"context"
	"time"
)

// SnapshotRepository defines persistence operations for the append-only snapshot log
type SnapshotRepository interface {
	// Append persists a new snapshot. Existing rows are never updated.
	Append(ctx context.Context, snapshot *Snapshot) error

	// FindLatestAt returns the snapshot with the greatest timestamp <= asOf
	// (ties broken by insertion order), or nil when the ledger has none.
	FindLatestAt(ctx context.Context, subject Subject, kind Kind, asOf time.Time) (*Snapshot, error)

	// FindLatest returns the newest snapshot regardless of time, or nil.
	FindLatest(ctx context.Context, subject Subject, kind Kind) (*Snapshot, error)

	// FindHistory returns every snapshot of the ledger in ascending order
	FindHistory(ctx context.Context, subject Subject, kind Kind) ([]*Snapshot, error)
}
