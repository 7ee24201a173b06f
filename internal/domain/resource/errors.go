package resource

import (
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// ErrInvalidTimestamp is matched by InvalidTimestampError
var ErrInvalidTimestamp = errors.New("invalid snapshot timestamp")

// ErrInsufficientResources is matched by InsufficientResourcesError
var ErrInsufficientResources = errors.New("insufficient resources")

// SnapshotNotFoundError reports that no snapshot exists at or before the query time
type SnapshotNotFoundError struct {
	Subject Subject
	Kind    Kind
	AsOf    time.Time
}

func (e *SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("no %s snapshot for %s at or before %s",
		e.Kind, e.Subject, e.AsOf.Format(time.RFC3339))
}

func (e *SnapshotNotFoundError) Is(target error) bool {
	return target == shared.ErrNotFound
}

// InvalidTimestampError means an append would break the monotonic ordering of a ledger.
// It signals a serialization bug upstream rather than bad user input.
type InvalidTimestampError struct {
	Subject   Subject
	Kind      Kind
	Timestamp time.Time
	Latest    time.Time
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("snapshot for %s/%s at %s precedes latest snapshot at %s",
		e.Subject, e.Kind, e.Timestamp.Format(time.RFC3339Nano), e.Latest.Format(time.RFC3339Nano))
}

func (e *InvalidTimestampError) Is(target error) bool {
	return target == ErrInvalidTimestamp
}

// InsufficientResourcesError reports a spend larger than the projected stock
type InsufficientResourcesError struct {
	Kind      Kind
	Required  int
	Available int
}

func (e *InsufficientResourcesError) Error() string {
	return fmt.Sprintf("insufficient %s: need %d, have %d", e.Kind, e.Required, e.Available)
}

func (e *InsufficientResourcesError) Is(target error) bool {
	return target == ErrInsufficientResources
}
