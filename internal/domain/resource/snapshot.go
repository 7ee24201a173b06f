package resource

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// Snapshot is an immutable point-in-time record of a quantity and its rate.
// Amounts after the snapshot are derived by extrapolation and never stored.
type Snapshot struct {
	id             string
	sequence       int64 // insertion order, assigned by the store; breaks timestamp ties
	subject        Subject
	kind           Kind
	count          int
	timestamp      time.Time
	naturalRate    decimal.Decimal // quantity per hour
	rateAdjustment decimal.Decimal
	limit          int // 0 = unbounded
}

// NewSnapshot creates a new snapshot with validation
func NewSnapshot(
	subject Subject,
	kind Kind,
	count int,
	timestamp time.Time,
	naturalRate decimal.Decimal,
	rateAdjustment decimal.Decimal,
	limit int,
) (*Snapshot, error) {
	if subject.IsZero() {
		return nil, fmt.Errorf("snapshot subject cannot be empty")
	}
	if kind.IsZero() {
		return nil, fmt.Errorf("snapshot resource kind cannot be empty")
	}
	if timestamp.IsZero() {
		return nil, fmt.Errorf("snapshot timestamp cannot be zero")
	}
	if limit < 0 {
		return nil, fmt.Errorf("snapshot limit cannot be negative: %d", limit)
	}

	return &Snapshot{
		id:             uuid.New().String(),
		subject:        subject,
		kind:           kind,
		count:          count,
		timestamp:      normalizeTime(timestamp),
		naturalRate:    naturalRate,
		rateAdjustment: rateAdjustment,
		limit:          limit,
	}, nil
}

// ReconstructSnapshot rebuilds a snapshot from persistence
func ReconstructSnapshot(
	id string,
	sequence int64,
	subject Subject,
	kind Kind,
	count int,
	timestamp time.Time,
	naturalRate decimal.Decimal,
	rateAdjustment decimal.Decimal,
	limit int,
) *Snapshot {
	return &Snapshot{
		id:             id,
		sequence:       sequence,
		subject:        subject,
		kind:           kind,
		count:          count,
		timestamp:      normalizeTime(timestamp),
		naturalRate:    naturalRate,
		rateAdjustment: rateAdjustment,
		limit:          limit,
	}
}

// Successor builds the next snapshot in the same ledger. The natural rate is
// carried over; everything that changes discontinuously is passed in.
func (s *Snapshot) Successor(count int, timestamp time.Time, rateAdjustment decimal.Decimal, limit int) (*Snapshot, error) {
	return NewSnapshot(s.subject, s.kind, count, timestamp, s.naturalRate, rateAdjustment, limit)
}

func (s *Snapshot) ID() string                      { return s.id }
func (s *Snapshot) Sequence() int64                 { return s.sequence }
func (s *Snapshot) Subject() Subject                { return s.subject }
func (s *Snapshot) Kind() Kind                      { return s.kind }
func (s *Snapshot) Count() int                      { return s.count }
func (s *Snapshot) Timestamp() time.Time            { return s.timestamp }
func (s *Snapshot) NaturalRate() decimal.Decimal    { return s.naturalRate }
func (s *Snapshot) RateAdjustment() decimal.Decimal { return s.rateAdjustment }
func (s *Snapshot) Limit() int                      { return s.limit }

// Rate is the effective production rate per hour (not rounded)
func (s *Snapshot) Rate() decimal.Decimal {
	return s.naturalRate.Add(s.rateAdjustment)
}

// AmountAt extrapolates the quantity to the given instant.
//
// Elapsed time is counted in whole seconds. The raw value is truncated toward
// zero, then clamped to [0, limit], or [0, ∞) when the snapshot is unbounded.
func (s *Snapshot) AmountAt(t time.Time) int {
	elapsedSeconds := int64(t.Sub(s.timestamp) / time.Second)

	produced := s.Rate().Mul(decimal.NewFromInt(elapsedSeconds)).Div(secondsPerHour)
	raw := decimal.NewFromInt(int64(s.count)).Add(produced).IntPart()

	if raw < 0 {
		raw = 0
	}
	if s.limit > 0 && raw > int64(s.limit) {
		raw = int64(s.limit)
	}
	return int(raw)
}

// String provides a human-readable representation
func (s *Snapshot) String() string {
	return fmt.Sprintf("Snapshot[%s %s count=%d rate=%s limit=%d at %s]",
		s.subject, s.kind, s.count, s.Rate().String(), s.limit, s.timestamp.Format(time.RFC3339))
}

// normalizeTime stores instants in UTC at the precision every supported database keeps
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
