package construction

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// Status is derived from the entry's interval and the query time; it is never stored
type Status string

const (
	StatusQueued            Status = "queued"
	StatusUnderConstruction Status = "under_construction"
	StatusBuilt             Status = "built"
)

func (s Status) String() string {
	return string(s)
}

// Entry is one building occupying a queue slot and a grid position in a settlement.
// Its construction interval is half-open: [start, end).
type Entry struct {
	id                string
	settlementID      shared.SettlementID
	buildingKind      string
	position          shared.Coordinate
	constructionStart time.Time
	constructionEnd   time.Time
}

// NewEntry creates a construction entry with validation
func NewEntry(
	settlementID shared.SettlementID,
	buildingKind string,
	position shared.Coordinate,
	start time.Time,
	end time.Time,
) (*Entry, error) {
	if settlementID.IsZero() {
		return nil, shared.NewValidationError("settlement_id", "cannot be zero")
	}
	if buildingKind == "" {
		return nil, shared.NewValidationError("building_kind", "cannot be empty")
	}
	start = start.UTC().Truncate(time.Microsecond)
	end = end.UTC().Truncate(time.Microsecond)
	if !end.After(start) {
		return nil, shared.NewValidationError("construction_end",
			fmt.Sprintf("must be after construction_start (%s >= %s)", start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}

	return &Entry{
		id:                uuid.New().String(),
		settlementID:      settlementID,
		buildingKind:      buildingKind,
		position:          position,
		constructionStart: start,
		constructionEnd:   end,
	}, nil
}

// ReconstructEntry rebuilds an entry from persistence
func ReconstructEntry(
	id string,
	settlementID shared.SettlementID,
	buildingKind string,
	position shared.Coordinate,
	start time.Time,
	end time.Time,
) *Entry {
	return &Entry{
		id:                id,
		settlementID:      settlementID,
		buildingKind:      buildingKind,
		position:          position,
		constructionStart: start.UTC(),
		constructionEnd:   end.UTC(),
	}
}

func (e *Entry) ID() string                        { return e.id }
func (e *Entry) SettlementID() shared.SettlementID { return e.settlementID }
func (e *Entry) BuildingKind() string              { return e.buildingKind }
func (e *Entry) Position() shared.Coordinate       { return e.position }
func (e *Entry) ConstructionStart() time.Time      { return e.constructionStart }
func (e *Entry) ConstructionEnd() time.Time        { return e.constructionEnd }

// StatusAt derives the entry's status at the given instant
func (e *Entry) StatusAt(asOf time.Time) Status {
	switch {
	case asOf.Before(e.constructionStart):
		return StatusQueued
	case asOf.Before(e.constructionEnd):
		return StatusUnderConstruction
	default:
		return StatusBuilt
	}
}

// IsBuiltAt reports whether construction has finished by asOf
func (e *Entry) IsBuiltAt(asOf time.Time) bool {
	return !asOf.Before(e.constructionEnd)
}

// Overlaps reports whether two intervals share any instant
func (e *Entry) Overlaps(other *Entry) bool {
	return e.constructionStart.Before(other.constructionEnd) && other.constructionStart.Before(e.constructionEnd)
}

// String provides a human-readable representation
func (e *Entry) String() string {
	return fmt.Sprintf("%s on settlement %s at %s [%s, %s)",
		e.buildingKind, e.settlementID, e.position,
		e.constructionStart.Format(time.RFC3339), e.constructionEnd.Format(time.RFC3339))
}
