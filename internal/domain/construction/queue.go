package construction

import (
	"sort"
	"time"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// Queue is a settlement's construction entries. It partitions them by derived
// status and computes where the next entry fits.
type Queue struct {
	settlementID shared.SettlementID
	entries      []*Entry
}

// NewQueue builds a queue from a settlement's entries in any order
func NewQueue(settlementID shared.SettlementID, entries []*Entry) *Queue {
	sorted := append([]*Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ConstructionStart().Before(sorted[j].ConstructionStart())
	})
	return &Queue{settlementID: settlementID, entries: sorted}
}

func (q *Queue) SettlementID() shared.SettlementID { return q.settlementID }

// Len returns the number of entries in every state
func (q *Queue) Len() int {
	return len(q.entries)
}

// All returns every entry ordered by construction start
func (q *Queue) All() []*Entry {
	return append([]*Entry(nil), q.entries...)
}

// Queued returns entries not yet built (end > asOf), ordered by start ascending.
// This includes the entry under construction.
func (q *Queue) Queued(asOf time.Time) []*Entry {
	var queued []*Entry
	for _, e := range q.entries {
		if e.ConstructionEnd().After(asOf) {
			queued = append(queued, e)
		}
	}
	return queued
}

// Completed returns entries with end <= asOf
func (q *Queue) Completed(asOf time.Time) []*Entry {
	var built []*Entry
	for _, e := range q.entries {
		if e.IsBuiltAt(asOf) {
			built = append(built, e)
		}
	}
	return built
}

// UnderConstruction returns the entry being built at asOf, or nil
func (q *Queue) UnderConstruction(asOf time.Time) *Entry {
	for _, e := range q.entries {
		if e.StatusAt(asOf) == StatusUnderConstruction {
			return e
		}
	}
	return nil
}

// Tail returns the last-in-line unfinished entry, or nil when nothing is queued
func (q *Queue) Tail(asOf time.Time) *Entry {
	var tail *Entry
	for _, e := range q.Queued(asOf) {
		if tail == nil || !e.ConstructionStart().Before(tail.ConstructionStart()) {
			tail = e
		}
	}
	return tail
}

// NextSlot returns the interval for a new entry: it starts when the tail ends,
// or at now when the queue is empty or fully built.
func (q *Queue) NextSlot(now time.Time, duration time.Duration) (time.Time, time.Time) {
	start := now
	if tail := q.Tail(now); tail != nil {
		start = tail.ConstructionEnd()
	}
	return start, start.Add(duration)
}

// At returns the entry occupying a position, or nil
func (q *Queue) At(position shared.Coordinate) *Entry {
	for _, e := range q.entries {
		if e.Position() == position {
			return e
		}
	}
	return nil
}

// IsOccupied reports whether any entry, in any state, holds the position
func (q *Queue) IsOccupied(position shared.Coordinate) bool {
	return q.At(position) != nil
}
