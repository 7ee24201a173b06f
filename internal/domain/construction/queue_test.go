package construction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

var (
	t0         = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	settlement = shared.MustNewSettlementID(1)
)

func entry(t *testing.T, x int, start time.Time, d time.Duration) *Entry {
	t.Helper()
	e, err := NewEntry(settlement, "farm", shared.NewCoordinate(x, 1), start, start.Add(d))
	require.NoError(t, err)
	return e
}

func TestEntry_StatusAt(t *testing.T) {
	e := entry(t, 1, t0, 2*time.Minute)

	assert.Equal(t, StatusQueued, e.StatusAt(t0.Add(-time.Second)))
	assert.Equal(t, StatusUnderConstruction, e.StatusAt(t0))
	assert.Equal(t, StatusUnderConstruction, e.StatusAt(t0.Add(2*time.Minute-time.Microsecond)))
	assert.Equal(t, StatusBuilt, e.StatusAt(t0.Add(2*time.Minute)), "end is exclusive")
}

func TestNewEntry_Validation(t *testing.T) {
	_, err := NewEntry(settlement, "farm", shared.NewCoordinate(1, 1), t0, t0)
	assert.Error(t, err, "end must be after start")

	_, err = NewEntry(shared.SettlementID{}, "farm", shared.NewCoordinate(1, 1), t0, t0.Add(time.Minute))
	assert.Error(t, err)

	_, err = NewEntry(settlement, "", shared.NewCoordinate(1, 1), t0, t0.Add(time.Minute))
	assert.Error(t, err)
}

func TestEntry_Overlaps(t *testing.T) {
	a := entry(t, 1, t0, 2*time.Minute)
	b := entry(t, 2, t0.Add(2*time.Minute), 2*time.Minute)
	c := entry(t, 3, t0.Add(time.Minute), 2*time.Minute)

	assert.False(t, a.Overlaps(b), "adjacent half-open intervals do not overlap")
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(b))
}

func TestQueue_Partitions(t *testing.T) {
	built := entry(t, 1, t0.Add(-10*time.Minute), 2*time.Minute)
	current := entry(t, 2, t0.Add(-time.Minute), 2*time.Minute)
	waiting := entry(t, 3, t0.Add(time.Minute), 2*time.Minute)
	q := NewQueue(settlement, []*Entry{waiting, built, current})

	assert.Equal(t, []*Entry{built, current, waiting}, q.All(), "ordered by start")
	assert.Equal(t, []*Entry{current, waiting}, q.Queued(t0))
	assert.Equal(t, []*Entry{built}, q.Completed(t0))
	assert.Same(t, current, q.UnderConstruction(t0))
	assert.Same(t, waiting, q.Tail(t0))
	assert.Equal(t, 3, q.Len())
}

func TestQueue_NextSlot(t *testing.T) {
	d := 2 * time.Minute

	start, end := NewQueue(settlement, nil).NextSlot(t0, d)
	assert.Equal(t, t0, start, "empty queue starts now")
	assert.Equal(t, t0.Add(d), end)

	a := entry(t, 1, t0, d)
	start, end = NewQueue(settlement, []*Entry{a}).NextSlot(t0, d)
	assert.Equal(t, t0.Add(d), start, "starts when the tail ends")
	assert.Equal(t, t0.Add(2*d), end)

	start, _ = NewQueue(settlement, []*Entry{a}).NextSlot(t0.Add(time.Hour), d)
	assert.Equal(t, t0.Add(time.Hour), start, "fully built queue starts now")
}

func TestQueue_Occupancy(t *testing.T) {
	a := entry(t, 4, t0.Add(-time.Hour), time.Minute)
	q := NewQueue(settlement, []*Entry{a})

	assert.True(t, q.IsOccupied(shared.NewCoordinate(4, 1)), "built entries still hold their plot")
	assert.False(t, q.IsOccupied(shared.NewCoordinate(4, 2)))
	assert.Same(t, a, q.At(shared.NewCoordinate(4, 1)))
	assert.Nil(t, q.Tail(t0))
	assert.Nil(t, q.UnderConstruction(t0))
}
