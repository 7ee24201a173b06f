package resource

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// memoryRepository keeps snapshots in insertion order
type memoryRepository struct {
	rows []*Snapshot
}

func (r *memoryRepository) Append(_ context.Context, s *Snapshot) error {
	r.rows = append(r.rows, ReconstructSnapshot(s.ID(), int64(len(r.rows)+1), s.Subject(), s.Kind(),
		s.Count(), s.Timestamp(), s.NaturalRate(), s.RateAdjustment(), s.Limit()))
	return nil
}

func (r *memoryRepository) FindLatestAt(ctx context.Context, subject Subject, kind Kind, asOf time.Time) (*Snapshot, error) {
	history, _ := r.FindHistory(ctx, subject, kind)
	var latest *Snapshot
	for _, s := range history {
		if !s.Timestamp().After(asOf) {
			latest = s
		}
	}
	return latest, nil
}

func (r *memoryRepository) FindLatest(ctx context.Context, subject Subject, kind Kind) (*Snapshot, error) {
	history, _ := r.FindHistory(ctx, subject, kind)
	if len(history) == 0 {
		return nil, nil
	}
	return history[len(history)-1], nil
}

func (r *memoryRepository) FindHistory(_ context.Context, subject Subject, kind Kind) ([]*Snapshot, error) {
	var out []*Snapshot
	for _, s := range r.rows {
		if s.Subject().Equals(subject) && s.Kind() == kind {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp().Equal(out[j].Timestamp()) {
			return out[i].Sequence() < out[j].Sequence()
		}
		return out[i].Timestamp().Before(out[j].Timestamp())
	})
	return out, nil
}

func seed(t *testing.T, l *Ledger, count int, rate int64, at time.Time, limit int) {
	t.Helper()
	s, err := NewSnapshot(SettlementSubject(1), "wood", count, at, decimal.NewFromInt(rate), decimal.Zero, limit)
	require.NoError(t, err)
	require.NoError(t, l.AppendSnapshot(context.Background(), s))
}

func TestLedger_CurrentAmount(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(&memoryRepository{})
	seed(t, l, 100, 10, t0, 0)

	amount, err := l.CurrentAmount(ctx, SettlementSubject(1), "wood", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 110, amount)

	_, err = l.CurrentAmount(ctx, SettlementSubject(1), "wood", t0.Add(-time.Second))
	var notFound *SnapshotNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = l.CurrentAmount(ctx, SettlementSubject(2), "wood", t0)
	assert.ErrorIs(t, err, shared.ErrNotFound, "another subject's ledger is not shared")
}

func TestLedger_FutureSnapshotOnlyAffectsLaterReads(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(&memoryRepository{})
	seed(t, l, 100, 10, t0, 0)
	seed(t, l, 500, 0, t0.Add(2*time.Hour), 0)

	before, err := l.CurrentAmount(ctx, SettlementSubject(1), "wood", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 110, before)

	after, err := l.CurrentAmount(ctx, SettlementSubject(1), "wood", t0.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 500, after)
}

func TestLedger_AppendSnapshot_Ordering(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(&memoryRepository{})
	seed(t, l, 1, 0, t0, 0)

	earlier, err := NewSnapshot(SettlementSubject(1), "wood", 2, t0.Add(-time.Minute), decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)
	err = l.AppendSnapshot(ctx, earlier)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	equal, err := NewSnapshot(SettlementSubject(1), "wood", 3, t0, decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)
	require.NoError(t, l.AppendSnapshot(ctx, equal), "equal timestamps are allowed")

	amount, err := l.CurrentAmount(ctx, SettlementSubject(1), "wood", t0)
	require.NoError(t, err)
	assert.Equal(t, 3, amount, "ties resolve to the later insert")

	other, err := NewSnapshot(SettlementSubject(1), "stone", 0, t0.Add(-time.Hour), decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)
	assert.NoError(t, l.AppendSnapshot(ctx, other), "ordering is per resource kind")
}

func TestLedger_History(t *testing.T) {
	l := NewLedger(&memoryRepository{})
	seed(t, l, 1, 0, t0, 0)
	seed(t, l, 2, 0, t0.Add(time.Hour), 0)

	history, err := l.History(context.Background(), SettlementSubject(1), "wood")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Count())
	assert.Equal(t, 2, history[1].Count())
}

func TestLedger_Adjust(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{}
	l := NewLedger(repo)
	seed(t, l, 100, 10, t0, 200)

	spent, err := l.Adjust(ctx, SettlementSubject(1), "wood", -30, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 80, spent.Count())
	assert.True(t, spent.Timestamp().Equal(t0.Add(time.Hour)))
	assert.Equal(t, 200, spent.Limit(), "limit carried over")
	assert.True(t, spent.NaturalRate().Equal(decimal.NewFromInt(10)), "rate carried over")

	_, err = l.Adjust(ctx, SettlementSubject(1), "wood", -1000, t0.Add(time.Hour))
	var insufficient *InsufficientResourcesError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1000, insufficient.Required)
	assert.Equal(t, 80, insufficient.Available)
	assert.Len(t, repo.rows, 2, "failed adjust writes nothing")
}

func TestLedger_Adjust_NeverRewritesFutureHistory(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(&memoryRepository{})
	seed(t, l, 100, 10, t0, 0)
	seed(t, l, 50, 20, t0.Add(2*time.Hour), 0)

	adjusted, err := l.Adjust(ctx, SettlementSubject(1), "wood", 5, t0)
	require.NoError(t, err)
	assert.True(t, adjusted.Timestamp().Equal(t0.Add(2*time.Hour)), "takes effect at the latest snapshot")
	assert.Equal(t, 55, adjusted.Count())
	assert.True(t, adjusted.NaturalRate().Equal(decimal.NewFromInt(20)))
}

func TestLedger_Adjust_SpendMustBeHeldNow(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{}
	l := NewLedger(repo)
	seed(t, l, 100, 10, t0, 0)
	seed(t, l, 200, 15, t0.Add(10*time.Hour), 0)

	_, err := l.Adjust(ctx, SettlementSubject(1), "wood", -115, t0)
	var insufficient *InsufficientResourcesError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 100, insufficient.Available, "only the amount held at the time of the spend counts")
	assert.Len(t, repo.rows, 2)

	spent, err := l.Adjust(ctx, SettlementSubject(1), "wood", -100, t0)
	require.NoError(t, err)
	assert.True(t, spent.Timestamp().Equal(t0.Add(10*time.Hour)))
	assert.Equal(t, 100, spent.Count())
}

func TestLedger_Adjust_SpendMustBeHeldAtLaterSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{}
	l := NewLedger(repo)
	seed(t, l, 100, 10, t0, 0)
	seed(t, l, 50, 20, t0.Add(time.Hour), 0)
	seed(t, l, 80, 20, t0.Add(2*time.Hour), 0)

	_, err := l.Adjust(ctx, SettlementSubject(1), "wood", -60, t0)
	var insufficient *InsufficientResourcesError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 50, insufficient.Available)
	assert.Len(t, repo.rows, 3)

	spent, err := l.Adjust(ctx, SettlementSubject(1), "wood", -50, t0)
	require.NoError(t, err)
	assert.Equal(t, 30, spent.Count())
}

func TestLedger_Adjust_UnknownLedger(t *testing.T) {
	_, err := NewLedger(&memoryRepository{}).Adjust(context.Background(), PlayerSubject(9), "gold", 1, t0)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
