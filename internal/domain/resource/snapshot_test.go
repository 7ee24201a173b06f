package resource

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func mustSnapshot(t *testing.T, count int, rate string, adjustment string, limit int) *Snapshot {
	t.Helper()
	s, err := NewSnapshot(SettlementSubject(1), "wood", count, t0,
		decimal.RequireFromString(rate), decimal.RequireFromString(adjustment), limit)
	require.NoError(t, err)
	return s
}

func TestSnapshot_AmountAt(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		rate     string
		adjust   string
		limit    int
		elapsed  time.Duration
		expected int
	}{
		{"at the snapshot instant", 100, "10", "0", 0, 0, 100},
		{"one hour", 100, "10", "0", 0, time.Hour, 110},
		{"six minutes", 100, "10", "0", 0, 6 * time.Minute, 101},
		{"truncates fractional production", 100, "10", "0", 0, 5 * time.Minute, 100},
		{"sub-second elapsed is ignored", 100, "3600", "0", 0, 999 * time.Millisecond, 100},
		{"rate adjustment adds to natural rate", 0, "2.5", "5", 0, 2 * time.Hour, 15},
		{"clamped at limit", 40, "100", "0", 50, time.Hour, 50},
		{"negative rate floors at zero", 10, "-20", "0", 0, time.Hour, 0},
		{"unbounded when limit is zero", 0, "1000", "0", 0, 10 * time.Hour, 10000},
		{"before the snapshot extrapolates backwards and clamps", 5, "10", "0", 0, -time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSnapshot(t, tt.count, tt.rate, tt.adjust, tt.limit)
			assert.Equal(t, tt.expected, s.AmountAt(t0.Add(tt.elapsed)))
		})
	}
}

func TestSnapshot_AmountAtIsIdempotent(t *testing.T) {
	s := mustSnapshot(t, 7, "3.3", "0", 0)
	at := t0.Add(17 * time.Minute)
	assert.Equal(t, s.AmountAt(at), s.AmountAt(at))
}

func TestSnapshot_Rate(t *testing.T) {
	s := mustSnapshot(t, 0, "2.5", "5", 0)
	assert.True(t, decimal.RequireFromString("7.5").Equal(s.Rate()))
}

func TestNewSnapshot_Validation(t *testing.T) {
	_, err := NewSnapshot(Subject{}, "wood", 0, t0, decimal.Zero, decimal.Zero, 0)
	assert.Error(t, err)

	_, err = NewSnapshot(SettlementSubject(1), "", 0, t0, decimal.Zero, decimal.Zero, 0)
	assert.Error(t, err)

	_, err = NewSnapshot(SettlementSubject(1), "wood", 0, time.Time{}, decimal.Zero, decimal.Zero, 0)
	assert.Error(t, err)

	_, err = NewSnapshot(SettlementSubject(1), "wood", 0, t0, decimal.Zero, decimal.Zero, -1)
	assert.Error(t, err)
}

func TestNewSnapshot_NormalizesTimestamp(t *testing.T) {
	local := time.Date(2024, 3, 1, 14, 0, 0, 123456789, time.FixedZone("CET", 2*3600))
	s, err := NewSnapshot(SettlementSubject(1), "wood", 0, local, decimal.Zero, decimal.Zero, 0)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, s.Timestamp().Location())
	assert.Equal(t, 123456000, s.Timestamp().Nanosecond())
	assert.True(t, s.Timestamp().Equal(time.Date(2024, 3, 1, 12, 0, 0, 123456000, time.UTC)))
}

func TestSnapshot_Successor(t *testing.T) {
	s := mustSnapshot(t, 10, "4", "1", 99)
	next, err := s.Successor(20, t0.Add(time.Hour), decimal.NewFromInt(6), 0)
	require.NoError(t, err)

	assert.NotEqual(t, s.ID(), next.ID())
	assert.True(t, next.Subject().Equals(s.Subject()))
	assert.Equal(t, s.Kind(), next.Kind())
	assert.True(t, next.NaturalRate().Equal(s.NaturalRate()))
	assert.True(t, next.Rate().Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 0, next.Limit())
}
