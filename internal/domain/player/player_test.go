package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer(t *testing.T) {
	at := time.Date(2024, 3, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600))

	p, err := NewPlayer("  alice  ", at)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Name)
	assert.Equal(t, time.UTC, p.CreatedAt.Location())
	assert.True(t, p.ID.IsZero())

	_, err = NewPlayer("   ", at)
	assert.Error(t, err)

	_, err = NewPlayer("abcdefghijklmnopqrstu", at)
	assert.Error(t, err, "21 characters")

	_, err = NewPlayer("abcdefghijklmnopqrst", at)
	assert.NoError(t, err, "20 characters")
}
