package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/adapters/persistence"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
	"github.com/andrescamacho/manoria-go/test/helpers"
)

func TestPlayerRepository_AddAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)
	p, err := player.NewPlayer("alice", helpers.T0)
	require.NoError(t, err)

	// Act
	err = repo.Add(context.Background(), p)

	// Assert
	require.NoError(t, err)
	assert.False(t, p.ID.IsZero(), "Add assigns the id")

	found, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Name)
	assert.True(t, found.CreatedAt.Equal(helpers.T0))

	byName, err := repo.FindByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)
}

func TestPlayerRepository_NameTaken(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)

	first, _ := player.NewPlayer("bob", time.Now())
	require.NoError(t, repo.Add(context.Background(), first))

	second, _ := player.NewPlayer("bob", time.Now())
	err := repo.Add(context.Background(), second)

	assert.ErrorIs(t, err, player.ErrNameTaken)
}

func TestPlayerRepository_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)

	_, err := repo.FindByID(context.Background(), shared.MustNewPlayerID(999))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByName(context.Background(), "nobody")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
