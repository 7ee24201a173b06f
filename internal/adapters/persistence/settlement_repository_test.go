package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/adapters/persistence"
	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/domain/construction"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
	"github.com/andrescamacho/manoria-go/test/helpers"
)

func TestSettlementRepositories(t *testing.T) {
	ctx := context.Background()
	economy := helpers.NewEconomy(t)
	s := economy.FoundSettlement(t, "Oakridge",
		"FG",
		"WF",
	)

	found, err := economy.Stores.Settlements.FindByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, "Oakridge", found.Name())
	assert.Equal(t, settlement.KindHomestead, found.Kind())
	assert.Equal(t, 2, found.GridSize())

	mine, err := economy.Stores.Settlements.FindByPlayer(ctx, s.PlayerID())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, s.ID(), mine[0].ID())

	occupied, err := economy.Stores.Settlements.OccupiedLocations(ctx, s.ContinentID())
	require.NoError(t, err)
	assert.Equal(t, []shared.Coordinate{s.Location()}, occupied)

	tile, err := economy.Stores.Terrain.FindTile(ctx, s.ID(), shared.NewCoordinate(1, 2))
	require.NoError(t, err)
	assert.Equal(t, "water", tile)

	_, err = economy.Stores.Terrain.FindTile(ctx, s.ID(), shared.NewCoordinate(3, 3))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	terrain, err := economy.Stores.Terrain.Load(ctx, s.ID(), s.GridSize())
	require.NoError(t, err)
	kind, _ := terrain.At(shared.NewCoordinate(2, 1))
	assert.Equal(t, "grassland", kind)

	_, err = economy.Stores.Settlements.FindByID(ctx, shared.MustNewSettlementID(99))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSettlementRepository_LocationUnique(t *testing.T) {
	ctx := context.Background()
	economy := helpers.NewEconomy(t)
	s := economy.FoundSettlement(t, "First", "F")

	clash, err := settlement.NewSettlement("Second", settlement.KindHomestead, s.PlayerID(), s.ContinentID(), s.Location(), 1)
	require.NoError(t, err)
	_, err = economy.Stores.Settlements.Add(ctx, clash)
	assert.Error(t, err)
}

func TestContinentRepository(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewGormContinentRepository(helpers.NewTestDB(t))

	c, err := settlement.NewContinent("Manoria", 10, 8)
	require.NoError(t, err)
	added, err := repo.Add(ctx, c)
	require.NoError(t, err)
	assert.False(t, added.ID().Value() == 0)

	byName, err := repo.FindByName(ctx, "Manoria")
	require.NoError(t, err)
	assert.Equal(t, added.ID(), byName.ID())
	assert.Equal(t, 80, byName.Capacity())

	_, err = repo.FindByName(ctx, "Atlantis")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestEntryRepository(t *testing.T) {
	ctx := context.Background()
	economy := helpers.NewEconomy(t)
	s := economy.FoundSettlement(t, "Millbrook", "FF", "FF")
	repo := economy.Stores.Entries

	late, err := construction.NewEntry(s.ID(), "farm", shared.NewCoordinate(2, 2), helpers.T0.Add(2*time.Minute), helpers.T0.Add(4*time.Minute))
	require.NoError(t, err)
	early, err := construction.NewEntry(s.ID(), "house", shared.NewCoordinate(1, 1), helpers.T0, helpers.T0.Add(2*time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, late))
	require.NoError(t, repo.Add(ctx, early))

	entries, err := repo.FindBySettlement(ctx, s.ID())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, early.ID(), entries[0].ID(), "ordered by start")
	assert.True(t, entries[1].ConstructionEnd().Equal(helpers.T0.Add(4*time.Minute)))

	byID, err := repo.FindByID(ctx, late.ID())
	require.NoError(t, err)
	assert.Equal(t, "farm", byID.BuildingKind())

	clash, err := construction.NewEntry(s.ID(), "farm", shared.NewCoordinate(1, 1), helpers.T0.Add(time.Hour), helpers.T0.Add(2*time.Hour))
	require.NoError(t, err)
	err = repo.Add(ctx, clash)
	assert.ErrorIs(t, err, construction.ErrPositionOccupied)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	economy := helpers.NewEconomy(t)
	before := economy.SnapshotCount(t)

	err := economy.Transactor.WithinTransaction(ctx, func(ctx context.Context, stores common.Stores) error {
		p, _ := player.NewPlayer("ghost", helpers.T0)
		require.NoError(t, stores.Players.Add(ctx, p))
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = economy.Stores.Players.FindByName(ctx, "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, before, economy.SnapshotCount(t))
}
