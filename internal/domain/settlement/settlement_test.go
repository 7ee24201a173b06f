package settlement

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindHomestead, k)

	k, err = ParseKind("town")
	require.NoError(t, err)
	assert.Equal(t, KindTown, k)

	_, err = ParseKind("metropolis")
	var validation *shared.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestNewSettlement(t *testing.T) {
	player := shared.MustNewPlayerID(1)
	continent := shared.MustNewContinentID(1)
	loc := shared.NewCoordinate(3, 3)

	s, err := NewSettlement("Riverbend", KindHamlet, player, continent, loc, 10)
	require.NoError(t, err)
	assert.True(t, s.ID().IsZero())
	assert.True(t, s.Contains(shared.NewCoordinate(10, 10)))
	assert.False(t, s.Contains(shared.NewCoordinate(11, 1)))
	assert.False(t, s.Contains(shared.NewCoordinate(0, 1)))

	withID := s.WithID(shared.MustNewSettlementID(5))
	assert.Equal(t, 5, withID.ID().Value())
	assert.True(t, s.ID().IsZero(), "WithID copies")

	_, err = NewSettlement("", KindHamlet, player, continent, loc, 10)
	assert.Error(t, err)
	_, err = NewSettlement("A name that is far too long", KindHamlet, player, continent, loc, 10)
	assert.Error(t, err)
	_, err = NewSettlement("Riverbend", Kind("castle"), player, continent, loc, 10)
	assert.Error(t, err)
	_, err = NewSettlement("Riverbend", KindHamlet, shared.PlayerID{}, continent, loc, 10)
	assert.Error(t, err)
	_, err = NewSettlement("Riverbend", KindHamlet, player, continent, loc, 0)
	assert.Error(t, err)
}

func TestPlace(t *testing.T) {
	continent, err := NewContinent("Tiny", 2, 2)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(1, 2))

	var occupied []shared.Coordinate
	for i := 0; i < 4; i++ {
		c, err := Place(continent, occupied, rng)
		require.NoError(t, err)
		assert.True(t, c.Within(2, 2))
		assert.NotContains(t, occupied, c)
		occupied = append(occupied, c)
	}

	_, err = Place(continent, occupied, rng)
	var full *ContinentFullError
	require.ErrorAs(t, err, &full)
	assert.Equal(t, 4, full.Capacity)
	assert.ErrorIs(t, err, ErrContinentFull)
}

func TestPlace_DeterministicForSeed(t *testing.T) {
	continent, err := NewContinent("Manoria", 10, 10)
	require.NoError(t, err)

	a, err := Place(continent, nil, rand.New(rand.NewPCG(42, 7)))
	require.NoError(t, err)
	b, err := Place(continent, nil, rand.New(rand.NewPCG(42, 7)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewContinent_Validation(t *testing.T) {
	_, err := NewContinent("", 10, 10)
	assert.Error(t, err)
	_, err = NewContinent("Flat", 0, 10)
	assert.Error(t, err)
}

var terrainKinds = []catalog.TerrainKind{
	{Name: "water"},
	{Name: "grassland", Buildable: true},
	{Name: "forest", Buildable: true},
}

func TestGenerateTerrain(t *testing.T) {
	m, err := GenerateTerrain(1234, 10, terrainKinds)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Size())

	tiles := m.Tiles()
	require.Len(t, tiles, 100)
	assert.Equal(t, shared.NewCoordinate(1, 1), tiles[0].Position)
	assert.Equal(t, shared.NewCoordinate(2, 1), tiles[1].Position, "row by row")

	known := map[string]bool{"water": true, "grassland": true, "forest": true}
	for _, tile := range tiles {
		assert.True(t, known[tile.Terrain], "unexpected terrain %q", tile.Terrain)
	}

	again, err := GenerateTerrain(1234, 10, terrainKinds)
	require.NoError(t, err)
	assert.Equal(t, tiles, again.Tiles(), "same seed, same grid")
}

func TestGenerateTerrain_Errors(t *testing.T) {
	_, err := GenerateTerrain(1, 0, terrainKinds)
	assert.Error(t, err)
	_, err = GenerateTerrain(1, 10, nil)
	assert.Error(t, err)
}

func TestNewTerrainMap_RequiresFullCoverage(t *testing.T) {
	_, err := NewTerrainMap(2, []Tile{{Position: shared.NewCoordinate(1, 1), Terrain: "forest"}})
	assert.Error(t, err)

	_, err = NewTerrainMap(1, []Tile{{Position: shared.NewCoordinate(2, 1), Terrain: "forest"}})
	assert.Error(t, err)

	m, err := NewTerrainMap(1, []Tile{{Position: shared.NewCoordinate(1, 1), Terrain: "forest"}})
	require.NoError(t, err)
	terrain, ok := m.At(shared.NewCoordinate(1, 1))
	assert.True(t, ok)
	assert.Equal(t, "forest", terrain)
}
