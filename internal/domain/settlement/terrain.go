package settlement

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// Noise parameters for settlement terrain. Grids are small (10×10), so a low
// base frequency and a few octaves give patches rather than salt-and-pepper.
const (
	terrainOctaves     = 3
	terrainFrequency   = 0.15
	terrainPersistence = 0.5
)

// Tile is one plot of a settlement grid and the terrain kind under it
type Tile struct {
	Position shared.Coordinate
	Terrain  string
}

// TerrainMap is the full terrain grid of a settlement
type TerrainMap struct {
	size  int
	tiles map[shared.Coordinate]string
}

// NewTerrainMap builds a grid from tiles; every cell of the size×size grid must be covered
func NewTerrainMap(size int, tiles []Tile) (*TerrainMap, error) {
	m := &TerrainMap{size: size, tiles: make(map[shared.Coordinate]string, len(tiles))}
	for _, t := range tiles {
		if !t.Position.Within(size, size) {
			return nil, fmt.Errorf("tile %s outside %dx%d grid", t.Position, size, size)
		}
		m.tiles[t.Position] = t.Terrain
	}
	if len(m.tiles) != size*size {
		return nil, fmt.Errorf("terrain grid has %d tiles, want %d", len(m.tiles), size*size)
	}
	return m, nil
}

func (m *TerrainMap) Size() int { return m.size }

// At returns the terrain kind at a position
func (m *TerrainMap) At(position shared.Coordinate) (string, bool) {
	t, ok := m.tiles[position]
	return t, ok
}

// Tiles returns the grid row by row
func (m *TerrainMap) Tiles() []Tile {
	tiles := make([]Tile, 0, len(m.tiles))
	for y := 1; y <= m.size; y++ {
		for x := 1; x <= m.size; x++ {
			c := shared.NewCoordinate(x, y)
			tiles = append(tiles, Tile{Position: c, Terrain: m.tiles[c]})
		}
	}
	return tiles
}

// GenerateTerrain produces a size×size terrain grid from seeded noise.
//
// The normalized noise value of each cell is bucketed evenly over kinds, so
// kinds should be listed from lowest to highest ground. The same seed always
// yields the same grid.
func GenerateTerrain(seed int64, size int, kinds []catalog.TerrainKind) (*TerrainMap, error) {
	if size <= 0 {
		return nil, shared.NewValidationError("size", "must be positive")
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no terrain kinds to generate from")
	}

	noise := opensimplex.NewNormalized(seed)
	tiles := make([]Tile, 0, size*size)
	for x := 1; x <= size; x++ {
		for y := 1; y <= size; y++ {
			v := octaveNoise(noise, float64(x), float64(y))
			idx := int(v * float64(len(kinds)))
			if idx >= len(kinds) {
				idx = len(kinds) - 1
			}
			if idx < 0 {
				idx = 0
			}
			tiles = append(tiles, Tile{Position: shared.NewCoordinate(x, y), Terrain: kinds[idx].Name})
		}
	}
	return NewTerrainMap(size, tiles)
}

func octaveNoise(noise opensimplex.Noise, x, y float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	frequency := terrainFrequency

	for i := 0; i < terrainOctaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= terrainPersistence
		frequency *= 2
	}
	return total / maxVal
}
