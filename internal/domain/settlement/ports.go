package settlement

import (
	"context"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// ContinentRepository defines persistence operations for continents
type ContinentRepository interface {
	Add(ctx context.Context, continent *Continent) (*Continent, error)
	FindByID(ctx context.Context, id shared.ContinentID) (*Continent, error)
	FindByName(ctx context.Context, name string) (*Continent, error)
}

// Repository defines persistence operations for settlements
type Repository interface {
	// Add persists a new settlement and returns it with its assigned id
	Add(ctx context.Context, settlement *Settlement) (*Settlement, error)

	FindByID(ctx context.Context, id shared.SettlementID) (*Settlement, error)
	FindByPlayer(ctx context.Context, playerID shared.PlayerID) ([]*Settlement, error)

	// OccupiedLocations lists the continent coordinates already taken
	OccupiedLocations(ctx context.Context, continentID shared.ContinentID) ([]shared.Coordinate, error)
}

// TerrainRepository defines persistence operations for settlement terrain grids
type TerrainRepository interface {
	Save(ctx context.Context, settlementID shared.SettlementID, terrain *TerrainMap) error

	// FindTile returns the terrain kind at a plot, NotFoundError if the plot has no tile
	FindTile(ctx context.Context, settlementID shared.SettlementID, position shared.Coordinate) (string, error)

	Load(ctx context.Context, settlementID shared.SettlementID, size int) (*TerrainMap, error)
}
