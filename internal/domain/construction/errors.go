package construction

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

var (
	ErrPositionOccupied    = errors.New("position occupied")
	ErrTerrainNotBuildable = errors.New("terrain not buildable")
	ErrSettlementFull      = errors.New("settlement full")
)

// PositionOccupiedError is returned when a grid position already holds a building
type PositionOccupiedError struct {
	SettlementID shared.SettlementID
	Position     shared.Coordinate
	OccupiedBy   string
}

func (e *PositionOccupiedError) Error() string {
	return fmt.Sprintf("position %s in settlement %s is occupied by %s",
		e.Position, e.SettlementID, e.OccupiedBy)
}

func (e *PositionOccupiedError) Is(target error) bool {
	return target == ErrPositionOccupied
}

// TerrainNotBuildableError is returned for a position on unbuildable ground
type TerrainNotBuildableError struct {
	SettlementID shared.SettlementID
	Position     shared.Coordinate
	Terrain      string
}

func (e *TerrainNotBuildableError) Error() string {
	return fmt.Sprintf("terrain %q at %s in settlement %s is not buildable",
		e.Terrain, e.Position, e.SettlementID)
}

func (e *TerrainNotBuildableError) Is(target error) bool {
	return target == ErrTerrainNotBuildable
}

// SettlementFullError is returned when a settlement has reached its building capacity
type SettlementFullError struct {
	SettlementID shared.SettlementID
	Capacity     int
}

func (e *SettlementFullError) Error() string {
	return fmt.Sprintf("settlement %s is full (%d buildings)", e.SettlementID, e.Capacity)
}

func (e *SettlementFullError) Is(target error) bool {
	return target == ErrSettlementFull
}
