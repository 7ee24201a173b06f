package dtos

import (
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
)

// SettlementDTO is the serializable form of a settlement
type SettlementDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	PlayerID    int    `json:"player_id"`
	ContinentID int    `json:"continent_id"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	GridSize    int    `json:"grid_size"`
}

// SettlementToDTO converts a domain settlement
func SettlementToDTO(s *settlement.Settlement) SettlementDTO {
	return SettlementDTO{
		ID:          s.ID().Value(),
		Name:        s.Name(),
		Kind:        s.Kind().String(),
		PlayerID:    s.PlayerID().Value(),
		ContinentID: s.ContinentID().Value(),
		X:           s.Location().X,
		Y:           s.Location().Y,
		GridSize:    s.GridSize(),
	}
}

// TileDTO is one plot of a settlement's terrain grid
type TileDTO struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Terrain string `json:"terrain"`
}

// TerrainToDTO flattens a terrain grid row by row
func TerrainToDTO(m *settlement.TerrainMap) []TileDTO {
	tiles := m.Tiles()
	out := make([]TileDTO, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, TileDTO{X: t.Position.X, Y: t.Position.Y, Terrain: t.Terrain})
	}
	return out
}

// ContinentDTO is the serializable form of a continent
type ContinentDTO struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ContinentToDTO converts a domain continent
func ContinentToDTO(c *settlement.Continent) ContinentDTO {
	return ContinentDTO{ID: c.ID().Value(), Name: c.Name(), Width: c.Width(), Height: c.Height()}
}
