package dtos

import (
	"time"

	"github.com/andrescamacho/manoria-go/internal/domain/construction"
)

// EntryDTO is a construction entry with its status resolved at a given instant.
// It is used for gRPC responses and CLI display.
type EntryDTO struct {
	ID                string    `json:"id"`
	SettlementID      int       `json:"settlement_id"`
	BuildingKind      string    `json:"building_kind"`
	X                 int       `json:"x"`
	Y                 int       `json:"y"`
	ConstructionStart time.Time `json:"construction_start"`
	ConstructionEnd   time.Time `json:"construction_end"`
	Status            string    `json:"status"`
}

// EntryToDTO converts a domain entry, deriving its status at asOf
func EntryToDTO(entry *construction.Entry, asOf time.Time) EntryDTO {
	return EntryDTO{
		ID:                entry.ID(),
		SettlementID:      entry.SettlementID().Value(),
		BuildingKind:      entry.BuildingKind(),
		X:                 entry.Position().X,
		Y:                 entry.Position().Y,
		ConstructionStart: entry.ConstructionStart(),
		ConstructionEnd:   entry.ConstructionEnd(),
		Status:            entry.StatusAt(asOf).String(),
	}
}

// EntriesToDTO converts a list of entries
func EntriesToDTO(entries []*construction.Entry, asOf time.Time) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryToDTO(e, asOf))
	}
	return out
}
