package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/manoria-go/internal/domain/resource"
)

// TerrainKind is a type of settlement ground. Buildings can only go on buildable terrain.
type TerrainKind struct {
	Name      string
	Buildable bool
}

// ProductionRule says that a building kind produces a resource at BaseRate per
// hour, optionally only when standing on SourceTerrain.
type ProductionRule struct {
	BuildingKind  string
	Resource      resource.Kind
	BaseRate      int
	SourceTerrain string
}

// AppliesTo reports whether the rule fires for a building standing on terrain
func (r ProductionRule) AppliesTo(terrain string) bool {
	return r.SourceTerrain == "" || r.SourceTerrain == terrain
}

// Cost is a construction price paid from the settlement's stock
type Cost struct {
	Resource resource.Kind
	Amount   int
}

// BuildingKind is a constructible building with its production and price
type BuildingKind struct {
	Name  string
	Rules []ProductionRule
	Costs []Cost
}

// StartingBalance seeds one ledger when a player or settlement is created
type StartingBalance struct {
	Resource    resource.Kind
	Count       int
	NaturalRate decimal.Decimal
	Limit       int
}

// Definition is the raw catalog content before validation
type Definition struct {
	Resources            []resource.Kind
	Terrain              []TerrainKind
	Buildings            []BuildingKind
	SettlementCapacities map[string]int
	PlayerLedgers        []StartingBalance
	SettlementLedgers    []StartingBalance
}
