package helpers

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
)

// Terrain codes accepted by Economy.FoundSettlement rows
var terrainCodes = map[rune]string{
	'F': "forest",
	'G': "grassland",
	'W': "water",
}

// TestCatalogDefinition is a small catalog with round numbers:
//
//	lumber_camp  +5 wood/h on forest
//	farm         +5 food/h on grassland
//	house        +1 food/h anywhere
//	quarry       +4 stone/h anywhere, costs 20 wood
//
// A settlement starts with 100 wood at 10/h, 0 stone and 40 food capped at 50.
// Homesteads hold three buildings.
func TestCatalogDefinition() catalog.Definition {
	return catalog.Definition{
		Resources: []resource.Kind{"wood", "stone", "food"},
		Terrain: []catalog.TerrainKind{
			{Name: "water", Buildable: false},
			{Name: "grassland", Buildable: true},
			{Name: "forest", Buildable: true},
		},
		Buildings: []catalog.BuildingKind{
			{Name: "lumber_camp", Rules: []catalog.ProductionRule{{Resource: "wood", BaseRate: 5, SourceTerrain: "forest"}}},
			{Name: "farm", Rules: []catalog.ProductionRule{{Resource: "food", BaseRate: 5, SourceTerrain: "grassland"}}},
			{Name: "house", Rules: []catalog.ProductionRule{{Resource: "food", BaseRate: 1}}},
			{
				Name:  "quarry",
				Rules: []catalog.ProductionRule{{Resource: "stone", BaseRate: 4}},
				Costs: []catalog.Cost{{Resource: "wood", Amount: 20}},
			},
		},
		SettlementCapacities: map[string]int{"homestead": 3},
		PlayerLedgers: []catalog.StartingBalance{
			{Resource: "wood", Count: 10},
		},
		SettlementLedgers: []catalog.StartingBalance{
			{Resource: "wood", Count: 100, NaturalRate: decimal.NewFromInt(10)},
			{Resource: "stone", Count: 0},
			{Resource: "food", Count: 40, Limit: 50},
		},
	}
}

// TestCatalog builds the fixture catalog
func TestCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(TestCatalogDefinition())
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return c
}
