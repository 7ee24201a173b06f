package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

func definition() Definition {
	return Definition{
		Resources: []resource.Kind{"wood", "food"},
		Terrain: []TerrainKind{
			{Name: "water"},
			{Name: "forest", Buildable: true},
		},
		Buildings: []BuildingKind{
			{Name: "lumber_camp", Rules: []ProductionRule{{Resource: "wood", BaseRate: 5, SourceTerrain: "forest"}}},
			{Name: "house", Rules: []ProductionRule{{Resource: "food", BaseRate: 1}}, Costs: []Cost{{Resource: "wood", Amount: 10}}},
		},
		SettlementCapacities: map[string]int{"homestead": 4},
		SettlementLedgers:    []StartingBalance{{Resource: "wood", Count: 50}},
	}
}

func TestNew(t *testing.T) {
	c, err := New(definition())
	require.NoError(t, err)

	rules := c.RulesFor("lumber_camp")
	require.Len(t, rules, 1)
	assert.Equal(t, "lumber_camp", rules[0].BuildingKind, "rules are stamped with their building")
	assert.True(t, rules[0].AppliesTo("forest"))
	assert.False(t, rules[0].AppliesTo("water"))
	assert.True(t, c.RulesFor("house")[0].AppliesTo("water"), "ungated rules apply everywhere")
	assert.Empty(t, c.RulesFor("castle"))

	assert.Equal(t, []string{"house", "lumber_camp"}, c.BuildingNames())
	assert.Equal(t, 4, c.Capacity("homestead"))
	assert.Equal(t, 0, c.Capacity("town"))
	assert.Len(t, c.StartingLedgers(resource.SubjectSettlement), 1)
	assert.Empty(t, c.StartingLedgers(resource.SubjectPlayer))

	kind, err := c.ParseResource("wood")
	require.NoError(t, err)
	assert.Equal(t, resource.Kind("wood"), kind)
}

func TestLookups_UnknownKinds(t *testing.T) {
	c, err := New(definition())
	require.NoError(t, err)

	var validation *shared.ValidationError
	_, err = c.Building("castle")
	assert.ErrorAs(t, err, &validation)
	_, err = c.Terrain("lava")
	assert.ErrorAs(t, err, &validation)
	_, err = c.ParseResource("mana")
	assert.ErrorAs(t, err, &validation)
	assert.False(t, c.HasResource("mana"))
}

func TestNew_RejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Definition)
	}{
		{"duplicate resource", func(d *Definition) { d.Resources = append(d.Resources, "wood") }},
		{"no terrain", func(d *Definition) { d.Terrain = nil }},
		{"duplicate terrain", func(d *Definition) { d.Terrain = append(d.Terrain, TerrainKind{Name: "water"}) }},
		{"unknown rule resource", func(d *Definition) {
			d.Buildings[0].Rules[0].Resource = "ore"
		}},
		{"unknown rule terrain", func(d *Definition) {
			d.Buildings[0].Rules[0].SourceTerrain = "hills"
		}},
		{"unknown cost resource", func(d *Definition) {
			d.Buildings[1].Costs[0].Resource = "gold"
		}},
		{"non-positive cost", func(d *Definition) {
			d.Buildings[1].Costs[0].Amount = 0
		}},
		{"duplicate building", func(d *Definition) { d.Buildings = append(d.Buildings, BuildingKind{Name: "house"}) }},
		{"non-positive capacity", func(d *Definition) { d.SettlementCapacities["hamlet"] = 0 }},
		{"ledger for unknown resource", func(d *Definition) {
			d.PlayerLedgers = []StartingBalance{{Resource: "gold"}}
		}},
		{"ledger defined twice", func(d *Definition) {
			d.SettlementLedgers = append(d.SettlementLedgers, StartingBalance{Resource: "wood"})
		}},
		{"negative ledger limit", func(d *Definition) {
			d.SettlementLedgers[0].Limit = -1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := definition()
			tt.mutate(&d)
			_, err := New(d)
			assert.Error(t, err)
		})
	}
}
