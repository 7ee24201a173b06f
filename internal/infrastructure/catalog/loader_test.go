package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/domain/resource"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []resource.Kind{"wood", "stone", "food", "ore", "gold"}, c.ResourceKinds())
	assert.Len(t, c.TerrainKinds(), 5)

	water, err := c.Terrain("water")
	require.NoError(t, err)
	assert.False(t, water.Buildable)

	rules := c.RulesFor("lumber_camp")
	require.Len(t, rules, 1)
	assert.Equal(t, resource.Kind("wood"), rules[0].Resource)
	assert.Equal(t, 5, rules[0].BaseRate)
	assert.Equal(t, "forest", rules[0].SourceTerrain)

	mine, err := c.Building("mine")
	require.NoError(t, err)
	require.Len(t, mine.Costs, 2)
	assert.Equal(t, resource.Kind("stone"), mine.Costs[0].Resource, "costs sorted by resource")
	assert.Equal(t, resource.Kind("wood"), mine.Costs[1].Resource)

	assert.Equal(t, 6, c.Capacity("homestead"))
	assert.Len(t, c.StartingLedgers(resource.SubjectSettlement), 5)
	assert.Equal(t, "2", c.StartingLedgers(resource.SubjectSettlement)[0].NaturalRate.String())
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.True(t, c.HasResource("gold"))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
resources: [wood]
terrain:
  - name: forest
    buildable: true
buildings:
  - name: lumber_camp
    produces:
      - resource: wood
        base_rate: 7
ledgers:
  settlement:
    - resource: wood
      count: 10
      natural_rate: "0.50"
settlement_capacities:
  hamlet: 3
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, c.RulesFor("lumber_camp")[0].BaseRate)
	assert.Equal(t, 3, c.Capacity("hamlet"))
	assert.Equal(t, 0, c.Capacity("homestead"), "missing capacity means unlimited")
	assert.Equal(t, "0.5", c.StartingLedgers(resource.SubjectSettlement)[0].NaturalRate.String())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "resources: [wood"},
		{"no terrain", "resources: [wood]"},
		{"unknown produced resource", `
resources: [wood]
terrain: [{name: forest, buildable: true}]
buildings:
  - name: farm
    produces: [{resource: food, base_rate: 5}]
`},
		{"unknown source terrain", `
resources: [food]
terrain: [{name: forest, buildable: true}]
buildings:
  - name: farm
    produces: [{resource: food, base_rate: 5, terrain: grassland}]
`},
		{"bad natural rate", `
resources: [wood]
terrain: [{name: forest, buildable: true}]
ledgers:
  settlement: [{resource: wood, natural_rate: fast}]
`},
		{"natural rate finer than a tenth", `
resources: [wood]
terrain: [{name: forest, buildable: true}]
ledgers:
  settlement: [{resource: wood, natural_rate: "2.25"}]
`},
		{"unknown settlement kind", `
resources: [wood]
terrain: [{name: forest, buildable: true}]
settlement_capacities:
  homestaed: 1
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
