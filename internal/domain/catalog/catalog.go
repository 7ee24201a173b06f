package catalog

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// Catalog is the read-only reference data of the economy. It is built once at
// start-up; every cross reference is checked by New.
type Catalog struct {
	resources     []resource.Kind
	resourceSet   map[resource.Kind]bool
	terrain       []TerrainKind
	terrainByName map[string]TerrainKind
	buildings     map[string]BuildingKind
	capacities    map[string]int
	ledgers       map[resource.SubjectType][]StartingBalance
}

// New validates a definition and builds the catalog
func New(def Definition) (*Catalog, error) {
	c := &Catalog{
		resourceSet:   make(map[resource.Kind]bool),
		terrainByName: make(map[string]TerrainKind),
		buildings:     make(map[string]BuildingKind),
		capacities:    make(map[string]int),
		ledgers:       make(map[resource.SubjectType][]StartingBalance),
	}

	for _, kind := range def.Resources {
		if kind.IsZero() {
			return nil, fmt.Errorf("resource kind name cannot be empty")
		}
		if c.resourceSet[kind] {
			return nil, fmt.Errorf("duplicate resource kind: %s", kind)
		}
		c.resourceSet[kind] = true
		c.resources = append(c.resources, kind)
	}

	for _, t := range def.Terrain {
		if t.Name == "" {
			return nil, fmt.Errorf("terrain kind name cannot be empty")
		}
		if _, exists := c.terrainByName[t.Name]; exists {
			return nil, fmt.Errorf("duplicate terrain kind: %s", t.Name)
		}
		c.terrainByName[t.Name] = t
		c.terrain = append(c.terrain, t)
	}
	if len(c.terrain) == 0 {
		return nil, fmt.Errorf("catalog must define at least one terrain kind")
	}

	for _, b := range def.Buildings {
		if err := c.addBuilding(b); err != nil {
			return nil, err
		}
	}

	for kind, capacity := range def.SettlementCapacities {
		if capacity <= 0 {
			return nil, fmt.Errorf("settlement kind %s: capacity must be positive", kind)
		}
		c.capacities[kind] = capacity
	}

	if err := c.addLedgers(resource.SubjectPlayer, def.PlayerLedgers); err != nil {
		return nil, err
	}
	if err := c.addLedgers(resource.SubjectSettlement, def.SettlementLedgers); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) addBuilding(b BuildingKind) error {
	if b.Name == "" {
		return fmt.Errorf("building kind name cannot be empty")
	}
	if _, exists := c.buildings[b.Name]; exists {
		return fmt.Errorf("duplicate building kind: %s", b.Name)
	}

	rules := make([]ProductionRule, 0, len(b.Rules))
	for _, rule := range b.Rules {
		if !c.resourceSet[rule.Resource] {
			return fmt.Errorf("building %s produces unknown resource %q", b.Name, rule.Resource)
		}
		if rule.SourceTerrain != "" {
			if _, ok := c.terrainByName[rule.SourceTerrain]; !ok {
				return fmt.Errorf("building %s requires unknown terrain %q", b.Name, rule.SourceTerrain)
			}
		}
		rule.BuildingKind = b.Name
		rules = append(rules, rule)
	}

	for _, cost := range b.Costs {
		if !c.resourceSet[cost.Resource] {
			return fmt.Errorf("building %s costs unknown resource %q", b.Name, cost.Resource)
		}
		if cost.Amount <= 0 {
			return fmt.Errorf("building %s: cost of %s must be positive", b.Name, cost.Resource)
		}
	}

	c.buildings[b.Name] = BuildingKind{
		Name:  b.Name,
		Rules: rules,
		Costs: append([]Cost(nil), b.Costs...),
	}
	return nil
}

func (c *Catalog) addLedgers(scope resource.SubjectType, balances []StartingBalance) error {
	seen := make(map[resource.Kind]bool)
	for _, balance := range balances {
		if !c.resourceSet[balance.Resource] {
			return fmt.Errorf("%s ledger references unknown resource %q", scope, balance.Resource)
		}
		if seen[balance.Resource] {
			return fmt.Errorf("%s ledger for %s defined twice", scope, balance.Resource)
		}
		if balance.Limit < 0 {
			return fmt.Errorf("%s ledger for %s: limit cannot be negative", scope, balance.Resource)
		}
		seen[balance.Resource] = true
	}
	c.ledgers[scope] = append([]StartingBalance(nil), balances...)
	return nil
}

// RulesFor returns the production rules of a building kind (empty for unknown kinds)
func (c *Catalog) RulesFor(buildingKind string) []ProductionRule {
	b, ok := c.buildings[buildingKind]
	if !ok {
		return nil
	}
	return append([]ProductionRule(nil), b.Rules...)
}

// Building looks up a building kind
func (c *Catalog) Building(name string) (BuildingKind, error) {
	b, ok := c.buildings[name]
	if !ok {
		return BuildingKind{}, shared.NewValidationError("building_kind", fmt.Sprintf("unknown building kind: %s", name))
	}
	return b, nil
}

// BuildingNames lists every building kind, sorted
func (c *Catalog) BuildingNames() []string {
	names := make([]string, 0, len(c.buildings))
	for name := range c.buildings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Terrain looks up a terrain kind
func (c *Catalog) Terrain(name string) (TerrainKind, error) {
	t, ok := c.terrainByName[name]
	if !ok {
		return TerrainKind{}, shared.NewValidationError("terrain_kind", fmt.Sprintf("unknown terrain kind: %s", name))
	}
	return t, nil
}

// TerrainKinds returns terrain kinds in definition order
func (c *Catalog) TerrainKinds() []TerrainKind {
	return append([]TerrainKind(nil), c.terrain...)
}

// ResourceKinds returns resource kinds in definition order
func (c *Catalog) ResourceKinds() []resource.Kind {
	return append([]resource.Kind(nil), c.resources...)
}

// HasResource checks a resource kind against the reference table
func (c *Catalog) HasResource(kind resource.Kind) bool {
	return c.resourceSet[kind]
}

// ParseResource validates a resource kind name
func (c *Catalog) ParseResource(name string) (resource.Kind, error) {
	kind := resource.Kind(name)
	if !c.resourceSet[kind] {
		return "", shared.NewValidationError("resource_kind", fmt.Sprintf("unknown resource kind: %s", name))
	}
	return kind, nil
}

// Capacity returns the building capacity of a settlement kind, 0 if unlimited
func (c *Catalog) Capacity(settlementKind string) int {
	return c.capacities[settlementKind]
}

// StartingLedgers returns the ledgers seeded for a new player or settlement
func (c *Catalog) StartingLedgers(scope resource.SubjectType) []StartingBalance {
	return append([]StartingBalance(nil), c.ledgers[scope]...)
}
