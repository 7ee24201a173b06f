package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	domain "github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type file struct {
	Resources            []string       `yaml:"resources"`
	Terrain              []terrainEntry `yaml:"terrain"`
	Buildings            []building     `yaml:"buildings"`
	SettlementCapacities map[string]int `yaml:"settlement_capacities"`
	Ledgers              struct {
		Player     []ledgerEntry `yaml:"player"`
		Settlement []ledgerEntry `yaml:"settlement"`
	} `yaml:"ledgers"`
}

type terrainEntry struct {
	Name      string `yaml:"name"`
	Buildable bool   `yaml:"buildable"`
}

type building struct {
	Name     string         `yaml:"name"`
	Produces []rule         `yaml:"produces"`
	Costs    map[string]int `yaml:"costs"`
}

type rule struct {
	Resource string `yaml:"resource"`
	BaseRate int    `yaml:"base_rate"`
	Terrain  string `yaml:"terrain"`
}

type ledgerEntry struct {
	Resource    string `yaml:"resource"`
	Count       int    `yaml:"count"`
	NaturalRate string `yaml:"natural_rate"`
	Limit       int    `yaml:"limit"`
}

// Default returns the catalog compiled into the binary
func Default() (*domain.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path selects the built-in catalog.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML and validates every cross reference
func Parse(raw []byte) (*domain.Catalog, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	def, err := f.definition()
	if err != nil {
		return nil, err
	}
	c, err := domain.New(def)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

func (f *file) definition() (domain.Definition, error) {
	def := domain.Definition{SettlementCapacities: f.SettlementCapacities}

	for kind := range f.SettlementCapacities {
		if !settlement.Kind(kind).IsValid() {
			return def, fmt.Errorf("settlement_capacities: unknown settlement kind %q (valid: %v)", kind, settlement.AllKinds())
		}
	}

	for _, name := range f.Resources {
		def.Resources = append(def.Resources, resource.Kind(name))
	}
	for _, t := range f.Terrain {
		def.Terrain = append(def.Terrain, domain.TerrainKind{Name: t.Name, Buildable: t.Buildable})
	}

	for _, b := range f.Buildings {
		kind := domain.BuildingKind{Name: b.Name}
		for _, r := range b.Produces {
			kind.Rules = append(kind.Rules, domain.ProductionRule{
				Resource:      resource.Kind(r.Resource),
				BaseRate:      r.BaseRate,
				SourceTerrain: r.Terrain,
			})
		}
		// map order is random; costs are charged in name order
		names := make([]string, 0, len(b.Costs))
		for name := range b.Costs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			kind.Costs = append(kind.Costs, domain.Cost{Resource: resource.Kind(name), Amount: b.Costs[name]})
		}
		def.Buildings = append(def.Buildings, kind)
	}

	var err error
	if def.PlayerLedgers, err = balances(f.Ledgers.Player); err != nil {
		return def, fmt.Errorf("player ledgers: %w", err)
	}
	if def.SettlementLedgers, err = balances(f.Ledgers.Settlement); err != nil {
		return def, fmt.Errorf("settlement ledgers: %w", err)
	}
	return def, nil
}

func balances(entries []ledgerEntry) ([]domain.StartingBalance, error) {
	out := make([]domain.StartingBalance, 0, len(entries))
	for _, e := range entries {
		rate := decimal.Zero
		if e.NaturalRate != "" {
			parsed, err := decimal.NewFromString(e.NaturalRate)
			if err != nil {
				return nil, fmt.Errorf("%s: natural_rate %q: %w", e.Resource, e.NaturalRate, err)
			}
			// rates are stored as decimal(9,1)
			if !parsed.Equal(parsed.Round(1)) {
				return nil, fmt.Errorf("%s: natural_rate %q has more than one decimal place", e.Resource, e.NaturalRate)
			}
			rate = parsed
		}
		out = append(out, domain.StartingBalance{
			Resource:    resource.Kind(e.Resource),
			Count:       e.Count,
			NaturalRate: rate,
			Limit:       e.Limit,
		})
	}
	return out, nil
}
