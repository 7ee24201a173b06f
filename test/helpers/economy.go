package helpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/manoria-go/internal/adapters/persistence"
	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// T0 is the fixed instant fixtures start at
var T0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Economy bundles everything a handler needs against a real database
type Economy struct {
	DB         *gorm.DB
	Stores     common.Stores
	Transactor *persistence.GormTransactor
	Catalog    *catalog.Catalog
	Clock      *shared.MockClock
	Locks      *common.KeyedLocker
}

// NewEconomy wires a fresh in-memory database, the fixture catalog and a clock at T0
func NewEconomy(t *testing.T) *Economy {
	t.Helper()
	return NewEconomyWithDB(NewTestDB(t), TestCatalog(t))
}

// NewEconomyWithDB wires an economy on an existing database
func NewEconomyWithDB(db *gorm.DB, cat *catalog.Catalog) *Economy {
	return &Economy{
		DB:         db,
		Stores:     persistence.NewStores(db),
		Transactor: persistence.NewGormTransactor(db),
		Catalog:    cat,
		Clock:      shared.NewMockClock(T0),
		Locks:      common.NewKeyedLocker(),
	}
}

// FoundSettlement creates a player, a continent and a homestead whose terrain
// is given as rows of codes: F forest, G grassland, W water. Rows run from
// y=1 downwards; the grid must be square. Settlement ledgers are seeded at the
// clock's current time.
func (e *Economy) FoundSettlement(t testing.TB, name string, rows ...string) *settlement.Settlement {
	t.Helper()
	s, err := e.TryFoundSettlement(context.Background(), name, rows...)
	must(t, err)
	return s
}

// TryFoundSettlement is FoundSettlement for callers without a testing.TB
func (e *Economy) TryFoundSettlement(ctx context.Context, name string, rows ...string) (*settlement.Settlement, error) {
	now := e.Clock.Now()

	p, err := player.NewPlayer(name, now)
	if err != nil {
		return nil, err
	}
	if err := e.Stores.Players.Add(ctx, p); err != nil {
		return nil, err
	}

	continent, err := e.continent(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := e.Stores.Settlements.OccupiedLocations(ctx, continent.ID())
	if err != nil {
		return nil, err
	}
	location := shared.NewCoordinate(len(occupied)%continent.Width()+1, len(occupied)/continent.Width()+1)

	s, err := settlement.NewSettlement(name, settlement.KindHomestead, p.ID, continent.ID(), location, len(rows))
	if err != nil {
		return nil, err
	}
	if s, err = e.Stores.Settlements.Add(ctx, s); err != nil {
		return nil, err
	}

	terrain, err := ParseTerrain(rows...)
	if err != nil {
		return nil, err
	}
	if err := e.Stores.Terrain.Save(ctx, s.ID(), terrain); err != nil {
		return nil, err
	}

	subject := resource.SettlementSubject(s.ID().Value())
	if err := common.SeedLedgers(ctx, e.Stores.Snapshots, subject, e.Catalog.StartingLedgers(resource.SubjectSettlement), now); err != nil {
		return nil, err
	}
	return s, nil
}

// Amount reads a settlement resource at asOf through the ledger
func (e *Economy) Amount(t testing.TB, settlementID shared.SettlementID, kind string, asOf time.Time) int {
	t.Helper()
	ledger := resource.NewLedger(e.Stores.Snapshots)
	amount, err := ledger.CurrentAmount(context.Background(), resource.SettlementSubject(settlementID.Value()), resource.Kind(kind), asOf)
	must(t, err)
	return amount
}

// SnapshotCount returns the number of stored snapshots across every ledger
func (e *Economy) SnapshotCount(t testing.TB) int64 {
	t.Helper()
	var n int64
	must(t, e.DB.Model(&persistence.ResourceSnapshotModel{}).Count(&n).Error)
	return n
}

func (e *Economy) continent(ctx context.Context) (*settlement.Continent, error) {
	c, err := e.Stores.Continents.FindByName(ctx, "Testland")
	if err == nil {
		return c, nil
	}
	c, err = settlement.NewContinent("Testland", 10, 10)
	if err != nil {
		return nil, err
	}
	return e.Stores.Continents.Add(ctx, c)
}

// ParseTerrain builds a square terrain map from rows of terrain codes
func ParseTerrain(rows ...string) (*settlement.TerrainMap, error) {
	var tiles []settlement.Tile
	for y, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("terrain row %d has %d cells, want %d", y+1, len(row), len(rows))
		}
		for x, code := range row {
			kind, ok := terrainCodes[code]
			if !ok {
				return nil, fmt.Errorf("unknown terrain code %q", code)
			}
			tiles = append(tiles, settlement.Tile{Position: shared.NewCoordinate(x+1, y+1), Terrain: kind})
		}
	}
	return settlement.NewTerrainMap(len(rows), tiles)
}

func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("fixture setup failed: %v", err)
	}
}
