package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlayerModel represents the players table
type PlayerModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;size:20;unique;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (PlayerModel) TableName() string {
	return "players"
}

// ContinentModel represents the continents table
type ContinentModel struct {
	ID     int    `gorm:"column:id;primaryKey;autoIncrement"`
	Name   string `gorm:"column:name;unique;not null"`
	Width  int    `gorm:"column:width;not null"`
	Height int    `gorm:"column:height;not null"`
}

func (ContinentModel) TableName() string {
	return "continents"
}

// SettlementModel represents the settlements table.
// A continent coordinate holds at most one settlement.
type SettlementModel struct {
	ID          int             `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;size:20;not null"`
	Kind        string          `gorm:"column:kind;not null;default:homestead"`
	PlayerID    int             `gorm:"column:player_id;not null;index"`
	Player      *PlayerModel    `gorm:"foreignKey:PlayerID;references:ID;constraint:OnDelete:CASCADE"`
	ContinentID int             `gorm:"column:continent_id;not null;uniqueIndex:idx_settlement_location,priority:1"`
	Continent   *ContinentModel `gorm:"foreignKey:ContinentID;references:ID"`
	X           int             `gorm:"column:x;not null;uniqueIndex:idx_settlement_location,priority:2"`
	Y           int             `gorm:"column:y;not null;uniqueIndex:idx_settlement_location,priority:3"`
	GridSize    int             `gorm:"column:grid_size;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null"`
}

func (SettlementModel) TableName() string {
	return "settlements"
}

// SettlementTerrainModel represents the settlement_terrain table, one row per plot
type SettlementTerrainModel struct {
	SettlementID int    `gorm:"column:settlement_id;primaryKey"`
	X            int    `gorm:"column:x;primaryKey"`
	Y            int    `gorm:"column:y;primaryKey"`
	Terrain      string `gorm:"column:terrain;not null"`
}

func (SettlementTerrainModel) TableName() string {
	return "settlement_terrain"
}

// ResourceSnapshotModel represents the resource_snapshots table.
// Rows are insert-only; sequence records insertion order.
type ResourceSnapshotModel struct {
	Sequence       int64           `gorm:"column:sequence;primaryKey;autoIncrement"`
	ID             string          `gorm:"column:id;uniqueIndex;not null"`
	SubjectType    string          `gorm:"column:subject_type;not null;index:idx_snapshot_ledger,priority:1"`
	SubjectID      string          `gorm:"column:subject_id;not null;index:idx_snapshot_ledger,priority:2"`
	ResourceKind   string          `gorm:"column:resource_kind;not null;index:idx_snapshot_ledger,priority:3"`
	ValidFrom      time.Time       `gorm:"column:valid_from;not null;index:idx_snapshot_ledger,priority:4"`
	Count          int             `gorm:"column:count;not null"`
	NaturalRate    decimal.Decimal `gorm:"column:natural_rate;type:decimal(9,1);not null"`
	RateAdjustment decimal.Decimal `gorm:"column:rate_adjustment;type:decimal(9,1);not null"`
	StorageLimit   int             `gorm:"column:storage_limit;not null;default:0"` // 0 = unbounded
}

func (ResourceSnapshotModel) TableName() string {
	return "resource_snapshots"
}

// ConstructionEntryModel represents the construction_entries table.
// A settlement plot holds at most one entry.
type ConstructionEntryModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	SettlementID      int       `gorm:"column:settlement_id;not null;uniqueIndex:idx_entry_plot,priority:1"`
	X                 int       `gorm:"column:x;not null;uniqueIndex:idx_entry_plot,priority:2"`
	Y                 int       `gorm:"column:y;not null;uniqueIndex:idx_entry_plot,priority:3"`
	BuildingKind      string    `gorm:"column:building_kind;not null"`
	ConstructionStart time.Time `gorm:"column:construction_start;not null;index"`
	ConstructionEnd   time.Time `gorm:"column:construction_end;not null"`
}

func (ConstructionEntryModel) TableName() string {
	return "construction_entries"
}
