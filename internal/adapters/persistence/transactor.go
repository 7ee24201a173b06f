package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrescamacho/manoria-go/internal/application/common"
)

// NewStores binds every repository to db (a connection or a transaction)
func NewStores(db *gorm.DB) common.Stores {
	return common.Stores{
		Players:     NewGormPlayerRepository(db),
		Continents:  NewGormContinentRepository(db),
		Settlements: NewGormSettlementRepository(db),
		Terrain:     NewGormTerrainRepository(db),
		Snapshots:   NewGormSnapshotRepository(db),
		Entries:     NewGormEntryRepository(db),
	}
}

// GormTransactor implements common.Transactor with gorm transactions
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a new transactor
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// WithinTransaction runs fn with transaction-bound stores; an error rolls everything back
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, stores common.Stores) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStores(tx))
	})
}
