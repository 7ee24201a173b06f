package common

import (
	"context"

	"github.com/andrescamacho/manoria-go/internal/domain/construction"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
)

// Stores groups the repositories of one unit of work. Inside a transaction
// every repository is bound to the same transaction.
type Stores struct {
	Players     player.PlayerRepository
	Continents  settlement.ContinentRepository
	Settlements settlement.Repository
	Terrain     settlement.TerrainRepository
	Snapshots   resource.SnapshotRepository
	Entries     construction.EntryRepository
}

// Transactor runs fn inside a single database transaction. If fn returns an
// error nothing it wrote is kept.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
