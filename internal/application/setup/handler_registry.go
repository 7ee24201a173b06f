package setup

import (
	"time"

	"github.com/andrescamacho/manoria-go/internal/application/common"
	constructionCmd "github.com/andrescamacho/manoria-go/internal/application/construction/commands"
	constructionQuery "github.com/andrescamacho/manoria-go/internal/application/construction/queries"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	playerCmd "github.com/andrescamacho/manoria-go/internal/application/player/commands"
	playerQuery "github.com/andrescamacho/manoria-go/internal/application/player/queries"
	resourceCmd "github.com/andrescamacho/manoria-go/internal/application/resource/commands"
	resourceQuery "github.com/andrescamacho/manoria-go/internal/application/resource/queries"
	settlementCmd "github.com/andrescamacho/manoria-go/internal/application/settlement/commands"
	settlementQuery "github.com/andrescamacho/manoria-go/internal/application/settlement/queries"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// Options carries the economy tunables handlers are built with
type Options struct {
	BuildDuration  time.Duration
	SettlementGrid int
	PlacementSeed  int64
}

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	transactor common.Transactor
	stores     common.Stores
	catalog    *catalog.Catalog
	clock      shared.Clock
	options    Options

	// One locker for every writer so ledger and queue writes to a settlement serialize
	locks *common.KeyedLocker
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	transactor common.Transactor,
	stores common.Stores,
	cat *catalog.Catalog,
	clock shared.Clock,
	options Options,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		transactor: transactor,
		stores:     stores,
		catalog:    cat,
		clock:      clock,
		options:    options,
		locks:      common.NewKeyedLocker(),
	}
}

// RegisterResourceHandlers registers ledger reads and adjustments:
//   - GetCurrentAmountQuery, GetSnapshotHistoryQuery, GetSettlementResourcesQuery
//   - AdjustResourceCommand
func (r *HandlerRegistry) RegisterResourceHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*resourceQuery.GetCurrentAmountQuery](m,
		resourceQuery.NewGetCurrentAmountHandler(r.stores.Snapshots, r.catalog, r.clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*resourceQuery.GetSnapshotHistoryQuery](m,
		resourceQuery.NewGetSnapshotHistoryHandler(r.stores.Snapshots, r.catalog)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*resourceQuery.GetSettlementResourcesQuery](m,
		resourceQuery.NewGetSettlementResourcesHandler(r.stores.Settlements, r.stores.Snapshots, r.catalog, r.clock)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*resourceCmd.AdjustResourceCommand](m,
		resourceCmd.NewAdjustResourceHandler(r.transactor, r.catalog, r.locks, r.clock))
}

// RegisterConstructionHandlers registers the scheduler and the queue query
func (r *HandlerRegistry) RegisterConstructionHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*constructionCmd.EnqueueConstructionCommand](m,
		constructionCmd.NewEnqueueConstructionHandler(r.transactor, r.catalog, r.locks, r.clock, r.options.BuildDuration)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*constructionQuery.GetQueueStatusQuery](m,
		constructionQuery.NewGetQueueStatusHandler(r.stores.Settlements, r.stores.Entries, r.clock))
}

// RegisterPlayerHandlers registers player creation and lookup
func (r *HandlerRegistry) RegisterPlayerHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*playerCmd.CreatePlayerCommand](m,
		playerCmd.NewCreatePlayerHandler(r.transactor, r.catalog, r.clock)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*playerQuery.GetPlayerQuery](m,
		playerQuery.NewGetPlayerHandler(r.stores.Players))
}

// RegisterSettlementHandlers registers continent and settlement handlers
func (r *HandlerRegistry) RegisterSettlementHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*settlementCmd.EnsureContinentCommand](m,
		settlementCmd.NewEnsureContinentHandler(r.transactor, r.locks)); err != nil {
		return err
	}

	foundHandler := settlementCmd.NewFoundSettlementHandler(r.transactor, r.catalog, r.locks, r.clock,
		settlementCmd.FoundSettlementOptions{
			GridSize: r.options.SettlementGrid,
			Seed:     r.options.PlacementSeed,
		})
	if err := mediator.RegisterHandler[*settlementCmd.FoundSettlementCommand](m, foundHandler); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*settlementQuery.GetSettlementQuery](m,
		settlementQuery.NewGetSettlementHandler(r.stores.Settlements, r.stores.Terrain)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*settlementQuery.ListSettlementsQuery](m,
		settlementQuery.NewListSettlementsHandler(r.stores.Players, r.stores.Settlements))
}

// CreateConfiguredMediator creates a mediator with the given middlewares
// (outermost first) and every handler registered
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middlewares {
		m.RegisterMiddleware(mw)
	}

	registrations := []func(mediator.Mediator) error{
		r.RegisterResourceHandlers,
		r.RegisterConstructionHandlers,
		r.RegisterPlayerHandlers,
		r.RegisterSettlementHandlers,
	}
	for _, register := range registrations {
		if err := register(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}
