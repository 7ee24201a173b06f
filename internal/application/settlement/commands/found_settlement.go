package commands

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/andrescamacho/manoria-go/internal/adapters/metrics"
	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/logging"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/application/settlement/dtos"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// DefaultGridSize is the settlement plot grid edge used when none is configured
const DefaultGridSize = 10

// FoundSettlementCommand places a new settlement for a player on a continent.
// The player is referenced by PlayerID or, when zero, by PlayerName.
type FoundSettlementCommand struct {
	PlayerID    int
	PlayerName  string
	ContinentID int    `validate:"required,gt=0"`
	Name        string `validate:"required,max=20"`
	Kind        string `validate:"omitempty,oneof=homestead hamlet village town"`
}

// FoundSettlementResponse carries the new settlement and its terrain
type FoundSettlementResponse struct {
	Settlement dtos.SettlementDTO
	Terrain    []dtos.TileDTO
}

// FoundSettlementOptions configures placement and terrain generation
type FoundSettlementOptions struct {
	GridSize int
	// Seed drives placement and terrain; settlement n gets terrain seed Seed+n
	Seed int64
}

// FoundSettlementHandler handles the FoundSettlement command.
// Founding is serialized per continent; placement, terrain and starting
// ledgers are written in one transaction.
type FoundSettlementHandler struct {
	transactor common.Transactor
	catalog    *catalog.Catalog
	locks      *common.KeyedLocker
	clock      shared.Clock
	gridSize   int
	seed       int64

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewFoundSettlementHandler creates a new FoundSettlementHandler
func NewFoundSettlementHandler(
	transactor common.Transactor,
	cat *catalog.Catalog,
	locks *common.KeyedLocker,
	clock shared.Clock,
	opts FoundSettlementOptions,
) *FoundSettlementHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if locks == nil {
		locks = common.NewKeyedLocker()
	}
	if opts.GridSize <= 0 {
		opts.GridSize = DefaultGridSize
	}

	return &FoundSettlementHandler{
		transactor: transactor,
		catalog:    cat,
		locks:      locks,
		clock:      clock,
		gridSize:   opts.GridSize,
		seed:       opts.Seed,
		rng:        rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)>>1|1)),
	}
}

// Handle executes the FoundSettlement command
func (h *FoundSettlementHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*FoundSettlementCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FoundSettlementCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	kind, err := settlement.ParseKind(cmd.Kind)
	if err != nil {
		return nil, err
	}
	continentID, err := shared.NewContinentID(cmd.ContinentID)
	if err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(common.ContinentLockKey(continentID))
	defer unlock()
	ctx = context.WithoutCancel(ctx)

	var (
		founded *settlement.Settlement
		terrain *settlement.TerrainMap
	)
	err = h.transactor.WithinTransaction(ctx, func(ctx context.Context, stores common.Stores) error {
		owner, err := common.NewPlayerResolver(stores.Players).Resolve(ctx, cmd.PlayerID, cmd.PlayerName)
		if err != nil {
			return err
		}
		continent, err := stores.Continents.FindByID(ctx, continentID)
		if err != nil {
			return err
		}
		occupied, err := stores.Settlements.OccupiedLocations(ctx, continentID)
		if err != nil {
			return fmt.Errorf("failed to load occupied locations: %w", err)
		}

		location, err := h.place(continent, occupied)
		if err != nil {
			return err
		}

		fresh, err := settlement.NewSettlement(cmd.Name, kind, owner.ID, continentID, location, h.gridSize)
		if err != nil {
			return err
		}
		founded, err = stores.Settlements.Add(ctx, fresh)
		if err != nil {
			return fmt.Errorf("failed to save settlement: %w", err)
		}

		terrain, err = settlement.GenerateTerrain(h.seed+int64(founded.ID().Value()), h.gridSize, h.catalog.TerrainKinds())
		if err != nil {
			return err
		}
		if err := stores.Terrain.Save(ctx, founded.ID(), terrain); err != nil {
			return fmt.Errorf("failed to save terrain: %w", err)
		}

		subject := resource.SettlementSubject(founded.ID().Value())
		return common.SeedLedgers(ctx, stores.Snapshots, subject, h.catalog.StartingLedgers(resource.SubjectSettlement), h.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSettlementFounded(founded.Kind().String())
	logging.LoggerFromContext(ctx).InfoContext(ctx, "settlement founded",
		"settlement_id", founded.ID().Value(),
		"player_id", founded.PlayerID().Value(),
		"continent_id", continentID.Value(),
		"location", founded.Location().String(),
	)

	return &FoundSettlementResponse{
		Settlement: dtos.SettlementToDTO(founded),
		Terrain:    dtos.TerrainToDTO(terrain),
	}, nil
}

func (h *FoundSettlementHandler) place(continent *settlement.Continent, occupied []shared.Coordinate) (shared.Coordinate, error) {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return settlement.Place(continent, occupied, h.rng)
}
