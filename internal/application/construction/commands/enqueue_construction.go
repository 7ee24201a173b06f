package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/manoria-go/internal/adapters/metrics"
	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/construction/dtos"
	"github.com/andrescamacho/manoria-go/internal/application/logging"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/construction"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// DefaultBuildDuration is used when no build duration is configured
const DefaultBuildDuration = 2 * time.Minute

// EnqueueConstructionCommand queues a building on a settlement plot
type EnqueueConstructionCommand struct {
	SettlementID int    `validate:"required,gt=0"`
	BuildingKind string `validate:"required"`
	X            int    `validate:"required,gt=0"`
	Y            int    `validate:"required,gt=0"`
}

// EnqueueConstructionResponse carries the scheduled entry
type EnqueueConstructionResponse struct {
	Entry dtos.EntryDTO
}

// EnqueueConstructionHandler is the construction scheduler.
//
// Enqueues are serialized per settlement by an in-process lock and run inside
// one transaction: read the queue tail, compute the interval, pre-register the
// future rate change in the settlement's ledgers, persist the entry. Every
// check runs before the first write.
type EnqueueConstructionHandler struct {
	transactor    common.Transactor
	catalog       *catalog.Catalog
	locks         *common.KeyedLocker
	clock         shared.Clock
	buildDuration time.Duration
}

// NewEnqueueConstructionHandler creates a new EnqueueConstructionHandler
func NewEnqueueConstructionHandler(
	transactor common.Transactor,
	cat *catalog.Catalog,
	locks *common.KeyedLocker,
	clock shared.Clock,
	buildDuration time.Duration,
) *EnqueueConstructionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if locks == nil {
		locks = common.NewKeyedLocker()
	}
	if buildDuration <= 0 {
		buildDuration = DefaultBuildDuration
	}

	return &EnqueueConstructionHandler{
		transactor:    transactor,
		catalog:       cat,
		locks:         locks,
		clock:         clock,
		buildDuration: buildDuration,
	}
}

// Handle executes the EnqueueConstruction command
func (h *EnqueueConstructionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*EnqueueConstructionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EnqueueConstructionCommand")
	}

	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}
	settlementID, err := shared.NewSettlementID(cmd.SettlementID)
	if err != nil {
		return nil, err
	}
	building, err := h.catalog.Building(cmd.BuildingKind)
	if err != nil {
		return nil, err
	}
	position := shared.NewCoordinate(cmd.X, cmd.Y)

	unlock := h.locks.Lock(common.SettlementLockKey(settlementID))
	defer unlock()

	// Once validated and admitted, the enqueue runs to completion
	ctx = context.WithoutCancel(ctx)

	var entry *construction.Entry
	err = h.transactor.WithinTransaction(ctx, func(ctx context.Context, stores common.Stores) error {
		var txErr error
		entry, txErr = h.schedule(ctx, stores, settlementID, building, position)
		return txErr
	})
	if err != nil {
		metrics.RecordConstructionRejected(building.Name, rejectionReason(err))
		return nil, err
	}

	now := h.clock.Now()
	metrics.RecordConstructionEnqueued(building.Name, entry.ConstructionStart().Sub(now))
	logging.LoggerFromContext(ctx).InfoContext(ctx, "construction enqueued",
		"settlement_id", settlementID.Value(),
		"building_kind", building.Name,
		"position", position.String(),
		"start", entry.ConstructionStart(),
		"end", entry.ConstructionEnd(),
	)

	return &EnqueueConstructionResponse{Entry: dtos.EntryToDTO(entry, now)}, nil
}

func (h *EnqueueConstructionHandler) schedule(
	ctx context.Context,
	stores common.Stores,
	settlementID shared.SettlementID,
	building catalog.BuildingKind,
	position shared.Coordinate,
) (*construction.Entry, error) {
	s, err := stores.Settlements.FindByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if !s.Contains(position) {
		return nil, shared.NewValidationError("position",
			fmt.Sprintf("%s is outside the %dx%d settlement grid", position, s.GridSize(), s.GridSize()))
	}

	entries, err := stores.Entries.FindBySettlement(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to load construction queue: %w", err)
	}
	queue := construction.NewQueue(settlementID, entries)

	if occupant := queue.At(position); occupant != nil {
		return nil, &construction.PositionOccupiedError{
			SettlementID: settlementID,
			Position:     position,
			OccupiedBy:   occupant.BuildingKind(),
		}
	}

	terrainName, err := stores.Terrain.FindTile(ctx, settlementID, position)
	if err != nil {
		return nil, err
	}
	terrain, err := h.catalog.Terrain(terrainName)
	if err != nil {
		return nil, err
	}
	if !terrain.Buildable {
		return nil, &construction.TerrainNotBuildableError{
			SettlementID: settlementID,
			Position:     position,
			Terrain:      terrainName,
		}
	}

	if capacity := h.catalog.Capacity(s.Kind().String()); capacity > 0 && queue.Len() >= capacity {
		return nil, &construction.SettlementFullError{SettlementID: settlementID, Capacity: capacity}
	}

	now := h.clock.Now().UTC().Truncate(time.Microsecond)
	start, end := queue.NextSlot(now, h.buildDuration)

	ledger := resource.NewLedger(stores.Snapshots)
	plan := newLedgerPlan(ledger, resource.SettlementSubject(settlementID.Value()))

	for _, cost := range building.Costs {
		if err := plan.charge(ctx, cost.Resource, cost.Amount, start); err != nil {
			return nil, err
		}
	}
	for _, rule := range building.Rules {
		if !rule.AppliesTo(terrainName) {
			continue
		}
		if err := plan.boostRate(ctx, rule.Resource, rule.BaseRate, end); err != nil {
			return nil, err
		}
	}

	entry, err := construction.NewEntry(settlementID, building.Name, position, start, end)
	if err != nil {
		return nil, err
	}

	// All checks passed; nothing below may fail for a domain reason.
	for _, snapshot := range plan.snapshots {
		if err := ledger.AppendSnapshot(ctx, snapshot); err != nil {
			return nil, err
		}
	}
	if err := stores.Entries.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist construction entry: %w", err)
	}
	return entry, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, construction.ErrPositionOccupied):
		return "position_occupied"
	case errors.Is(err, construction.ErrTerrainNotBuildable):
		return "terrain_not_buildable"
	case errors.Is(err, construction.ErrSettlementFull):
		return "settlement_full"
	case errors.Is(err, resource.ErrInsufficientResources):
		return "insufficient_resources"
	case errors.Is(err, shared.ErrNotFound):
		return "not_found"
	default:
		var vErr *shared.ValidationError
		if errors.As(err, &vErr) {
			return "invalid"
		}
		return "error"
	}
}
