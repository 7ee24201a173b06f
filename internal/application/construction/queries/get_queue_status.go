package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/construction/dtos"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/domain/construction"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// GetQueueStatusQuery partitions a settlement's construction entries at AsOf
// (defaults to now)
type GetQueueStatusQuery struct {
	SettlementID int `validate:"required,gt=0"`
	AsOf         *time.Time
}

// GetQueueStatusResponse lists entries by derived status.
// Pending holds every unfinished entry ordered by start, so the entry under
// construction appears both there and in UnderConstruction.
type GetQueueStatusResponse struct {
	SettlementID      int
	AsOf              time.Time
	Pending           []dtos.EntryDTO
	UnderConstruction *dtos.EntryDTO
	Built             []dtos.EntryDTO
}

// GetQueueStatusHandler handles the GetQueueStatus query
type GetQueueStatusHandler struct {
	settlementRepo settlement.Repository
	entryRepo      construction.EntryRepository
	clock          shared.Clock
}

// NewGetQueueStatusHandler creates a new GetQueueStatusHandler
func NewGetQueueStatusHandler(
	settlementRepo settlement.Repository,
	entryRepo construction.EntryRepository,
	clock shared.Clock,
) *GetQueueStatusHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GetQueueStatusHandler{
		settlementRepo: settlementRepo,
		entryRepo:      entryRepo,
		clock:          clock,
	}
}

// Handle executes the GetQueueStatus query
func (h *GetQueueStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetQueueStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetQueueStatusQuery")
	}
	if err := common.ValidateRequest(query); err != nil {
		return nil, err
	}

	settlementID, err := shared.NewSettlementID(query.SettlementID)
	if err != nil {
		return nil, err
	}
	if _, err := h.settlementRepo.FindByID(ctx, settlementID); err != nil {
		return nil, err
	}

	asOf := h.clock.Now()
	if query.AsOf != nil {
		asOf = *query.AsOf
	}

	entries, err := h.entryRepo.FindBySettlement(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to load construction queue: %w", err)
	}
	queue := construction.NewQueue(settlementID, entries)

	response := &GetQueueStatusResponse{
		SettlementID: settlementID.Value(),
		AsOf:         asOf,
		Pending:      dtos.EntriesToDTO(queue.Queued(asOf), asOf),
		Built:        dtos.EntriesToDTO(queue.Completed(asOf), asOf),
	}
	if current := queue.UnderConstruction(asOf); current != nil {
		dto := dtos.EntryToDTO(current, asOf)
		response.UnderConstruction = &dto
	}
	return response, nil
}
