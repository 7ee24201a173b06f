package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/application/resource/dtos"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// GetSettlementResourcesQuery reports every catalog resource of a settlement at AsOf
type GetSettlementResourcesQuery struct {
	SettlementID int `validate:"required,gt=0"`
	AsOf         *time.Time
}

// GetSettlementResourcesResponse lists tracked amounts in catalog order.
// Untracked names the catalog resources the settlement has no ledger for.
type GetSettlementResourcesResponse struct {
	SettlementID int
	AsOf         time.Time
	Amounts      []dtos.AmountDTO
	Untracked    []string
}

// GetSettlementResourcesHandler handles the GetSettlementResources query
type GetSettlementResourcesHandler struct {
	settlementRepo settlement.Repository
	snapshotRepo   resource.SnapshotRepository
	catalog        *catalog.Catalog
	clock          shared.Clock
}

// NewGetSettlementResourcesHandler creates a new GetSettlementResourcesHandler
func NewGetSettlementResourcesHandler(
	settlementRepo settlement.Repository,
	snapshotRepo resource.SnapshotRepository,
	cat *catalog.Catalog,
	clock shared.Clock,
) *GetSettlementResourcesHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GetSettlementResourcesHandler{
		settlementRepo: settlementRepo,
		snapshotRepo:   snapshotRepo,
		catalog:        cat,
		clock:          clock,
	}
}

// Handle executes the GetSettlementResources query
func (h *GetSettlementResourcesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetSettlementResourcesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSettlementResourcesQuery")
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

	ledger := resource.NewLedger(h.snapshotRepo)
	subject := resource.SettlementSubject(settlementID.Value())
	response := &GetSettlementResourcesResponse{SettlementID: settlementID.Value(), AsOf: asOf}

	for _, kind := range h.catalog.ResourceKinds() {
		projection, err := ledger.Project(ctx, subject, kind, asOf)
		if errors.Is(err, shared.ErrNotFound) {
			response.Untracked = append(response.Untracked, kind.String())
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to project %s: %w", kind, err)
		}
		response.Amounts = append(response.Amounts, dtos.ProjectionToDTO(projection))
	}
	return response, nil
}
