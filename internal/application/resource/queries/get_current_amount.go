package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/application/resource/dtos"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// GetCurrentAmountQuery asks for the extrapolated amount of one ledger at AsOf
// (defaults to now)
type GetCurrentAmountQuery struct {
	SubjectType  string `validate:"required"`
	SubjectID    string `validate:"required"`
	ResourceKind string `validate:"required"`
	AsOf         *time.Time
}

// GetCurrentAmountResponse carries the amount and the rate in force
type GetCurrentAmountResponse struct {
	Amount dtos.AmountDTO
}

// GetCurrentAmountHandler handles the GetCurrentAmount query.
// Reads never write; a missing ledger is reported as NotFound, never as zero.
type GetCurrentAmountHandler struct {
	snapshotRepo resource.SnapshotRepository
	catalog      *catalog.Catalog
	clock        shared.Clock
}

// NewGetCurrentAmountHandler creates a new GetCurrentAmountHandler
func NewGetCurrentAmountHandler(
	snapshotRepo resource.SnapshotRepository,
	cat *catalog.Catalog,
	clock shared.Clock,
) *GetCurrentAmountHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GetCurrentAmountHandler{
		snapshotRepo: snapshotRepo,
		catalog:      cat,
		clock:        clock,
	}
}

// Handle executes the GetCurrentAmount query
func (h *GetCurrentAmountHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCurrentAmountQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCurrentAmountQuery")
	}
	if err := common.ValidateRequest(query); err != nil {
		return nil, err
	}

	subject, kind, err := common.ParseLedgerRef(h.catalog, query.SubjectType, query.SubjectID, query.ResourceKind)
	if err != nil {
		return nil, err
	}

	asOf := h.clock.Now()
	if query.AsOf != nil {
		asOf = *query.AsOf
	}

	projection, err := resource.NewLedger(h.snapshotRepo).Project(ctx, subject, kind, asOf)
	if err != nil {
		return nil, err
	}
	return &GetCurrentAmountResponse{Amount: dtos.ProjectionToDTO(projection)}, nil
}
