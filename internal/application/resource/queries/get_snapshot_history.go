package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/application/resource/dtos"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
)

// GetSnapshotHistoryQuery returns the audit trail of one ledger
type GetSnapshotHistoryQuery struct {
	SubjectType  string `validate:"required"`
	SubjectID    string `validate:"required"`
	ResourceKind string `validate:"required"`
}

// GetSnapshotHistoryResponse lists snapshots oldest first
type GetSnapshotHistoryResponse struct {
	Snapshots []dtos.SnapshotDTO
}

// GetSnapshotHistoryHandler handles the GetSnapshotHistory query
type GetSnapshotHistoryHandler struct {
	snapshotRepo resource.SnapshotRepository
	catalog      *catalog.Catalog
}

// NewGetSnapshotHistoryHandler creates a new GetSnapshotHistoryHandler
func NewGetSnapshotHistoryHandler(snapshotRepo resource.SnapshotRepository, cat *catalog.Catalog) *GetSnapshotHistoryHandler {
	return &GetSnapshotHistoryHandler{snapshotRepo: snapshotRepo, catalog: cat}
}

// Handle executes the GetSnapshotHistory query
func (h *GetSnapshotHistoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetSnapshotHistoryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSnapshotHistoryQuery")
	}
	if err := common.ValidateRequest(query); err != nil {
		return nil, err
	}

	subject, kind, err := common.ParseLedgerRef(h.catalog, query.SubjectType, query.SubjectID, query.ResourceKind)
	if err != nil {
		return nil, err
	}

	snapshots, err := resource.NewLedger(h.snapshotRepo).History(ctx, subject, kind)
	if err != nil {
		return nil, err
	}

	dtoList := make([]dtos.SnapshotDTO, 0, len(snapshots))
	for _, s := range snapshots {
		dtoList = append(dtoList, dtos.SnapshotToDTO(s))
	}
	return &GetSnapshotHistoryResponse{Snapshots: dtoList}, nil
}
