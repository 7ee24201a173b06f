package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/application/settlement/dtos"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// GetSettlementQuery loads one settlement with its terrain grid
type GetSettlementQuery struct {
	SettlementID int `validate:"required,gt=0"`
}

// GetSettlementResponse represents the result of getting a settlement
type GetSettlementResponse struct {
	Settlement dtos.SettlementDTO
	Terrain    []dtos.TileDTO
}

// GetSettlementHandler handles the GetSettlement query
type GetSettlementHandler struct {
	settlementRepo settlement.Repository
	terrainRepo    settlement.TerrainRepository
}

// NewGetSettlementHandler creates a new GetSettlementHandler
func NewGetSettlementHandler(settlementRepo settlement.Repository, terrainRepo settlement.TerrainRepository) *GetSettlementHandler {
	return &GetSettlementHandler{settlementRepo: settlementRepo, terrainRepo: terrainRepo}
}

// Handle executes the GetSettlement query
func (h *GetSettlementHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetSettlementQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSettlementQuery")
	}
	if err := common.ValidateRequest(query); err != nil {
		return nil, err
	}

	id, err := shared.NewSettlementID(query.SettlementID)
	if err != nil {
		return nil, err
	}
	s, err := h.settlementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	terrain, err := h.terrainRepo.Load(ctx, id, s.GridSize())
	if err != nil {
		return nil, fmt.Errorf("failed to load terrain: %w", err)
	}

	return &GetSettlementResponse{
		Settlement: dtos.SettlementToDTO(s),
		Terrain:    dtos.TerrainToDTO(terrain),
	}, nil
}
