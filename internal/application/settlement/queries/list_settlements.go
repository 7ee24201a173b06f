package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/application/settlement/dtos"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
)

// ListSettlementsQuery lists a player's settlements
type ListSettlementsQuery struct {
	PlayerID   int
	PlayerName string
}

// ListSettlementsResponse represents the result of listing settlements
type ListSettlementsResponse struct {
	Settlements []dtos.SettlementDTO
}

// ListSettlementsHandler handles the ListSettlements query
type ListSettlementsHandler struct {
	resolver       *common.PlayerResolver
	settlementRepo settlement.Repository
}

// NewListSettlementsHandler creates a new ListSettlementsHandler
func NewListSettlementsHandler(playerRepo player.PlayerRepository, settlementRepo settlement.Repository) *ListSettlementsHandler {
	return &ListSettlementsHandler{
		resolver:       common.NewPlayerResolver(playerRepo),
		settlementRepo: settlementRepo,
	}
}

// Handle executes the ListSettlements query
func (h *ListSettlementsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListSettlementsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSettlementsQuery")
	}

	owner, err := h.resolver.Resolve(ctx, query.PlayerID, query.PlayerName)
	if err != nil {
		return nil, err
	}
	settlements, err := h.settlementRepo.FindByPlayer(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	out := make([]dtos.SettlementDTO, 0, len(settlements))
	for _, s := range settlements {
		out = append(out, dtos.SettlementToDTO(s))
	}
	return &ListSettlementsResponse{Settlements: out}, nil
}
