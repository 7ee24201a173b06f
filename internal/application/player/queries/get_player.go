package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
)

// GetPlayerQuery represents a query to get a player by ID or name
type GetPlayerQuery struct {
	PlayerID int    // Optional: get by player ID
	Name     string // Optional: get by name
}

// GetPlayerResponse represents the result of getting a player
type GetPlayerResponse struct {
	Player *player.Player
}

// GetPlayerHandler handles the GetPlayer query
type GetPlayerHandler struct {
	resolver *common.PlayerResolver
}

// NewGetPlayerHandler creates a new GetPlayerHandler
func NewGetPlayerHandler(playerRepo player.PlayerRepository) *GetPlayerHandler {
	return &GetPlayerHandler{
		resolver: common.NewPlayerResolver(playerRepo),
	}
}

// Handle executes the GetPlayer query
func (h *GetPlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPlayerQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlayerQuery")
	}

	p, err := h.resolver.Resolve(ctx, query.PlayerID, query.Name)
	if err != nil {
		return nil, err
	}
	return &GetPlayerResponse{Player: p}, nil
}
