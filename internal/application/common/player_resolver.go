package common

import (
	"context"
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// PlayerResolver resolves a player from either a numeric id or a player name.
//
// Business rules:
//   - At least one of playerID or name must be provided
//   - If both are provided, playerID takes precedence
//   - The player must exist
type PlayerResolver struct {
	playerRepo player.PlayerRepository
}

// NewPlayerResolver creates a new player resolver with required dependencies.
func NewPlayerResolver(playerRepo player.PlayerRepository) *PlayerResolver {
	return &PlayerResolver{
		playerRepo: playerRepo,
	}
}

// Resolve returns the referenced player
func (r *PlayerResolver) Resolve(ctx context.Context, playerID int, name string) (*player.Player, error) {
	if playerID == 0 && name == "" {
		return nil, shared.NewValidationError("player", "either player_id or player name must be provided")
	}

	if playerID != 0 {
		pid, err := shared.NewPlayerID(playerID)
		if err != nil {
			return nil, fmt.Errorf("invalid player ID: %w", err)
		}
		p, err := r.playerRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("failed to find player: %w", err)
		}
		return p, nil
	}

	p, err := r.playerRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find player by name: %w", err)
	}
	return p, nil
}
