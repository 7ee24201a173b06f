package player

import (
	"context"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// PlayerRepository defines player persistence operations
type PlayerRepository interface {
	FindByID(ctx context.Context, playerID shared.PlayerID) (*Player, error)
	FindByName(ctx context.Context, name string) (*Player, error)

	// Add persists a new player and sets its ID
	Add(ctx context.Context, player *Player) error
}
