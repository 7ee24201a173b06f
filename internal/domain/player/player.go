package player

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// MaxNameLength bounds player names
const MaxNameLength = 20

// Player represents a game account owning settlements and player-scoped ledgers
type Player struct {
	ID        shared.PlayerID
	Name      string
	CreatedAt time.Time
}

// NewPlayer creates a player that has not been persisted yet
func NewPlayer(name string, createdAt time.Time) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, shared.NewValidationError("name", fmt.Sprintf("cannot exceed %d characters", MaxNameLength))
	}
	return &Player{Name: name, CreatedAt: createdAt.UTC()}, nil
}
