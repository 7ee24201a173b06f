package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/adapters/metrics"
	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/logging"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// CreatePlayerCommand registers a new player
type CreatePlayerCommand struct {
	Name string `validate:"required,max=20"`
}

// CreatePlayerResponse represents the result of creating a player
type CreatePlayerResponse struct {
	Player *player.Player
}

// CreatePlayerHandler handles the CreatePlayer command.
// The player row and its starting ledgers are written in one transaction.
type CreatePlayerHandler struct {
	transactor common.Transactor
	catalog    *catalog.Catalog
	clock      shared.Clock
}

// NewCreatePlayerHandler creates a new CreatePlayerHandler
func NewCreatePlayerHandler(transactor common.Transactor, cat *catalog.Catalog, clock shared.Clock) *CreatePlayerHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CreatePlayerHandler{
		transactor: transactor,
		catalog:    cat,
		clock:      clock,
	}
}

// Handle executes the CreatePlayer command
func (h *CreatePlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreatePlayerCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreatePlayerCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	p, err := player.NewPlayer(cmd.Name, now)
	if err != nil {
		return nil, err
	}

	err = h.transactor.WithinTransaction(ctx, func(ctx context.Context, stores common.Stores) error {
		existing, err := stores.Players.FindByName(ctx, p.Name)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("failed to check player name: %w", err)
		}
		if existing != nil {
			return &player.NameTakenError{Name: p.Name}
		}

		if err := stores.Players.Add(ctx, p); err != nil {
			return fmt.Errorf("failed to save player: %w", err)
		}
		subject := resource.PlayerSubject(p.ID.Value())
		return common.SeedLedgers(ctx, stores.Snapshots, subject, h.catalog.StartingLedgers(resource.SubjectPlayer), now)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPlayerCreated()
	logging.LoggerFromContext(ctx).InfoContext(ctx, "player created", "player_id", p.ID.Value(), "name", p.Name)

	return &CreatePlayerResponse{Player: p}, nil
}
