package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/logging"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/application/settlement/dtos"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// EnsureContinentCommand creates a continent unless one with the same name exists
type EnsureContinentCommand struct {
	Name   string `validate:"required"`
	Width  int    `validate:"required,gt=0"`
	Height int    `validate:"required,gt=0"`
}

// EnsureContinentResponse returns the continent and whether it was created
type EnsureContinentResponse struct {
	Continent dtos.ContinentDTO
	Created   bool
}

// EnsureContinentHandler handles the EnsureContinent command
type EnsureContinentHandler struct {
	transactor common.Transactor
	locks      *common.KeyedLocker
}

// NewEnsureContinentHandler creates a new EnsureContinentHandler
func NewEnsureContinentHandler(transactor common.Transactor, locks *common.KeyedLocker) *EnsureContinentHandler {
	if locks == nil {
		locks = common.NewKeyedLocker()
	}
	return &EnsureContinentHandler{transactor: transactor, locks: locks}
}

// Handle executes the EnsureContinent command
func (h *EnsureContinentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*EnsureContinentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EnsureContinentCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock("continent-name:" + cmd.Name)
	defer unlock()

	var continent *settlement.Continent
	created := false
	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context, stores common.Stores) error {
		existing, err := stores.Continents.FindByName(ctx, cmd.Name)
		if err == nil {
			continent = existing
			return nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("failed to look up continent: %w", err)
		}

		fresh, err := settlement.NewContinent(cmd.Name, cmd.Width, cmd.Height)
		if err != nil {
			return err
		}
		continent, err = stores.Continents.Add(ctx, fresh)
		if err != nil {
			return fmt.Errorf("failed to save continent: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		logging.LoggerFromContext(ctx).InfoContext(ctx, "continent created",
			"continent_id", continent.ID().Value(), "name", continent.Name(),
			"width", continent.Width(), "height", continent.Height())
	}
	return &EnsureContinentResponse{Continent: dtos.ContinentToDTO(continent), Created: created}, nil
}
