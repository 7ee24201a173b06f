package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/manoria-go/internal/domain/construction"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// toStatus maps an application error onto a gRPC status error.
// Errors that already carry a status pass through unchanged.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codeFor(err), err.Error())
}

func codeFor(err error) codes.Code {
	var validationErr *shared.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return codes.InvalidArgument
	case errors.Is(err, shared.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, construction.ErrPositionOccupied),
		errors.Is(err, player.ErrNameTaken):
		return codes.AlreadyExists
	case errors.Is(err, construction.ErrTerrainNotBuildable),
		errors.Is(err, construction.ErrSettlementFull),
		errors.Is(err, settlement.ErrContinentFull),
		errors.Is(err, resource.ErrInsufficientResources):
		return codes.FailedPrecondition
	case errors.Is(err, resource.ErrInvalidTimestamp):
		return codes.Internal
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}
