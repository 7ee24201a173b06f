package steps

import (
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/manoria-go/internal/domain/construction"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// domainErrors maps the error names used in feature files to sentinels
var domainErrors = map[string]error{
	"not found":              shared.ErrNotFound,
	"position occupied":      construction.ErrPositionOccupied,
	"terrain not buildable":  construction.ErrTerrainNotBuildable,
	"settlement full":        construction.ErrSettlementFull,
	"continent full":         settlement.ErrContinentFull,
	"insufficient resources": resource.ErrInsufficientResources,
	"name taken":             player.ErrNameTaken,
}

// expectError checks err against a named domain error
func expectError(err error, name string) error {
	if err == nil {
		return fmt.Errorf("expected %q error, got success", name)
	}
	if name == "validation" {
		var validationErr *shared.ValidationError
		if errors.As(err, &validationErr) {
			return nil
		}
		return fmt.Errorf("expected validation error, got %v", err)
	}

	target, ok := domainErrors[name]
	if !ok {
		return fmt.Errorf("unknown error name %q", name)
	}
	if !errors.Is(err, target) {
		return fmt.Errorf("expected %q error, got %v", name, err)
	}
	return nil
}

func parseInstant(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %s: %w", value, err)
	}
	return t, nil
}
