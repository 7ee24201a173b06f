package settlement

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// ErrContinentFull is matched by ContinentFullError
var ErrContinentFull = errors.New("continent full")

// ContinentFullError is returned when no free coordinate is left on a continent
type ContinentFullError struct {
	ContinentID shared.ContinentID
	Name        string
	Capacity    int
}

func (e *ContinentFullError) Error() string {
	return fmt.Sprintf("continent %s is full (%d settlements)", e.Name, e.Capacity)
}

func (e *ContinentFullError) Is(target error) bool {
	return target == ErrContinentFull
}
