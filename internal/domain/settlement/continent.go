package settlement

import (
	"fmt"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// Continent is a bounded grid that settlements are placed on
type Continent struct {
	id     shared.ContinentID
	name   string
	width  int
	height int
}

// NewContinent creates a continent that has not been persisted yet
func NewContinent(name string, width, height int) (*Continent, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if width <= 0 || height <= 0 {
		return nil, shared.NewValidationError("bounds", fmt.Sprintf("must be positive, got %dx%d", width, height))
	}
	return &Continent{name: name, width: width, height: height}, nil
}

// ReconstructContinent rebuilds a continent from persistence
func ReconstructContinent(id shared.ContinentID, name string, width, height int) *Continent {
	return &Continent{id: id, name: name, width: width, height: height}
}

func (c *Continent) ID() shared.ContinentID { return c.id }
func (c *Continent) Name() string           { return c.name }
func (c *Continent) Width() int             { return c.width }
func (c *Continent) Height() int            { return c.height }

// Capacity is the number of settlements the continent can hold
func (c *Continent) Capacity() int {
	return c.width * c.height
}

// Contains reports whether a coordinate lies on the continent
func (c *Continent) Contains(coord shared.Coordinate) bool {
	return coord.Within(c.width, c.height)
}
