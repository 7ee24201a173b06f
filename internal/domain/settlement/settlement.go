package settlement

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// MaxNameLength bounds settlement names
const MaxNameLength = 20

// Kind is the size class of a settlement
type Kind string

const (
	KindHomestead Kind = "homestead"
	KindHamlet    Kind = "hamlet"
	KindVillage   Kind = "village"
	KindTown      Kind = "town"
)

// AllKinds returns all settlement kinds, smallest first
func AllKinds() []Kind {
	return []Kind{KindHomestead, KindHamlet, KindVillage, KindTown}
}

func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is valid
func (k Kind) IsValid() bool {
	return slices.Contains(AllKinds(), k)
}

// ParseKind parses a kind name; the empty string means homestead
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindHomestead, nil
	}
	k := Kind(s)
	if !k.IsValid() {
		return "", shared.NewValidationError("kind", fmt.Sprintf("invalid settlement kind: %s", s))
	}
	return k, nil
}

// Settlement is a player's holding on a continent. It owns a square grid of
// building plots (GridSize × GridSize) and the terrain under them.
type Settlement struct {
	id          shared.SettlementID
	name        string
	kind        Kind
	playerID    shared.PlayerID
	continentID shared.ContinentID
	location    shared.Coordinate
	gridSize    int
}

// NewSettlement creates a settlement that has not been persisted yet (zero id)
func NewSettlement(
	name string,
	kind Kind,
	playerID shared.PlayerID,
	continentID shared.ContinentID,
	location shared.Coordinate,
	gridSize int,
) (*Settlement, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, shared.NewValidationError("name", fmt.Sprintf("cannot exceed %d characters", MaxNameLength))
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("kind", fmt.Sprintf("invalid settlement kind: %s", kind))
	}
	if playerID.IsZero() {
		return nil, shared.NewValidationError("player_id", "cannot be zero")
	}
	if gridSize <= 0 {
		return nil, shared.NewValidationError("grid_size", "must be positive")
	}

	return &Settlement{
		name:        name,
		kind:        kind,
		playerID:    playerID,
		continentID: continentID,
		location:    location,
		gridSize:    gridSize,
	}, nil
}

// ReconstructSettlement rebuilds a settlement from persistence
func ReconstructSettlement(
	id shared.SettlementID,
	name string,
	kind Kind,
	playerID shared.PlayerID,
	continentID shared.ContinentID,
	location shared.Coordinate,
	gridSize int,
) *Settlement {
	return &Settlement{
		id:          id,
		name:        name,
		kind:        kind,
		playerID:    playerID,
		continentID: continentID,
		location:    location,
		gridSize:    gridSize,
	}
}

// WithID returns a copy carrying the id assigned by the store
func (s *Settlement) WithID(id shared.SettlementID) *Settlement {
	c := *s
	c.id = id
	return &c
}

func (s *Settlement) ID() shared.SettlementID         { return s.id }
func (s *Settlement) Name() string                    { return s.name }
func (s *Settlement) Kind() Kind                      { return s.kind }
func (s *Settlement) PlayerID() shared.PlayerID       { return s.playerID }
func (s *Settlement) ContinentID() shared.ContinentID { return s.continentID }
func (s *Settlement) Location() shared.Coordinate     { return s.location }
func (s *Settlement) GridSize() int                   { return s.gridSize }

// Contains reports whether a plot position lies inside the settlement grid
func (s *Settlement) Contains(position shared.Coordinate) bool {
	return position.Within(s.gridSize, s.gridSize)
}

func (s *Settlement) String() string {
	return fmt.Sprintf("%s (%s)", s.name, s.playerID)
}
