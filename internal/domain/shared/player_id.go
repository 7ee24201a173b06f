package shared

import "fmt"

// PlayerID is a value object representing a player's unique identifier
type PlayerID struct {
	value int
}

// NewPlayerID creates a new PlayerID value object
func NewPlayerID(id int) (PlayerID, error) {
	if id <= 0 {
		return PlayerID{}, NewValidationError("player_id", "must be positive")
	}
	return PlayerID{value: id}, nil
}

// MustNewPlayerID creates a new PlayerID value object, panicking if invalid
// Use this only when you're certain the ID is valid (e.g., from database)
func MustNewPlayerID(id int) PlayerID {
	playerID, err := NewPlayerID(id)
	if err != nil {
		panic(err)
	}
	return playerID
}

// Value returns the integer value of the PlayerID
func (p PlayerID) Value() int {
	return p.value
}

// String returns a string representation of the PlayerID
func (p PlayerID) String() string {
	return fmt.Sprintf("%d", p.value)
}

// Equals checks if two PlayerIDs are equal
func (p PlayerID) Equals(other PlayerID) bool {
	return p.value == other.value
}

// IsZero checks if the PlayerID is the zero value (uninitialized)
func (p PlayerID) IsZero() bool {
	return p.value == 0
}

// SettlementID identifies a settlement
type SettlementID struct {
	value int
}

// NewSettlementID creates a new SettlementID value object
func NewSettlementID(id int) (SettlementID, error) {
	if id <= 0 {
		return SettlementID{}, NewValidationError("settlement_id", "must be positive")
	}
	return SettlementID{value: id}, nil
}

// MustNewSettlementID panics on an invalid id (database rows only)
func MustNewSettlementID(id int) SettlementID {
	settlementID, err := NewSettlementID(id)
	if err != nil {
		panic(err)
	}
	return settlementID
}

func (s SettlementID) Value() int {
	return s.value
}

func (s SettlementID) String() string {
	return fmt.Sprintf("%d", s.value)
}

func (s SettlementID) IsZero() bool {
	return s.value == 0
}

// ContinentID identifies a continent
type ContinentID struct {
	value int
}

// NewContinentID creates a new ContinentID value object
func NewContinentID(id int) (ContinentID, error) {
	if id <= 0 {
		return ContinentID{}, NewValidationError("continent_id", "must be positive")
	}
	return ContinentID{value: id}, nil
}

// MustNewContinentID panics on an invalid id (database rows only)
func MustNewContinentID(id int) ContinentID {
	continentID, err := NewContinentID(id)
	if err != nil {
		panic(err)
	}
	return continentID
}

func (c ContinentID) Value() int {
	return c.value
}

func (c ContinentID) String() string {
	return fmt.Sprintf("%d", c.value)
}
