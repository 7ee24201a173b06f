package player

import (
	"errors"
	"fmt"
)

// ErrNameTaken is matched by NameTakenError
var ErrNameTaken = errors.New("player name taken")

// NameTakenError is returned when a player name is already registered
type NameTakenError struct {
	Name string
}

func (e *NameTakenError) Error() string {
	return fmt.Sprintf("player name %q is already taken", e.Name)
}

func (e *NameTakenError) Is(target error) bool {
	return target == ErrNameTaken
}
