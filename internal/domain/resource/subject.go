package resource

import (
	"fmt"
	"strconv"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// SubjectType identifies which kind of entity owns a ledger
type SubjectType string

const (
	SubjectPlayer     SubjectType = "player"
	SubjectSettlement SubjectType = "settlement"
	SubjectBuilding   SubjectType = "building"
	SubjectTerrain    SubjectType = "terrain"
)

// IsValid checks if the subject type is one of the known owners
func (t SubjectType) IsValid() bool {
	switch t {
	case SubjectPlayer, SubjectSettlement, SubjectBuilding, SubjectTerrain:
		return true
	default:
		return false
	}
}

func (t SubjectType) String() string {
	return string(t)
}

// ParseSubjectType parses a string into a SubjectType
func ParseSubjectType(s string) (SubjectType, error) {
	t := SubjectType(s)
	if !t.IsValid() {
		return "", shared.NewValidationError("subject_type", fmt.Sprintf("invalid subject type: %s", s))
	}
	return t, nil
}

// Subject is the owner of a ledger: a player, a settlement, a building or a terrain tile.
// Ledgers are never shared across subjects.
type Subject struct {
	subjectType SubjectType
	id          string
}

// NewSubject creates a Subject value object
func NewSubject(subjectType SubjectType, id string) (Subject, error) {
	if !subjectType.IsValid() {
		return Subject{}, shared.NewValidationError("subject_type", fmt.Sprintf("invalid subject type: %s", subjectType))
	}
	if id == "" {
		return Subject{}, shared.NewValidationError("subject_id", "cannot be empty")
	}
	return Subject{subjectType: subjectType, id: id}, nil
}

// PlayerSubject is the subject for a player-scoped ledger
func PlayerSubject(playerID int) Subject {
	return Subject{subjectType: SubjectPlayer, id: strconv.Itoa(playerID)}
}

// SettlementSubject is the subject for a settlement-scoped ledger
func SettlementSubject(settlementID int) Subject {
	return Subject{subjectType: SubjectSettlement, id: strconv.Itoa(settlementID)}
}

// BuildingSubject is the subject for a ledger kept by one construction entry
func BuildingSubject(entryID string) Subject {
	return Subject{subjectType: SubjectBuilding, id: entryID}
}

func (s Subject) Type() SubjectType { return s.subjectType }
func (s Subject) ID() string         { return s.id }

func (s Subject) IsZero() bool {
	return s.subjectType == "" && s.id == ""
}

func (s Subject) Equals(other Subject) bool {
	return s.subjectType == other.subjectType && s.id == other.id
}

func (s Subject) String() string {
	return fmt.Sprintf("%s:%s", s.subjectType, s.id)
}
