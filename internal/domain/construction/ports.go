package construction

import (
	"context"

	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// EntryRepository defines persistence operations for construction entries
type EntryRepository interface {
	// Add persists a new entry; (settlement, x, y) is unique
	Add(ctx context.Context, entry *Entry) error

	// FindBySettlement returns every entry of a settlement ordered by construction start
	FindBySettlement(ctx context.Context, settlementID shared.SettlementID) ([]*Entry, error)

	// FindByID retrieves a single entry
	FindByID(ctx context.Context, id string) (*Entry, error)
}
