package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/manoria-go/internal/domain/construction"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// GormEntryRepository implements construction.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GORM construction entry repository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Add inserts an entry. The unique plot index rejects a second building on
// the same position even if a caller skipped the queue check.
func (r *GormEntryRepository) Add(ctx context.Context, entry *construction.Entry) error {
	model := &ConstructionEntryModel{
		ID:                entry.ID(),
		SettlementID:      entry.SettlementID().Value(),
		X:                 entry.Position().X,
		Y:                 entry.Position().Y,
		BuildingKind:      entry.BuildingKind(),
		ConstructionStart: entry.ConstructionStart(),
		ConstructionEnd:   entry.ConstructionEnd(),
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return &construction.PositionOccupiedError{
				SettlementID: entry.SettlementID(),
				Position:     entry.Position(),
				OccupiedBy:   "another building",
			}
		}
		return fmt.Errorf("failed to add construction entry: %w", result.Error)
	}
	return nil
}

// FindBySettlement returns a settlement's entries ordered by construction start
func (r *GormEntryRepository) FindBySettlement(ctx context.Context, settlementID shared.SettlementID) ([]*construction.Entry, error) {
	var models []ConstructionEntryModel
	result := r.db.WithContext(ctx).
		Where("settlement_id = ?", settlementID.Value()).
		Order("construction_start ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load construction entries: %w", result.Error)
	}

	entries := make([]*construction.Entry, 0, len(models))
	for i := range models {
		entries = append(entries, modelToEntry(&models[i]))
	}
	return entries, nil
}

// FindByID retrieves a single entry
func (r *GormEntryRepository) FindByID(ctx context.Context, id string) (*construction.Entry, error) {
	var model ConstructionEntryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("construction entry", id)
		}
		return nil, fmt.Errorf("failed to find construction entry: %w", result.Error)
	}
	return modelToEntry(&model), nil
}

func modelToEntry(m *ConstructionEntryModel) *construction.Entry {
	return construction.ReconstructEntry(
		m.ID,
		shared.MustNewSettlementID(m.SettlementID),
		m.BuildingKind,
		shared.NewCoordinate(m.X, m.Y),
		m.ConstructionStart,
		m.ConstructionEnd,
	)
}
