package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/manoria-go/internal/domain/resource"
)

// GormSnapshotRepository implements resource.SnapshotRepository using GORM.
// It only ever inserts; there is no update or delete path.
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GORM snapshot repository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Append inserts a snapshot
func (r *GormSnapshotRepository) Append(ctx context.Context, snapshot *resource.Snapshot) error {
	model := snapshotToModel(snapshot)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append snapshot: %w", err)
	}
	return nil
}

// FindLatestAt returns the newest snapshot valid at asOf, or nil
func (r *GormSnapshotRepository) FindLatestAt(ctx context.Context, subject resource.Subject, kind resource.Kind, asOf time.Time) (*resource.Snapshot, error) {
	query := r.ledger(ctx, subject, kind).Where("valid_from <= ?", asOf.UTC())
	return r.first(query)
}

// FindLatest returns the newest snapshot of a ledger, or nil
func (r *GormSnapshotRepository) FindLatest(ctx context.Context, subject resource.Subject, kind resource.Kind) (*resource.Snapshot, error) {
	return r.first(r.ledger(ctx, subject, kind))
}

// FindHistory returns every snapshot of a ledger, oldest first
func (r *GormSnapshotRepository) FindHistory(ctx context.Context, subject resource.Subject, kind resource.Kind) ([]*resource.Snapshot, error) {
	var models []ResourceSnapshotModel
	result := r.ledger(ctx, subject, kind).
		Order("valid_from ASC").
		Order("sequence ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load snapshot history: %w", result.Error)
	}

	snapshots := make([]*resource.Snapshot, 0, len(models))
	for i := range models {
		snapshots = append(snapshots, modelToSnapshot(&models[i]))
	}
	return snapshots, nil
}

func (r *GormSnapshotRepository) ledger(ctx context.Context, subject resource.Subject, kind resource.Kind) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ResourceSnapshotModel{}).
		Where("subject_type = ? AND subject_id = ? AND resource_kind = ?",
			subject.Type().String(), subject.ID(), kind.String())
}

func (r *GormSnapshotRepository) first(query *gorm.DB) (*resource.Snapshot, error) {
	var model ResourceSnapshotModel
	result := query.Order("valid_from DESC").Order("sequence DESC").Limit(1).Take(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find snapshot: %w", result.Error)
	}
	return modelToSnapshot(&model), nil
}

func snapshotToModel(s *resource.Snapshot) *ResourceSnapshotModel {
	return &ResourceSnapshotModel{
		ID:             s.ID(),
		SubjectType:    s.Subject().Type().String(),
		SubjectID:      s.Subject().ID(),
		ResourceKind:   s.Kind().String(),
		ValidFrom:      s.Timestamp(),
		Count:          s.Count(),
		NaturalRate:    s.NaturalRate(),
		RateAdjustment: s.RateAdjustment(),
		StorageLimit:   s.Limit(),
	}
}

func modelToSnapshot(m *ResourceSnapshotModel) *resource.Snapshot {
	subject, _ := resource.NewSubject(resource.SubjectType(m.SubjectType), m.SubjectID)
	return resource.ReconstructSnapshot(
		m.ID,
		m.Sequence,
		subject,
		resource.Kind(m.ResourceKind),
		m.Count,
		m.ValidFrom,
		m.NaturalRate,
		m.RateAdjustment,
		m.StorageLimit,
	)
}
