package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// GormPlayerRepository implements PlayerRepository using GORM
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewGormPlayerRepository creates a new GORM player repository
func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

// FindByID retrieves a player by ID
func (r *GormPlayerRepository) FindByID(ctx context.Context, playerID shared.PlayerID) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Where("id = ?", playerID.Value()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("player", playerID.Value())
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return modelToPlayer(&model), nil
}

// FindByName retrieves a player by name
func (r *GormPlayerRepository) FindByName(ctx context.Context, name string) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("player", name)
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return modelToPlayer(&model), nil
}

// Add inserts a player and assigns its ID
func (r *GormPlayerRepository) Add(ctx context.Context, p *player.Player) error {
	model := &PlayerModel{
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return &player.NameTakenError{Name: p.Name}
		}
		return fmt.Errorf("failed to add player: %w", result.Error)
	}

	id, err := shared.NewPlayerID(model.ID)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func modelToPlayer(model *PlayerModel) *player.Player {
	return &player.Player{
		ID:        shared.MustNewPlayerID(model.ID),
		Name:      model.Name,
		CreatedAt: model.CreatedAt.UTC(),
	}
}
