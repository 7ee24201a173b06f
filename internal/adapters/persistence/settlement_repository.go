package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// GormContinentRepository implements settlement.ContinentRepository using GORM
type GormContinentRepository struct {
	db *gorm.DB
}

// NewGormContinentRepository creates a new GORM continent repository
func NewGormContinentRepository(db *gorm.DB) *GormContinentRepository {
	return &GormContinentRepository{db: db}
}

// Add inserts a continent and returns it with its assigned ID
func (r *GormContinentRepository) Add(ctx context.Context, c *settlement.Continent) (*settlement.Continent, error) {
	model := &ContinentModel{Name: c.Name(), Width: c.Width(), Height: c.Height()}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to add continent: %w", err)
	}
	return modelToContinent(model), nil
}

// FindByID retrieves a continent by ID
func (r *GormContinentRepository) FindByID(ctx context.Context, id shared.ContinentID) (*settlement.Continent, error) {
	var model ContinentModel
	result := r.db.WithContext(ctx).Where("id = ?", id.Value()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("continent", id.Value())
		}
		return nil, fmt.Errorf("failed to find continent: %w", result.Error)
	}
	return modelToContinent(&model), nil
}

// FindByName retrieves a continent by name
func (r *GormContinentRepository) FindByName(ctx context.Context, name string) (*settlement.Continent, error) {
	var model ContinentModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("continent", name)
		}
		return nil, fmt.Errorf("failed to find continent: %w", result.Error)
	}
	return modelToContinent(&model), nil
}

func modelToContinent(model *ContinentModel) *settlement.Continent {
	return settlement.ReconstructContinent(shared.MustNewContinentID(model.ID), model.Name, model.Width, model.Height)
}

// GormSettlementRepository implements settlement.Repository using GORM
type GormSettlementRepository struct {
	db *gorm.DB
}

// NewGormSettlementRepository creates a new GORM settlement repository
func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

// Add inserts a settlement and returns it with its assigned ID
func (r *GormSettlementRepository) Add(ctx context.Context, s *settlement.Settlement) (*settlement.Settlement, error) {
	model := &SettlementModel{
		Name:        s.Name(),
		Kind:        s.Kind().String(),
		PlayerID:    s.PlayerID().Value(),
		ContinentID: s.ContinentID().Value(),
		X:           s.Location().X,
		Y:           s.Location().Y,
		GridSize:    s.GridSize(),
		CreatedAt:   time.Now().UTC(),
	}

	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("continent location %s already settled: %w", s.Location(), result.Error)
		}
		return nil, fmt.Errorf("failed to add settlement: %w", result.Error)
	}

	id, err := shared.NewSettlementID(model.ID)
	if err != nil {
		return nil, err
	}
	return s.WithID(id), nil
}

// FindByID retrieves a settlement by ID
func (r *GormSettlementRepository) FindByID(ctx context.Context, id shared.SettlementID) (*settlement.Settlement, error) {
	var model SettlementModel
	result := r.db.WithContext(ctx).Where("id = ?", id.Value()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("settlement", id.Value())
		}
		return nil, fmt.Errorf("failed to find settlement: %w", result.Error)
	}
	return modelToSettlement(&model), nil
}

// FindByPlayer lists a player's settlements in founding order
func (r *GormSettlementRepository) FindByPlayer(ctx context.Context, playerID shared.PlayerID) ([]*settlement.Settlement, error) {
	var models []SettlementModel
	result := r.db.WithContext(ctx).Where("player_id = ?", playerID.Value()).Order("id ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", result.Error)
	}

	settlements := make([]*settlement.Settlement, 0, len(models))
	for i := range models {
		settlements = append(settlements, modelToSettlement(&models[i]))
	}
	return settlements, nil
}

// OccupiedLocations lists every settled coordinate of a continent
func (r *GormSettlementRepository) OccupiedLocations(ctx context.Context, continentID shared.ContinentID) ([]shared.Coordinate, error) {
	var models []SettlementModel
	result := r.db.WithContext(ctx).
		Select("x", "y").
		Where("continent_id = ?", continentID.Value()).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load settlement locations: %w", result.Error)
	}

	coords := make([]shared.Coordinate, 0, len(models))
	for _, m := range models {
		coords = append(coords, shared.NewCoordinate(m.X, m.Y))
	}
	return coords, nil
}

func modelToSettlement(model *SettlementModel) *settlement.Settlement {
	return settlement.ReconstructSettlement(
		shared.MustNewSettlementID(model.ID),
		model.Name,
		settlement.Kind(model.Kind),
		shared.MustNewPlayerID(model.PlayerID),
		shared.MustNewContinentID(model.ContinentID),
		shared.NewCoordinate(model.X, model.Y),
		model.GridSize,
	)
}

// GormTerrainRepository implements settlement.TerrainRepository using GORM
type GormTerrainRepository struct {
	db *gorm.DB
}

// NewGormTerrainRepository creates a new GORM terrain repository
func NewGormTerrainRepository(db *gorm.DB) *GormTerrainRepository {
	return &GormTerrainRepository{db: db}
}

// Save writes a settlement's full terrain grid
func (r *GormTerrainRepository) Save(ctx context.Context, settlementID shared.SettlementID, terrain *settlement.TerrainMap) error {
	tiles := terrain.Tiles()
	models := make([]SettlementTerrainModel, 0, len(tiles))
	for _, t := range tiles {
		models = append(models, SettlementTerrainModel{
			SettlementID: settlementID.Value(),
			X:            t.Position.X,
			Y:            t.Position.Y,
			Terrain:      t.Terrain,
		})
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return fmt.Errorf("failed to save terrain: %w", err)
	}
	return nil
}

// FindTile returns the terrain kind of one plot
func (r *GormTerrainRepository) FindTile(ctx context.Context, settlementID shared.SettlementID, position shared.Coordinate) (string, error) {
	var model SettlementTerrainModel
	result := r.db.WithContext(ctx).
		Where("settlement_id = ? AND x = ? AND y = ?", settlementID.Value(), position.X, position.Y).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", shared.NewNotFoundError("terrain tile", fmt.Sprintf("settlement %s %s", settlementID, position))
		}
		return "", fmt.Errorf("failed to find terrain tile: %w", result.Error)
	}
	return model.Terrain, nil
}

// Load reads a settlement's terrain grid
func (r *GormTerrainRepository) Load(ctx context.Context, settlementID shared.SettlementID, size int) (*settlement.TerrainMap, error) {
	var models []SettlementTerrainModel
	result := r.db.WithContext(ctx).Where("settlement_id = ?", settlementID.Value()).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load terrain: %w", result.Error)
	}

	tiles := make([]settlement.Tile, 0, len(models))
	for _, m := range models {
		tiles = append(tiles, settlement.Tile{Position: shared.NewCoordinate(m.X, m.Y), Terrain: m.Terrain})
	}
	return settlement.NewTerrainMap(size, tiles)
}
