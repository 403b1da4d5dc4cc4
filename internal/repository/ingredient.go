package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SilvioBaratto/diet-generator/internal/models"
)

// IngredientRepository handles the shared ingredient catalog. Rows are created
// lazily on first sight of a name and reused forever after.
type IngredientRepository struct {
	*Repository[models.Ingredient]
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{
		Repository: NewRepository[models.Ingredient](db),
		db:         db,
	}
}

// GetByName returns the ingredient with the exact name, or nil when absent.
func (r *IngredientRepository) GetByName(ctx context.Context, name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).First(&ingredient, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// GetOrCreate looks an ingredient up by name, inserting it when absent. A
// duplicate-key failure means another transaction created the same name
// between our lookup and insert; it is retried once as a lookup so both
// callers converge on the same row.
func (r *IngredientRepository) GetOrCreate(ctx context.Context, name, unit string) (*models.Ingredient, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	ingredient := models.Ingredient{
		ID:   uuid.New(),
		Name: name,
		Unit: unit,
	}
	err = r.db.WithContext(ctx).Create(&ingredient).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}
