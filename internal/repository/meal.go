package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SilvioBaratto/diet-generator/internal/models"
)

// MealRepository handles Meal persistence.
type MealRepository struct {
	*Repository[models.Meal]
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{
		Repository: NewRepository[models.Meal](db),
		db:         db,
	}
}

// GetWithIngredients fetches a meal with its ingredients and parent diet
// eager-loaded. The parent is needed for ownership checks: meals carry no
// user_id of their own. Returns nil when the meal does not exist.
func (r *MealRepository) GetWithIngredients(ctx context.Context, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := r.db.WithContext(ctx).
		Preload("WeeklyDiet").
		Preload("Ingredients.Ingredient").
		First(&meal, "id = ?", mealID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}
