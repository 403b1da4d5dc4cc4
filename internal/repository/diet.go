package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SilvioBaratto/diet-generator/internal/models"
)

// DietRepository handles WeeklyDiet persistence and the eager-loaded fetches
// the workflow layer reconstructs plans from.
type DietRepository struct {
	*Repository[models.WeeklyDiet]
	db *gorm.DB
}

func NewDietRepository(db *gorm.DB) *DietRepository {
	return &DietRepository{
		Repository: NewRepository[models.WeeklyDiet](db),
		db:         db,
	}
}

// GetUserDiets returns all diets for a user, most recently created first.
func (r *DietRepository) GetUserDiets(ctx context.Context, userID uuid.UUID) ([]models.WeeklyDiet, error) {
	var diets []models.WeeklyDiet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&diets).Error
	if err != nil {
		return nil, err
	}
	return diets, nil
}

// GetWithMeals fetches a diet scoped to its owner with meals and their
// ingredients eager-loaded in one pass. Meals come back ordered by day then
// time so reconstruction is deterministic. Returns nil when the diet does not
// exist or belongs to another user.
func (r *DietRepository) GetWithMeals(ctx context.Context, dietID, userID uuid.UUID) (*models.WeeklyDiet, error) {
	var diet models.WeeklyDiet
	err := r.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("day, time")
		}).
		Preload("Meals.Ingredients.Ingredient").
		First(&diet, "id = ? AND user_id = ?", dietID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &diet, nil
}

// GetCurrentWeek returns the diet whose date span covers today, with meals and
// grocery list fully loaded. When spans overlap the most recently created diet
// wins. Returns nil when no diet covers today; that is a normal state, not an
// error.
func (r *DietRepository) GetCurrentWeek(ctx context.Context, userID uuid.UUID, today time.Time) (*models.WeeklyDiet, error) {
	var diets []models.WeeklyDiet
	err := r.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("day, time")
		}).
		Preload("Meals.Ingredients.Ingredient").
		Preload("GroceryList.Items.Ingredient").
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, today, today).
		Order("created_at DESC").
		Limit(1).
		Find(&diets).Error
	if err != nil {
		return nil, err
	}
	if len(diets) == 0 {
		return nil, nil
	}
	return &diets[0], nil
}

// GetWithGroceryList fetches a diet scoped to its owner with only the grocery
// list loaded. Returns nil when absent or owned by another user.
func (r *DietRepository) GetWithGroceryList(ctx context.Context, dietID, userID uuid.UUID) (*models.WeeklyDiet, error) {
	var diet models.WeeklyDiet
	err := r.db.WithContext(ctx).
		Preload("GroceryList.Items.Ingredient").
		First(&diet, "id = ? AND user_id = ?", dietID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &diet, nil
}
