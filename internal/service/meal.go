package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SilvioBaratto/diet-generator/internal/models"
	"github.com/SilvioBaratto/diet-generator/internal/repository"
	"github.com/SilvioBaratto/diet-generator/internal/types"
)

// MealService reconstructs single meals and renders their recipes through the
// generation gateway.
type MealService struct {
	db        *gorm.DB
	generator PlanGenerator
	redis     *redis.Client
}

// Ensure MealService implements IMealService
var _ IMealService = (*MealService)(nil)

// NewMealService creates a new MealService instance. redis may be nil; recipe
// caching is skipped without it.
func NewMealService(db *gorm.DB, generator PlanGenerator, redisClient *redis.Client) *MealService {
	return &MealService{
		db:        db,
		generator: generator,
		redis:     redisClient,
	}
}

const recipeCacheTTL = 24 * time.Hour

// getOwnedMeal fetches a meal and enforces ownership by walking the parent
// diet, since meals carry no user_id column of their own.
func (s *MealService) getOwnedMeal(ctx context.Context, mealID, userID uuid.UUID) (*models.Meal, error) {
	meal, err := repository.NewMealRepository(s.db).GetWithIngredients(ctx, mealID)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, ErrMealNotFound
	}
	if meal.WeeklyDiet == nil || meal.WeeklyDiet.UserID != userID {
		return nil, ErrMealForbidden
	}
	return meal, nil
}

// GetMealDetails returns one meal translated into the response vocabulary.
func (s *MealService) GetMealDetails(ctx context.Context, mealID, userID uuid.UUID) (*types.PlanMeal, error) {
	meal, err := s.getOwnedMeal(ctx, mealID, userID)
	if err != nil {
		return nil, err
	}

	meals, err := buildPlanMeals([]models.Meal{*meal})
	if err != nil {
		return nil, err
	}
	return &meals[0], nil
}

// GetMealRecipe renders a full recipe document for the meal, caching the
// result per meal so repeated reads skip the gateway.
func (s *MealService) GetMealRecipe(ctx context.Context, mealID, userID uuid.UUID) (*types.RecipeDocument, error) {
	meal, err := s.getOwnedMeal(ctx, mealID, userID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("meal:recipe:%s", meal.ID)
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var doc types.RecipeDocument
			if err := json.Unmarshal(data, &doc); err == nil {
				return &doc, nil
			}
		}
	}

	planMeals, err := buildPlanMeals([]models.Meal{*meal})
	if err != nil {
		return nil, err
	}
	generated := types.GeneratedMeal{
		Type:        planMeals[0].Type,
		Ingredients: planMeals[0].Ingredients,
		Calories:    planMeals[0].Calories,
	}

	doc, err := s.generator.GenerateRecipe(ctx, generated)
	if err != nil {
		log.Printf("[MealService] recipe generation failed for meal %s: %v", meal.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(doc); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, recipeCacheTTL).Err(); err != nil {
				log.Printf("[MealService] failed to cache recipe for meal %s: %v", meal.ID, err)
			}
		}
	}

	return doc, nil
}
