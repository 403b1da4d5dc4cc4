package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/SilvioBaratto/diet-generator/internal/types"
)

// PlanGenerator is the external generation capability: profile parameters in,
// structured plan out; plan in, grocery list out; meal in, rendered recipe out.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, startDate string, weight, height float64, goal, notes string) (*types.GeneratedPlan, error)
	GenerateGroceryList(ctx context.Context, meals []types.GeneratedMeal) (*types.GeneratedGroceryList, error)
	GenerateRecipe(ctx context.Context, meal types.GeneratedMeal) (*types.RecipeDocument, error)
}

// PlanArchiver stores a copy of a generated plan document out of band.
type PlanArchiver interface {
	ArchivePlan(ctx context.Context, userID, dietID uuid.UUID, doc *types.PlanWithGroceryList) error
}

// IDietService defines the diet workflow operations.
type IDietService interface {
	CreateDiet(ctx context.Context, userID uuid.UUID) (*types.PlanWithGroceryList, error)
	GetCurrentWeekDiet(ctx context.Context, userID uuid.UUID) (*types.PlanWithGroceryList, error)
	GetDietByID(ctx context.Context, dietID, userID uuid.UUID) (*types.Plan, error)
	GetGroceryListByDietID(ctx context.Context, dietID, userID uuid.UUID) (*types.GroceryList, error)
	GetUserDiets(ctx context.Context, userID uuid.UUID) ([]types.DietSummary, error)
}

// IMealService defines the meal workflow operations.
type IMealService interface {
	GetMealDetails(ctx context.Context, mealID, userID uuid.UUID) (*types.PlanMeal, error)
	GetMealRecipe(ctx context.Context, mealID, userID uuid.UUID) (*types.RecipeDocument, error)
}

// ISettingsService defines the user settings operations.
type ISettingsService interface {
	GetUserSettings(ctx context.Context, userID uuid.UUID) (*types.SettingsResponse, error)
	UpdateUserSettings(ctx context.Context, userID uuid.UUID, req *types.UpdateSettingsRequest) (*types.SettingsResponse, error)
}
