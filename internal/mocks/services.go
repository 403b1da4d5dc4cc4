package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SilvioBaratto/diet-generator/internal/types"
)

// MockDietService is a mock implementation of service.IDietService
type MockDietService struct {
	mock.Mock
}

func (m *MockDietService) CreateDiet(ctx context.Context, userID uuid.UUID) (*types.PlanWithGroceryList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PlanWithGroceryList), args.Error(1)
}

func (m *MockDietService) GetCurrentWeekDiet(ctx context.Context, userID uuid.UUID) (*types.PlanWithGroceryList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PlanWithGroceryList), args.Error(1)
}

func (m *MockDietService) GetDietByID(ctx context.Context, dietID, userID uuid.UUID) (*types.Plan, error) {
	args := m.Called(ctx, dietID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Plan), args.Error(1)
}

func (m *MockDietService) GetGroceryListByDietID(ctx context.Context, dietID, userID uuid.UUID) (*types.GroceryList, error) {
	args := m.Called(ctx, dietID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GroceryList), args.Error(1)
}

func (m *MockDietService) GetUserDiets(ctx context.Context, userID uuid.UUID) ([]types.DietSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.DietSummary), args.Error(1)
}

// MockMealService is a mock implementation of service.IMealService
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) GetMealDetails(ctx context.Context, mealID, userID uuid.UUID) (*types.PlanMeal, error) {
	args := m.Called(ctx, mealID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PlanMeal), args.Error(1)
}

func (m *MockMealService) GetMealRecipe(ctx context.Context, mealID, userID uuid.UUID) (*types.RecipeDocument, error) {
	args := m.Called(ctx, mealID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDocument), args.Error(1)
}

// MockSettingsService is a mock implementation of service.ISettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetUserSettings(ctx context.Context, userID uuid.UUID) (*types.SettingsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SettingsResponse), args.Error(1)
}

func (m *MockSettingsService) UpdateUserSettings(ctx context.Context, userID uuid.UUID, req *types.UpdateSettingsRequest) (*types.SettingsResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SettingsResponse), args.Error(1)
}

// MockTokenValidator is a mock implementation of middleware.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
