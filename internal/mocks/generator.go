package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SilvioBaratto/diet-generator/internal/types"
)

// MockPlanGenerator is a mock implementation of the generation gateway
type MockPlanGenerator struct {
	mock.Mock
}

func (m *MockPlanGenerator) GeneratePlan(ctx context.Context, startDate string, weight, height float64, goal, notes string) (*types.GeneratedPlan, error) {
	args := m.Called(ctx, startDate, weight, height, goal, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeneratedPlan), args.Error(1)
}

func (m *MockPlanGenerator) GenerateGroceryList(ctx context.Context, meals []types.GeneratedMeal) (*types.GeneratedGroceryList, error) {
	args := m.Called(ctx, meals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeneratedGroceryList), args.Error(1)
}

func (m *MockPlanGenerator) GenerateRecipe(ctx context.Context, meal types.GeneratedMeal) (*types.RecipeDocument, error) {
	args := m.Called(ctx, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDocument), args.Error(1)
}
