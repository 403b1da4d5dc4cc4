package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SilvioBaratto/diet-generator/internal/mocks"
	"github.com/SilvioBaratto/diet-generator/internal/models"
	"github.com/SilvioBaratto/diet-generator/internal/testdb"
	"github.com/SilvioBaratto/diet-generator/internal/types"
)

func ptr[T any](v T) *T { return &v }

func seedUser(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedUserWithSettings(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	userID := seedUser(t, db, email)
	settings := models.UserSettings{
		ID:     uuid.New(),
		UserID: userID,
		Weight: ptr(72.5),
		Height: ptr(178.0),
		Goals:  ptr("lose weight"),
	}
	require.NoError(t, db.Create(&settings).Error)
	return userID
}

func weekDates(t *testing.T) (string, string) {
	t.Helper()
	start := time.Now().AddDate(0, 0, -1)
	return start.Format(dateLayout), start.AddDate(0, 0, 6).Format(dateLayout)
}

func generatedMeal(label, name string, qty float64, unit string, calories int) types.GeneratedMeal {
	return types.GeneratedMeal{
		Type: types.MealTypeInfo{
			Label:  label,
			Time:   "08:00",
			Recipe: "Preparazione di " + name,
		},
		Ingredients: []types.IngredientAmount{
			{Name: name, Quantity: qty, Unit: unit},
		},
		Calories: calories,
	}
}

func TestCreateDiet(t *testing.T) {
	db := testdb.New(t)
	userID := seedUserWithSettings(t, db, "alice@example.com")
	start, end := weekDates(t)

	plan := &types.GeneratedPlan{
		Name:      "Settimana 1",
		StartDate: start,
		EndDate:   end,
		Meals: []types.GeneratedMeal{
			generatedMeal("colazione", "avena", 80, "g", 320),
			generatedMeal("pranzo", "pollo", 150, "g", 450),
			generatedMeal("colazione", "avena", 80, "g", 320),
			generatedMeal("cena", "salmone", 120, "g", 400),
			generatedMeal("pranzo", "pollo", 150, "g", 450),
		},
	}
	grocery := &types.GeneratedGroceryList{
		Ingredients: []types.IngredientAmount{
			{Name: "avena", Quantity: 160, Unit: "g"},
			{Name: "pollo", Quantity: 300, Unit: "g"},
			{Name: "zafferano", Quantity: 1, Unit: "g"},
		},
	}

	generator := new(mocks.MockPlanGenerator)
	generator.On("GeneratePlan", mock.Anything, mock.Anything, 72.5, 178.0, "lose weight", "").
		Return(plan, nil)
	generator.On("GenerateGroceryList", mock.Anything, plan.Meals).
		Return(grocery, nil)

	svc := NewDietService(db, generator, nil)
	doc, err := svc.CreateDiet(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	generator.AssertExpectations(t)

	assert.Equal(t, "Settimana 1", doc.Diet.Name)
	assert.Equal(t, start, doc.Diet.StartDate)
	assert.Equal(t, end, doc.Diet.EndDate)
	require.Len(t, doc.Diet.Meals, 5)

	// Days are assigned per type group: each label's meals get 0, 1, ...
	daysByLabel := make(map[string][]int)
	for _, meal := range doc.Diet.Meals {
		assert.GreaterOrEqual(t, meal.Day, 0)
		assert.LessOrEqual(t, meal.Day, 6)
		daysByLabel[meal.Type.Label] = append(daysByLabel[meal.Type.Label], meal.Day)
	}
	assert.ElementsMatch(t, []int{0, 1}, daysByLabel["colazione"])
	assert.ElementsMatch(t, []int{0, 1}, daysByLabel["pranzo"])
	assert.ElementsMatch(t, []int{0}, daysByLabel["cena"])

	// The response grocery list is the generated one, unmatched items included.
	assert.Equal(t, grocery.Ingredients, doc.GroceryList.Ingredients)

	// Repeated ingredient names collapse onto one catalog row.
	var ingredientCount int64
	require.NoError(t, db.Model(&models.Ingredient{}).Where("name = ?", "avena").Count(&ingredientCount).Error)
	assert.Equal(t, int64(1), ingredientCount)

	var linkCount int64
	require.NoError(t, db.Model(&models.MealIngredient{}).Count(&linkCount).Error)
	assert.Equal(t, int64(5), linkCount)

	// The grocery item with no matching ingredient is dropped, not invented.
	var itemCount int64
	require.NoError(t, db.Model(&models.GroceryListItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(2), itemCount)
}

func TestCreateDietMoreThanSevenMealsOfOneType(t *testing.T) {
	db := testdb.New(t)
	userID := seedUserWithSettings(t, db, "bob@example.com")
	start, end := weekDates(t)

	meals := make([]types.GeneratedMeal, 0, 9)
	for i := 0; i < 9; i++ {
		meals = append(meals, generatedMeal("spuntino", "mandorle", 30, "g", 180))
	}
	plan := &types.GeneratedPlan{Name: "Spuntini", StartDate: start, EndDate: end, Meals: meals}

	generator := new(mocks.MockPlanGenerator)
	generator.On("GeneratePlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(plan, nil)
	generator.On("GenerateGroceryList", mock.Anything, mock.Anything).
		Return(&types.GeneratedGroceryList{}, nil)

	svc := NewDietService(db, generator, nil)
	doc, err := svc.CreateDiet(context.Background(), userID)
	require.NoError(t, err)

	// Indexes past the week wrap around instead of producing day 7.
	days := make([]int, 0, len(doc.Diet.Meals))
	for _, meal := range doc.Diet.Meals {
		days = append(days, meal.Day)
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 0, 1}, days)
}

func TestCreateDietSettingsErrors(t *testing.T) {
	t.Run("no settings row", func(t *testing.T) {
		db := testdb.New(t)
		userID := seedUser(t, db, "noprofile@example.com")

		svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)
		_, err := svc.CreateDiet(context.Background(), userID)
		assert.ErrorIs(t, err, ErrSettingsNotFound)
	})

	t.Run("missing measurements", func(t *testing.T) {
		db := testdb.New(t)
		userID := seedUser(t, db, "partial@example.com")
		settings := models.UserSettings{
			ID:     uuid.New(),
			UserID: userID,
			Weight: ptr(70.0),
		}
		require.NoError(t, db.Create(&settings).Error)

		svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)
		_, err := svc.CreateDiet(context.Background(), userID)
		assert.ErrorIs(t, err, ErrMissingMeasurements)
	})
}

func TestCreateDietGenerationFailure(t *testing.T) {
	db := testdb.New(t)
	userID := seedUserWithSettings(t, db, "carol@example.com")

	generator := new(mocks.MockPlanGenerator)
	generator.On("GeneratePlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	svc := NewDietService(db, generator, nil)
	_, err := svc.CreateDiet(context.Background(), userID)
	assert.ErrorIs(t, err, ErrGenerationFailed)

	var count int64
	require.NoError(t, db.Model(&models.WeeklyDiet{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateDietUnknownMealTypeRollsBack(t *testing.T) {
	db := testdb.New(t)
	userID := seedUserWithSettings(t, db, "dave@example.com")
	start, end := weekDates(t)

	plan := &types.GeneratedPlan{
		Name:      "Invalida",
		StartDate: start,
		EndDate:   end,
		Meals: []types.GeneratedMeal{
			generatedMeal("colazione", "avena", 80, "g", 320),
			generatedMeal("merenda", "biscotti", 50, "g", 250),
		},
	}

	generator := new(mocks.MockPlanGenerator)
	generator.On("GeneratePlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(plan, nil)
	generator.On("GenerateGroceryList", mock.Anything, mock.Anything).
		Return(&types.GeneratedGroceryList{}, nil)

	svc := NewDietService(db, generator, nil)
	_, err := svc.CreateDiet(context.Background(), userID)
	assert.ErrorIs(t, err, ErrUnknownMealType)

	// Nothing from the aborted transaction is visible.
	var diets, meals int64
	require.NoError(t, db.Model(&models.WeeklyDiet{}).Count(&diets).Error)
	require.NoError(t, db.Model(&models.Meal{}).Count(&meals).Error)
	assert.Zero(t, diets)
	assert.Zero(t, meals)
}

// insertDiet writes a diet with one lunch meal straight into the database,
// bypassing the generation workflow.
func insertDiet(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, start, end time.Time, createdAt time.Time) uuid.UUID {
	t.Helper()
	diet := models.WeeklyDiet{
		ID:        uuid.New(),
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Name:      name,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&diet).Error)

	ingredient := models.Ingredient{ID: uuid.New(), Name: "riso " + name, Unit: "g"}
	require.NoError(t, db.Create(&ingredient).Error)

	meal := models.Meal{
		ID:           uuid.New(),
		WeeklyDietID: diet.ID,
		MealType:     models.MealTypeLunch,
		Day:          0,
		Time:         "13:00",
		Recipe:       "Riso in bianco",
		Calories:     350,
	}
	require.NoError(t, db.Create(&meal).Error)
	link := models.MealIngredient{
		ID:           uuid.New(),
		MealID:       meal.ID,
		IngredientID: ingredient.ID,
		Quantity:     90,
	}
	require.NoError(t, db.Create(&link).Error)
	return diet.ID
}

func TestGetCurrentWeekDiet(t *testing.T) {
	today := time.Now().Truncate(24 * time.Hour)

	t.Run("no diet is a normal state", func(t *testing.T) {
		db := testdb.New(t)
		userID := seedUser(t, db, "empty@example.com")

		svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)
		doc, err := svc.GetCurrentWeekDiet(context.Background(), userID)
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("diet covering today is returned", func(t *testing.T) {
		db := testdb.New(t)
		userID := seedUser(t, db, "covered@example.com")
		insertDiet(t, db, userID, "corrente", today.AddDate(0, 0, -2), today.AddDate(0, 0, 4), today)

		svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)
		doc, err := svc.GetCurrentWeekDiet(context.Background(), userID)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "corrente", doc.Diet.Name)
		require.Len(t, doc.Diet.Meals, 1)
	})

	t.Run("diet ending today is still current", func(t *testing.T) {
		db := testdb.New(t)
		userID := seedUser(t, db, "lastday@example.com")
		insertDiet(t, db, userID, "ultima", today.AddDate(0, 0, -6), today, today.AddDate(0, 0, -6))

		svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)
		doc, err := svc.GetCurrentWeekDiet(context.Background(), userID)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "ultima", doc.Diet.Name)
	})

	t.Run("diet starting today is already current", func(t *testing.T) {
		db := testdb.New(t)
		userID := seedUser(t, db, "firstday@example.com")
		insertDiet(t, db, userID, "nuovissima", today, today.AddDate(0, 0, 6), today)

		svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)
		doc, err := svc.GetCurrentWeekDiet(context.Background(), userID)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "nuovissima", doc.Diet.Name)
	})

	t.Run("most recently created wins on overlap", func(t *testing.T) {
		db := testdb.New(t)
		userID := seedUser(t, db, "overlap@example.com")
		insertDiet(t, db, userID, "vecchia", today.AddDate(0, 0, -3), today.AddDate(0, 0, 3), today.Add(-48*time.Hour))
		insertDiet(t, db, userID, "nuova", today.AddDate(0, 0, -1), today.AddDate(0, 0, 5), today)

		svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)
		doc, err := svc.GetCurrentWeekDiet(context.Background(), userID)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "nuova", doc.Diet.Name)
	})

	t.Run("grocery list falls back to meal aggregation", func(t *testing.T) {
		db := testdb.New(t)
		userID := seedUser(t, db, "legacy@example.com")

		diet := models.WeeklyDiet{
			ID:        uuid.New(),
			UserID:    userID,
			StartDate: today.AddDate(0, 0, -1),
			EndDate:   today.AddDate(0, 0, 5),
			Name:      "senza lista",
		}
		require.NoError(t, db.Create(&diet).Error)

		rice := models.Ingredient{ID: uuid.New(), Name: "riso", Unit: "g"}
		beans := models.Ingredient{ID: uuid.New(), Name: "fagioli", Unit: "g"}
		require.NoError(t, db.Create(&rice).Error)
		require.NoError(t, db.Create(&beans).Error)

		for i, qty := range []float64{200, 300} {
			meal := models.Meal{
				ID:           uuid.New(),
				WeeklyDietID: diet.ID,
				MealType:     models.MealTypeLunch,
				Day:          i,
			}
			require.NoError(t, db.Create(&meal).Error)
			require.NoError(t, db.Create(&models.MealIngredient{
				ID: uuid.New(), MealID: meal.ID, IngredientID: rice.ID, Quantity: qty,
			}).Error)
		}
		extra := models.Meal{ID: uuid.New(), WeeklyDietID: diet.ID, MealType: models.MealTypeDinner, Day: 0}
		require.NoError(t, db.Create(&extra).Error)
		require.NoError(t, db.Create(&models.MealIngredient{
			ID: uuid.New(), MealID: extra.ID, IngredientID: beans.ID, Quantity: 150,
		}).Error)

		svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)
		doc, err := svc.GetCurrentWeekDiet(context.Background(), userID)
		require.NoError(t, err)
		require.NotNil(t, doc)

		// Same (name, unit) quantities are summed; output is sorted by name.
		assert.Equal(t, []types.IngredientAmount{
			{Name: "fagioli", Quantity: 150, Unit: "g"},
			{Name: "riso", Quantity: 500, Unit: "g"},
		}, doc.GroceryList.Ingredients)
	})
}

func TestGetDietByID(t *testing.T) {
	db := testdb.New(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	today := time.Now().Truncate(24 * time.Hour)
	dietID := insertDiet(t, db, owner, "mia", today, today.AddDate(0, 0, 6), today)

	svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)

	t.Run("owner reads it back", func(t *testing.T) {
		plan, err := svc.GetDietByID(context.Background(), dietID, owner)
		require.NoError(t, err)
		assert.Equal(t, "mia", plan.Name)
		require.Len(t, plan.Meals, 1)
		assert.Equal(t, "pranzo", plan.Meals[0].Type.Label)
		require.Len(t, plan.Meals[0].Ingredients, 1)
		assert.Equal(t, 90.0, plan.Meals[0].Ingredients[0].Quantity)
	})

	t.Run("another user's diet looks missing", func(t *testing.T) {
		_, err := svc.GetDietByID(context.Background(), dietID, other)
		assert.ErrorIs(t, err, ErrDietNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetDietByID(context.Background(), uuid.New(), owner)
		assert.ErrorIs(t, err, ErrDietNotFound)
	})
}

func TestGetGroceryListByDietID(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db, "shopper@example.com")
	today := time.Now().Truncate(24 * time.Hour)
	dietID := insertDiet(t, db, userID, "spesa", today, today.AddDate(0, 0, 6), today)

	svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)

	t.Run("no persisted list is not found", func(t *testing.T) {
		_, err := svc.GetGroceryListByDietID(context.Background(), dietID, userID)
		assert.ErrorIs(t, err, ErrGroceryListNotFound)
	})

	t.Run("persisted items are returned", func(t *testing.T) {
		ingredient := models.Ingredient{ID: uuid.New(), Name: "latte", Unit: "ml"}
		require.NoError(t, db.Create(&ingredient).Error)
		list := models.GroceryList{ID: uuid.New(), WeeklyDietID: dietID}
		require.NoError(t, db.Create(&list).Error)
		require.NoError(t, db.Create(&models.GroceryListItem{
			ID: uuid.New(), GroceryListID: list.ID, IngredientID: ingredient.ID, Quantity: 500,
		}).Error)

		got, err := svc.GetGroceryListByDietID(context.Background(), dietID, userID)
		require.NoError(t, err)
		require.Len(t, got.Ingredients, 1)
		assert.Equal(t, types.IngredientAmount{Name: "latte", Quantity: 500, Unit: "ml"}, got.Ingredients[0])
	})

	t.Run("unknown diet", func(t *testing.T) {
		_, err := svc.GetGroceryListByDietID(context.Background(), uuid.New(), userID)
		assert.ErrorIs(t, err, ErrDietNotFound)
	})
}

func TestGetUserDiets(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db, "history@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	today := time.Now().Truncate(24 * time.Hour)

	insertDiet(t, db, userID, "prima", today.AddDate(0, 0, -14), today.AddDate(0, 0, -8), today.Add(-72*time.Hour))
	insertDiet(t, db, userID, "seconda", today.AddDate(0, 0, -7), today.AddDate(0, 0, -1), today.Add(-24*time.Hour))
	insertDiet(t, db, stranger, "estranea", today, today.AddDate(0, 0, 6), today)

	svc := NewDietService(db, new(mocks.MockPlanGenerator), nil)
	diets, err := svc.GetUserDiets(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, diets, 2)
	assert.Equal(t, "seconda", diets[0].Name)
	assert.Equal(t, "prima", diets[1].Name)
}
