package database

import (
	"gorm.io/gorm"

	"github.com/SilvioBaratto/diet-generator/internal/models"
)

// Migrate runs GORM auto-migration for the full schema. Order matters:
// referenced tables first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.WeeklyDiet{},
		&models.Meal{},
		&models.Ingredient{},
		&models.MealIngredient{},
		&models.GroceryList{},
		&models.GroceryListItem{},
	)
}
