package models

import (
	"time"

	"github.com/google/uuid"
)

// MealType is the stored meal category. The generation gateway speaks a
// different, Italian-language vocabulary; translation lives in internal/types.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// WeeklyDiet is one generated plan for a date span. It owns its meals and its
// grocery list; both are removed with it.
type WeeklyDiet struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_weekly_diets_dates,priority:1" json:"user_id"`
	StartDate time.Time `gorm:"type:date;not null;check:start_date < end_date;index:idx_weekly_diets_dates,priority:2" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_weekly_diets_dates,priority:3" json:"end_date"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Meals       []Meal       `gorm:"foreignKey:WeeklyDietID;constraint:OnDelete:CASCADE" json:"meals,omitempty"`
	GroceryList *GroceryList `gorm:"foreignKey:WeeklyDietID;constraint:OnDelete:CASCADE" json:"grocery_list,omitempty"`
}

// Meal is one meal occurrence within a plan. Day is 0-based, Monday = 0.
type Meal struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	WeeklyDietID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"weekly_diet_id"`
	MealType     MealType  `gorm:"type:varchar(16);not null" json:"meal_type"`
	Day          int       `gorm:"not null;check:day >= 0 AND day <= 6" json:"day"`
	Time         string    `json:"time"`
	Recipe       string    `gorm:"type:text" json:"recipe"`
	Calories     int       `gorm:"not null;default:0;check:calories >= 0" json:"calories"`

	WeeklyDiet  *WeeklyDiet      `gorm:"foreignKey:WeeklyDietID" json:"-"`
	Ingredients []MealIngredient `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
}

// Ingredient is a shared catalog entry, deduplicated by name for the life of
// the system. Meals and grocery items reference it but never own it.
type Ingredient struct {
	ID   uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null;check:name <> ''" json:"name"`
	Unit string    `gorm:"not null;check:unit <> ''" json:"unit"`
}

type MealIngredient struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	MealID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_id"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"ingredient_id"`
	Quantity     float64   `gorm:"not null;check:quantity > 0" json:"quantity"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// GroceryList is the shopping list attached 1:1 to a weekly diet.
type GroceryList struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	WeeklyDietID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"weekly_diet_id"`

	Items []GroceryListItem `gorm:"foreignKey:GroceryListID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type GroceryListItem struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	GroceryListID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"grocery_list_id"`
	IngredientID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"ingredient_id"`
	Quantity      float64   `gorm:"not null;check:quantity > 0" json:"quantity"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}
