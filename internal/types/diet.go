package types

import (
	"time"

	"github.com/SilvioBaratto/diet-generator/internal/models"
	"github.com/google/uuid"
)

// The generation gateway labels meals in Italian; storage uses the MealType
// enum. The two tables below are the single source of truth for translation
// in both directions. An inbound label outside this table is a contract
// violation, never a default.
var mealTypeByLabel = map[string]models.MealType{
	"colazione": models.MealTypeBreakfast,
	"pranzo":    models.MealTypeLunch,
	"cena":      models.MealTypeDinner,
	"spuntino":  models.MealTypeSnack,
}

var labelByMealType = map[models.MealType]string{
	models.MealTypeBreakfast: "colazione",
	models.MealTypeLunch:     "pranzo",
	models.MealTypeDinner:    "cena",
	models.MealTypeSnack:     "spuntino",
}

// MealTypeFromLabel translates a gateway label into the stored enum.
func MealTypeFromLabel(label string) (models.MealType, bool) {
	mt, ok := mealTypeByLabel[label]
	return mt, ok
}

// LabelForMealType translates a stored enum back into the gateway vocabulary.
func LabelForMealType(mt models.MealType) (string, bool) {
	label, ok := labelByMealType[mt]
	return label, ok
}

// MealTypeInfo mirrors the gateway's tipoPasto block.
type MealTypeInfo struct {
	Label  string `json:"tipo"`
	Time   string `json:"orario"`
	Recipe string `json:"ricetta"`
}

// IngredientAmount is a (name, quantity, unit) triple as it crosses the
// gateway and API boundaries.
type IngredientAmount struct {
	Name     string  `json:"nome"`
	Quantity float64 `json:"quantita"`
	Unit     string  `json:"unita"`
}

// PlanMeal is one meal in an API plan response.
type PlanMeal struct {
	ID          uuid.UUID          `json:"id"`
	Type        MealTypeInfo       `json:"tipoPasto"`
	Ingredients []IngredientAmount `json:"ingredienti"`
	Calories    int                `json:"calorie"`
	Day         int                `json:"day"`
}

// Plan is the reconstructed weekly diet document.
type Plan struct {
	Name      string     `json:"nome"`
	StartDate string     `json:"dataInizio"`
	EndDate   string     `json:"dataFine"`
	Meals     []PlanMeal `json:"pasti"`
}

// GroceryList is the shopping summary attached to a plan.
type GroceryList struct {
	Ingredients []IngredientAmount `json:"ingredienti"`
}

// PlanWithGroceryList is the create-diet and current-week response shape.
type PlanWithGroceryList struct {
	Diet        Plan        `json:"dieta"`
	GroceryList GroceryList `json:"listaSpesa"`
}

// DietSummary is one entry of the diet listing.
type DietSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GeneratedMeal is a meal as produced by the plan-generation gateway. It has
// no day assignment worth keeping: distribution over the week is decided at
// persistence time.
type GeneratedMeal struct {
	Type        MealTypeInfo       `json:"tipoPasto"`
	Ingredients []IngredientAmount `json:"ingredienti"`
	Calories    int                `json:"calorie"`
}

// GeneratedPlan is the raw weekly plan returned by the gateway. Dates are
// ISO-8601 strings on the wire.
type GeneratedPlan struct {
	Name      string          `json:"nome"`
	StartDate string          `json:"dataInizio"`
	EndDate   string          `json:"dataFine"`
	Meals     []GeneratedMeal `json:"pasti"`
}

// GeneratedGroceryList is the raw grocery list returned by the gateway.
type GeneratedGroceryList struct {
	Ingredients []IngredientAmount `json:"ingredienti"`
}

// RecipeSection is one titled block of a rendered recipe document.
type RecipeSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// RecipeDocument is the rendered recipe returned by the gateway, passed
// through to clients unmodified.
type RecipeDocument struct {
	Title    string          `json:"title"`
	Sections []RecipeSection `json:"sections"`
}

// RecipeResponse wraps a recipe document for the meal recipe endpoint.
type RecipeResponse struct {
	Recipe RecipeDocument `json:"recipe"`
}
