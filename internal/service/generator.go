package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SilvioBaratto/diet-generator/config"
	"github.com/SilvioBaratto/diet-generator/internal/types"
)

// GeneratorService calls the model-backed generation API. One chat completion
// per operation: weekly plan, grocery list, rendered recipe.
type GeneratorService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// Ensure GeneratorService implements PlanGenerator
var _ PlanGenerator = (*GeneratorService)(nil)

// NewGeneratorService creates a new GeneratorService instance
func NewGeneratorService(cfg *config.Config) (*GeneratorService, error) {
	if cfg.GeneratorAPIKey == "" {
		return nil, fmt.Errorf("GENERATOR_API_KEY or GENERATOR_API_KEY_FILE must be set")
	}
	return &GeneratorService{
		apiKey: cfg.GeneratorAPIKey,
		apiURL: cfg.GeneratorAPIURL,
		client: http.DefaultClient,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the generation API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

const planSystemPrompt = `You are a professional nutritionist. Produce a weekly diet plan as JSON with the following structure:
{
    "nome": "plan name",
    "dataInizio": "YYYY-MM-DD",
    "dataFine": "YYYY-MM-DD",
    "pasti": [
        {
            "tipoPasto": {"tipo": "colazione", "orario": "08:00", "ricetta": "short recipe text"},
            "ingredienti": [{"nome": "ingredient name", "quantita": 100, "unita": "g"}],
            "calorie": 350
        }
    ]
}

The "tipo" field MUST be one of: colazione, pranzo, cena, spuntino.
Quantities must be numbers greater than zero and calories non-negative integers.
The plan must span exactly seven days starting from the given date.`

const grocerySystemPrompt = `You are a professional nutritionist. Given the meals of a weekly diet plan, produce a deduplicated shopping list as JSON:
{"ingredienti": [{"nome": "ingredient name", "quantita": 500, "unita": "g"}]}

Sum the quantities of identical ingredients across meals. Use the same ingredient names and units that appear in the meals.`

const recipeSystemPrompt = `You are a professional chef. Given a meal with its ingredients, produce a complete step-by-step recipe as JSON:
{"title": "recipe title", "sections": [{"heading": "section heading", "body": "section text"}]}

Include preparation, cooking steps and serving suggestions as separate sections.`

// GeneratePlan asks the API for a weekly plan based on the user's profile.
func (s *GeneratorService) GeneratePlan(ctx context.Context, startDate string, weight, height float64, goal, notes string) (*types.GeneratedPlan, error) {
	prompt := fmt.Sprintf(
		"Generate a weekly diet plan starting on %s for a person weighing %.1f kg and %.1f cm tall.",
		startDate, weight, height,
	)
	if goal != "" {
		prompt += " Goal: " + goal + "."
	}
	if notes != "" {
		prompt += " Additional information: " + notes + "."
	}

	var plan types.GeneratedPlan
	if err := s.complete(ctx, planSystemPrompt, prompt, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GenerateGroceryList asks the API for a shopping list covering the meals.
func (s *GeneratorService) GenerateGroceryList(ctx context.Context, meals []types.GeneratedMeal) (*types.GeneratedGroceryList, error) {
	mealsJSON, err := json.Marshal(meals)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meals: %w", err)
	}

	var list types.GeneratedGroceryList
	prompt := "Produce the shopping list for these meals:\n" + string(mealsJSON)
	if err := s.complete(ctx, grocerySystemPrompt, prompt, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GenerateRecipe asks the API for a rendered recipe document for one meal.
func (s *GeneratorService) GenerateRecipe(ctx context.Context, meal types.GeneratedMeal) (*types.RecipeDocument, error) {
	mealJSON, err := json.Marshal(meal)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meal: %w", err)
	}

	var doc types.RecipeDocument
	prompt := "Write the full recipe for this meal:\n" + string(mealJSON)
	if err := s.complete(ctx, recipeSystemPrompt, prompt, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// complete runs one chat completion and unmarshals the message content into out.
func (s *GeneratorService) complete(ctx context.Context, system, prompt string, out any) error {
	reqBody := Request{
		Model: "deepseek-chat",
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return fmt.Errorf("no response from API")
	}

	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("failed to parse generated document: %w", err)
	}
	return nil
}
