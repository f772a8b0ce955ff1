package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nutrigo/internal/nutrition"
)

// GenerateFoodFacts asks the model for per-100g/100ml nutrition facts
// matching a free-text food query. The response must be a JSON array of the
// documented shape; items failing validation are discarded so a single bad
// entry cannot poison the batch. Implements nutrition.Generator.
func (c *Client) GenerateFoodFacts(ctx context.Context, query string) ([]nutrition.GeneratedFood, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("ai: food query must not be empty")
	}

	payload := map[string]any{
		"model":       c.model,
		"temperature": c.temperature,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are a nutrition database assistant. Provide compact, fact-checked macro-nutrient data in JSON only.",
			},
			{
				"role":    "user",
				"content": buildFoodPrompt(query),
			},
		},
	}

	content, err := c.performChatCompletion(ctx, payload)
	if err != nil {
		return nil, err
	}

	var parsed []foodFactsResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("ai: parse food facts payload: %w", err)
	}

	facts := make([]nutrition.GeneratedFood, 0, len(parsed))
	for _, item := range parsed {
		fact, ok := validateFoodFacts(item)
		if !ok {
			continue
		}
		facts = append(facts, fact)
	}
	if len(facts) == 0 {
		return nil, errors.New("ai: no valid food facts in response")
	}
	return facts, nil
}

func buildFoodPrompt(query string) string {
	return fmt.Sprintf(`Return a JSON array of 1 to 3 foods matching the query "%s". Each element:
{
  "name": string (clean display name, no placeholder text),
  "calories": number (kcal per 100g for solids, per 100ml for liquids),
  "protein": number (grams per 100g/100ml),
  "carbs": number (grams per 100g/100ml),
  "fat": number (grams per 100g/100ml),
  "category": string from {Grains, Protein, Dairy, Fruits, Vegetables, Nuts, Beverages, Legumes, Sweets, Snacks},
  "is_liquid": boolean,
  "default_unit": string, a typical serving such as "medium portion (150g)" or "glass (250ml)"
}
Strict rules: respond with the raw JSON array only, no Markdown, no comments. All numbers are per 100g or 100ml, never per serving.`, query)
}

type foodFactsResponse struct {
	Name        string   `json:"name"`
	Calories    *float64 `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fat         *float64 `json:"fat"`
	Category    string   `json:"category"`
	IsLiquid    bool     `json:"is_liquid"`
	DefaultUnit string   `json:"default_unit"`
}

// validateFoodFacts enforces field presence and sane numeric bounds before a
// generated item is accepted.
func validateFoodFacts(item foodFactsResponse) (nutrition.GeneratedFood, bool) {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return nutrition.GeneratedFood{}, false
	}
	if item.Calories == nil || item.Protein == nil || item.Carbs == nil || item.Fat == nil {
		return nutrition.GeneratedFood{}, false
	}
	if *item.Calories < 0 || *item.Calories > 900 {
		return nutrition.GeneratedFood{}, false
	}
	if *item.Protein < 0 || *item.Carbs < 0 || *item.Fat < 0 {
		return nutrition.GeneratedFood{}, false
	}

	return nutrition.GeneratedFood{
		Name:        name,
		Calories:    *item.Calories,
		Protein:     *item.Protein,
		Carbs:       *item.Carbs,
		Fat:         *item.Fat,
		Category:    strings.TrimSpace(item.Category),
		IsLiquid:    item.IsLiquid,
		DefaultUnit: strings.TrimSpace(item.DefaultUnit),
	}, true
}
