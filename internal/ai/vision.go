package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MealImageResult is the validated outcome of analyzing one meal photo.
type MealImageResult struct {
	Foods       []DetectedFood
	Suggestions []string
}

// DetectedFood is a single food the model identified in the image, with a
// per-100g/100ml baseline and its estimated serving.
type DetectedFood struct {
	Name              string
	Calories          float64
	Protein           float64
	Carbs             float64
	Fat               float64
	Category          string
	IsLiquid          bool
	Confidence        float64
	EstimatedQuantity string
}

const visionSystemPrompt = `You are a nutritionist analyzing meal photographs.
Identify every distinct food or drink visible and estimate its macro-nutrients.
Respond with strictly valid JSON using this schema:
{
  "foods": [
    {
      "name": string,
      "calories": number (kcal per 100g or 100ml),
      "protein": number (g per 100g/100ml),
      "carbs": number (g per 100g/100ml),
      "fat": number (g per 100g/100ml),
      "category": string,
      "is_liquid": boolean,
      "confidence": number (0-100),
      "estimated_quantity": string (e.g. "1 medium portion (150g)")
    }
  ],
  "suggestions": [string]
}
Never include explanations, markdown, or commentary outside of the JSON payload.`

// AnalyzeMealImage sends a photo to the vision model and returns the clamped,
// validated multi-food analysis.
func (c *Client) AnalyzeMealImage(ctx context.Context, imageBytes []byte) (MealImageResult, error) {
	if len(imageBytes) == 0 {
		return MealImageResult{}, errors.New("ai: image payload must not be empty")
	}

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes)

	payload := map[string]any{
		"model":       c.visionModel,
		"temperature": c.temperature,
		"messages": []map[string]any{
			{
				"role":    "system",
				"content": visionSystemPrompt,
			},
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": "Analyze this meal and return the JSON described."},
					{"type": "image_url", "image_url": map[string]string{"url": dataURI}},
				},
			},
		},
	}

	content, err := c.performChatCompletion(ctx, payload)
	if err != nil {
		return MealImageResult{}, err
	}

	var parsed mealImageResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return MealImageResult{}, fmt.Errorf("ai: parse vision payload: %w", err)
	}
	if len(parsed.Foods) == 0 {
		return MealImageResult{}, errors.New("ai: vision response contained no foods")
	}

	result := MealImageResult{Suggestions: cleanSuggestions(parsed.Suggestions)}
	for _, item := range parsed.Foods {
		food, ok := validateDetectedFood(item)
		if !ok {
			continue
		}
		result.Foods = append(result.Foods, food)
	}
	if len(result.Foods) == 0 {
		return MealImageResult{}, errors.New("ai: no valid foods in vision response")
	}
	return result, nil
}

type detectedFoodResponse struct {
	Name              string   `json:"name"`
	Calories          *float64 `json:"calories"`
	Protein           float64  `json:"protein"`
	Carbs             float64  `json:"carbs"`
	Fat               float64  `json:"fat"`
	Category          string   `json:"category"`
	IsLiquid          bool     `json:"is_liquid"`
	Confidence        float64  `json:"confidence"`
	EstimatedQuantity string   `json:"estimated_quantity"`
}

type mealImageResponse struct {
	Foods       []detectedFoodResponse `json:"foods"`
	Suggestions []string               `json:"suggestions"`
}

// validateDetectedFood clamps numeric fields to sane bounds: confidence to
// 0-100 and nutrients to non-negative values.
func validateDetectedFood(item detectedFoodResponse) (DetectedFood, bool) {
	name := strings.TrimSpace(item.Name)
	if name == "" || item.Calories == nil {
		return DetectedFood{}, false
	}

	return DetectedFood{
		Name:              name,
		Calories:          clamp(*item.Calories, 0, 900),
		Protein:           clamp(item.Protein, 0, 100),
		Carbs:             clamp(item.Carbs, 0, 100),
		Fat:               clamp(item.Fat, 0, 100),
		Category:          strings.TrimSpace(item.Category),
		IsLiquid:          item.IsLiquid,
		Confidence:        clamp(item.Confidence, 0, 100),
		EstimatedQuantity: strings.TrimSpace(item.EstimatedQuantity),
	}, true
}

func cleanSuggestions(suggestions []string) []string {
	cleaned := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
