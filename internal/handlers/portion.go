package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "nutrigo/internal/log"
	"nutrigo/internal/nutrition"
)

type portionRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`

	// Optional baseline override for callers that already hold a record.
	CaloriesPer100 *float64 `json:"calories_per_100"`
	ProteinPer100  float64  `json:"protein_per_100"`
	CarbsPer100    float64  `json:"carbs_per_100"`
	FatPer100      float64  `json:"fat_per_100"`
	IsLiquid       bool     `json:"is_liquid"`
}

type portionResponse struct {
	Food    nutrition.Food    `json:"food"`
	Portion nutrition.Portion `json:"portion"`
}

// GetPortion gives direct access to the portion normalizer. The food is
// taken from the request baseline when provided, otherwise resolved by name.
func GetPortion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req portionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "food name is required", http.StatusBadRequest)
		return
	}

	food, ok := foodForPortion(r, req)
	if !ok {
		http.Error(w, "food not found", http.StatusNotFound)
		return
	}

	unit := req.Unit
	if strings.TrimSpace(unit) == "" {
		unit = food.DefaultUnit
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	portion := nutrition.NormalizePortion(food, unit, quantity)
	applog.Debug(r.Context(), "portion normalized",
		"food", food.Name,
		"unit", unit,
		"quantity", quantity,
		"multiplier", portion.Multiplier,
	)

	writeJSON(w, r, portionResponse{Food: food, Portion: portion})
}

func foodForPortion(r *http.Request, req portionRequest) (nutrition.Food, bool) {
	if req.CaloriesPer100 != nil {
		return nutrition.Food{
			Name:           req.Name,
			Category:       req.Category,
			CaloriesPer100: *req.CaloriesPer100,
			ProteinPer100:  req.ProteinPer100,
			CarbsPer100:    req.CarbsPer100,
			FatPer100:      req.FatPer100,
			IsLiquid:       req.IsLiquid,
		}, true
	}

	q := nutrition.ParseQuery(req.Name)
	if matches := nutrition.CuratedLookup(q); len(matches) > 0 {
		return matches[0], true
	}

	if resolver != nil {
		if results := resolver.Resolve(r.Context(), req.Name, 1); len(results) > 0 {
			return results[0].Food, true
		}
	}

	return nutrition.Food{}, false
}
