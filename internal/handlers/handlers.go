package handlers

import (
	"context"

	"nutrigo/internal/ai"
	"nutrigo/internal/nutrition"
	"nutrigo/internal/vision"
)

// MealAnalyzer is the vision collaborator behind the analyze endpoint.
type MealAnalyzer interface {
	AnalyzeMealImage(ctx context.Context, image []byte) (ai.MealImageResult, error)
}

var (
	resolver      *nutrition.Resolver
	analyzer      MealAnalyzer
	analysisCache *vision.AnalysisCache
)

// Configure installs the handler dependencies. A nil analyzer disables the
// image path; a nil resolver disables search.
func Configure(r *nutrition.Resolver, a MealAnalyzer, cache *vision.AnalysisCache) {
	resolver = r
	analyzer = a
	analysisCache = cache
}
