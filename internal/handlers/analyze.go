package handlers

import (
	"io"
	"net/http"
	"strings"

	"nutrigo/internal/ai"
	applog "nutrigo/internal/log"
	"nutrigo/internal/nutrition"
	"nutrigo/internal/vision"
)

const maxImageBytes = 8 << 20

type analyzeResponse struct {
	vision.MealAnalysis
	Cached bool `json:"cached"`
}

// AnalyzeImage runs the image pipeline: fingerprint, cache check, and only
// on a miss the preprocessed generative call. The cache check always comes
// before any external analysis; it is the cost-control path.
func AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if analyzer == nil || analysisCache == nil {
		applog.Debug(r.Context(), "analyze request without vision analyzer")
		http.Error(w, "image analysis is not configured", http.StatusServiceUnavailable)
		return
	}

	imageBytes, err := readImage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := vision.Validate(imageBytes); err != nil {
		applog.Debug(r.Context(), "rejecting undecodable image", "error", err)
		http.Error(w, "request body is not a decodable image", http.StatusBadRequest)
		return
	}

	hash := vision.Fingerprint(imageBytes)
	if cached, ok := analysisCache.Get(hash); ok {
		applog.Info(r.Context(), "image analysis cache hit", "hash", hash)
		writeJSON(w, r, analyzeResponse{MealAnalysis: cached, Cached: true})
		return
	}

	processed := vision.Preprocess(r.Context(), imageBytes)
	applog.Debug(r.Context(), "image preprocessed",
		"hash", hash,
		"originalBytes", len(imageBytes),
		"processedBytes", len(processed),
	)

	raw, err := analyzer.AnalyzeMealImage(r.Context(), processed)
	if err != nil {
		applog.Error(r.Context(), "meal image analysis failed", "hash", hash, "error", err)
		http.Error(w, "image analysis failed", http.StatusBadGateway)
		return
	}

	analysis := annotateAnalysis(hash, raw)
	analysisCache.Set(hash, analysis)
	applog.Info(r.Context(), "image analysis stored",
		"hash", hash,
		"foods", len(analysis.Foods),
	)

	writeJSON(w, r, analyzeResponse{MealAnalysis: analysis, Cached: false})
}

func readImage(r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, maxImageBytes))
	}
	return io.ReadAll(io.LimitReader(r.Body, maxImageBytes))
}

// annotateAnalysis converts raw detections into accuracy-scored food
// records with deterministic ids derived from the image hash.
func annotateAnalysis(hash string, raw ai.MealImageResult) vision.MealAnalysis {
	analysis := vision.MealAnalysis{Suggestions: raw.Suggestions}
	for i, detected := range raw.Foods {
		food := nutrition.Food{
			ID:              nutrition.GeneratedID(hash, i),
			Name:            detected.Name,
			Category:        detected.Category,
			CaloriesPer100:  detected.Calories,
			ProteinPer100:   detected.Protein,
			CarbsPer100:     detected.Carbs,
			FatPer100:       detected.Fat,
			IsLiquid:        detected.IsLiquid,
			DefaultUnit:     defaultUnitFor(detected),
			DefaultQuantity: 1,
			Source:          nutrition.SourceGenerated,
		}
		food.CommonUnits = []string{food.DefaultUnit}
		food.AccuracyTier = nutrition.ScoreAccuracy(food).Tier
		analysis.Foods = append(analysis.Foods, vision.AnalyzedFood{
			Food:              food,
			Confidence:        detected.Confidence,
			EstimatedQuantity: detected.EstimatedQuantity,
		})
	}
	return analysis
}

func defaultUnitFor(detected ai.DetectedFood) string {
	if unit := strings.TrimSpace(detected.EstimatedQuantity); unit != "" {
		return unit
	}
	if detected.IsLiquid {
		return "glass (250ml)"
	}
	return "medium portion (150g)"
}
