package nutrition

import "strings"

// AccuracyResult pairs the raw plausibility score with its tier.
type AccuracyResult struct {
	Tier  AccuracyTier
	Score float64
}

// calorieRange is the plausible per-100g/100ml calorie window for a
// category. Records outside their window lose the range component.
type calorieRange struct {
	min, max float64
}

var categoryCalorieRanges = map[string]calorieRange{
	CategoryNuts:       {500, 700},
	CategoryVegetables: {10, 80},
	CategoryBeverages:  {0, 150},
	CategoryFruits:     {25, 110},
	CategoryGrains:     {90, 400},
	CategoryProtein:    {90, 320},
	CategoryDairy:      {30, 420},
	CategoryLegumes:    {70, 360},
	CategorySweets:     {250, 560},
	CategorySnacks:     {350, 600},
}

var placeholderMarkers = []string{"ai generated", "example", "placeholder", "unknown food"}

// ScoreAccuracy rates a record's plausibility on a 0-1 scale and maps it to
// a confidence tier: >=0.8 high, >=0.5 medium, else low.
func ScoreAccuracy(food Food) AccuracyResult {
	score := 0.0

	rng, recognized := categoryCalorieRanges[food.Category]
	if !recognized {
		rng = calorieRange{0, 900}
	}
	if food.CaloriesPer100 >= rng.min && food.CaloriesPer100 <= rng.max {
		score += 0.3
	}

	macroSum := food.ProteinPer100 + food.CarbsPer100 + food.FatPer100
	if macroSum > 0 && macroSum <= 100 {
		score += 0.2
	}

	if food.CaloriesPer100 >= 0 && food.ProteinPer100 >= 0 && food.CarbsPer100 >= 0 && food.FatPer100 >= 0 {
		score += 0.2
	}

	if !hasPlaceholderName(food.Name) {
		score += 0.2
	}

	if recognized {
		score += 0.1
	}

	return AccuracyResult{Tier: tierForScore(score), Score: score}
}

func tierForScore(score float64) AccuracyTier {
	switch {
	case score >= 0.8:
		return TierHigh
	case score >= 0.5:
		return TierMedium
	default:
		return TierLow
	}
}

func hasPlaceholderName(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// PickBestDuplicate chooses which of several duplicate records to retain
// during a maintenance sweep: the highest accuracy score wins and the rest
// are dropped.
func PickBestDuplicate(records []Food) (Food, bool) {
	if len(records) == 0 {
		return Food{}, false
	}
	best := records[0]
	bestScore := ScoreAccuracy(best).Score
	for _, candidate := range records[1:] {
		if score := ScoreAccuracy(candidate).Score; score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best, true
}
