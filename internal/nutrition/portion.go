package nutrition

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Portion is the result of normalizing a serving description against a
// food's per-100g/100ml baseline.
type Portion struct {
	Unit       string  `json:"unit"`
	Quantity   float64 `json:"quantity"`
	Multiplier float64 `json:"multiplier"`
	Calories   int     `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
}

// portionRule resolves a unit description to a per-unit multiplier. Rules
// are evaluated strictly in order and the first match wins; the ordering is
// part of the contract because the patterns overlap.
type portionRule struct {
	name    string
	resolve func(food Food, unit string) (float64, bool)
}

var embeddedMagnitude = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(ml|g)\b`)

// containerPortions map a container keyword plus an agreeing size substring
// to a fixed per-unit multiplier. A "bottle" without a recognized size falls
// through to the later rules.
var containerPortions = []struct {
	keyword    string
	size       string
	multiplier float64
}{
	{"can", "500ml", 5},
	{"can", "330ml", 3.3},
	{"can", "250ml", 2.5},
	{"bottle", "650ml", 6.5},
	{"bottle", "500ml", 5},
	{"bottle", "330ml", 3.3},
	{"pint", "568ml", 5.68},
	{"glass", "250ml", 2.5},
	{"glass", "200ml", 2},
	{"cup", "240ml", 2.4},
}

// gramPortions are embedded gram markers ordered most-specific first so that
// "150g" is never claimed by the "50g" rule.
var gramPortions = []struct {
	marker     string
	multiplier float64
}{
	{"250g", 2.5},
	{"200g", 2},
	{"150g", 1.5},
	{"125g", 1.25},
	{"100g", 1},
	{"75g", 0.75},
	{"50g", 0.5},
	{"30g", 0.3},
	{"25g", 0.25},
}

var portionRules = []portionRule{
	{
		name: "water family",
		resolve: func(food Food, unit string) (float64, bool) {
			// Matched before anything else; quantity never applies.
			return 0, isWaterFamily(food.Name)
		},
	},
	{
		name: "embedded magnitude",
		resolve: func(food Food, unit string) (float64, bool) {
			m := embeddedMagnitude.FindStringSubmatch(unit)
			if m == nil {
				return 0, false
			}
			n, err := strconv.ParseFloat(m[1], 64)
			if err != nil || n <= 0 {
				return 0, false
			}
			return n / 100, true
		},
	},
	{
		name: "named container",
		resolve: func(food Food, unit string) (float64, bool) {
			for _, c := range containerPortions {
				if strings.Contains(unit, c.keyword) && strings.Contains(unit, c.size) {
					return c.multiplier, true
				}
			}
			return 0, false
		},
	},
	{
		name: "gram portion",
		resolve: func(food Food, unit string) (float64, bool) {
			for _, g := range gramPortions {
				if strings.Contains(unit, g.marker) {
					return g.multiplier, true
				}
			}
			return 0, false
		},
	},
	{
		name: "qualitative",
		resolve: qualitativeMultiplier,
	},
}

// NormalizePortion converts a (food, unit, quantity) triple into the exact
// figures for that serving. Calories are rounded to the nearest integer,
// macro grams to one decimal, and the multiplier to two decimals. Unknown
// units fall back to the 100g/100ml baseline rather than failing.
func NormalizePortion(food Food, unit string, quantity float64) Portion {
	normalizedUnit := strings.ToLower(strings.TrimSpace(unit))
	if quantity < 0 {
		quantity = 0
	}

	multiplier := quantity
	for _, rule := range portionRules {
		perUnit, ok := rule.resolve(food, normalizedUnit)
		if !ok {
			continue
		}
		if rule.name == "water family" {
			multiplier = 0
		} else {
			multiplier = quantity * perUnit
		}
		break
	}

	return Portion{
		Unit:       unit,
		Quantity:   quantity,
		Multiplier: round2(multiplier),
		Calories:   int(math.Round(food.CaloriesPer100 * multiplier)),
		Protein:    round1(food.ProteinPer100 * multiplier),
		Carbs:      round1(food.CarbsPer100 * multiplier),
		Fat:        round1(food.FatPer100 * multiplier),
	}
}

// qualitativeMultiplier maps generic serving words to heuristic per-unit
// multipliers conditioned by the food's category or name. Unmatched units
// report a 1.0 multiplier, equivalent to the baseline.
func qualitativeMultiplier(food Food, unit string) (float64, bool) {
	name := strings.ToLower(food.Name)

	switch {
	case strings.Contains(unit, "piece"):
		return pieceMultiplier(food, name), true
	case strings.Contains(unit, "slice"):
		return sliceMultiplier(food, name), true
	case strings.Contains(unit, "small"):
		return 0.75, true
	case strings.Contains(unit, "medium"):
		return 1.0, true
	case strings.Contains(unit, "large"):
		return 1.5, true
	case strings.Contains(unit, "bowl"):
		return 2.0, true
	case strings.Contains(unit, "cup"):
		return 2.4, true
	case strings.Contains(unit, "glass"):
		return 2.5, true
	case strings.Contains(unit, "tablespoon") || strings.Contains(unit, "tbsp"):
		return 0.15, true
	case strings.Contains(unit, "teaspoon") || strings.Contains(unit, "tsp"):
		return 0.05, true
	}
	return 1.0, true
}

func pieceMultiplier(food Food, name string) float64 {
	switch {
	case containsAny(name, "bread", "toast", "roti", "chapati", "naan"):
		return 0.5
	case food.Category == CategoryFruits || containsAny(name, "apple", "banana", "orange", "mango", "pear"):
		return 1.2
	case containsAny(name, "chicken"):
		return 0.75
	case food.Category == CategoryProtein || containsAny(name, "beef", "pork", "lamb", "fish", "mutton"):
		return 1.0
	case containsAny(name, "egg"):
		return 0.6
	}
	return 1.0
}

func sliceMultiplier(food Food, name string) float64 {
	switch {
	case containsAny(name, "pizza"):
		return 1.25
	case containsAny(name, "bread", "toast"):
		return 0.4
	case food.Category == CategoryDairy || containsAny(name, "cheese"):
		return 0.3
	}
	return 0.5
}

func isWaterFamily(name string) bool {
	return strings.Contains(strings.ToLower(name), "water")
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
