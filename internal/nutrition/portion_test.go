package nutrition

import (
	"math"
	"testing"
)

func TestNormalizePortionEmbeddedMagnitude(t *testing.T) {
	t.Parallel()

	food := Food{Name: "White Rice (Cooked)", CaloriesPer100: 130, ProteinPer100: 2.7, CarbsPer100: 28.2, FatPer100: 0.3}

	tests := []struct {
		name     string
		unit     string
		quantity float64
		want     float64
	}{
		{"grams", "medium portion (150g)", 1, 1.5},
		{"millilitres", "bottle (500ml)", 1, 5},
		{"quantity scales", "small portion (100g)", 2, 2},
		{"fractional magnitude", "scoop (62.5g)", 1, 0.63},
		{"spaced magnitude", "250 ml cup", 1, 2.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizePortion(food, tt.unit, tt.quantity)
			if got.Multiplier != tt.want {
				t.Fatalf("multiplier = %v, want %v", got.Multiplier, tt.want)
			}
		})
	}
}

func TestNormalizePortionWaterFamilyAlwaysZero(t *testing.T) {
	t.Parallel()

	foods := []Food{
		{Name: "Water", CaloriesPer100: 0, IsLiquid: true},
		{Name: "Sparkling Water", IsLiquid: true},
		{Name: "Coconut WATER", CaloriesPer100: 19, IsLiquid: true},
	}
	units := []string{"glass (250ml)", "bottle (650ml)", "piece", "cup", ""}
	quantities := []float64{0, 1, 3, 1000}

	for _, food := range foods {
		for _, unit := range units {
			for _, quantity := range quantities {
				got := NormalizePortion(food, unit, quantity)
				if got.Multiplier != 0 || got.Calories != 0 || got.Protein != 0 || got.Carbs != 0 || got.Fat != 0 {
					t.Fatalf("NormalizePortion(%q, %q, %v) = %+v, want all zeros", food.Name, unit, quantity, got)
				}
			}
		}
	}
}

func TestNormalizePortionBeerCan(t *testing.T) {
	t.Parallel()

	beer := Food{Name: "Beer", CaloriesPer100: 43, ProteinPer100: 0.5, CarbsPer100: 3.6, FatPer100: 0, IsLiquid: true}
	got := NormalizePortion(beer, "can (500ml)", 1)

	if got.Multiplier != 5 {
		t.Fatalf("multiplier = %v, want 5", got.Multiplier)
	}
	if got.Calories != 215 {
		t.Fatalf("calories = %d, want 215", got.Calories)
	}
	if got.Protein != 2.5 {
		t.Fatalf("protein = %v, want 2.5", got.Protein)
	}
	if got.Carbs != 18.0 {
		t.Fatalf("carbs = %v, want 18.0", got.Carbs)
	}
	if got.Fat != 0 {
		t.Fatalf("fat = %v, want 0", got.Fat)
	}
}

func TestNormalizePortionQualitative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		food     Food
		unit     string
		quantity float64
		want     float64
	}{
		{"fruit piece", Food{Name: "Apple", Category: CategoryFruits}, "piece", 2, 2.4},
		{"bread piece", Food{Name: "Whole Wheat Bread", Category: CategoryGrains}, "piece", 1, 0.5},
		{"chicken piece", Food{Name: "Chicken Breast (Grilled)", Category: CategoryProtein}, "piece", 1, 0.75},
		{"other meat piece", Food{Name: "Lamb Chop", Category: CategoryProtein}, "piece", 1, 1},
		{"pizza slice", Food{Name: "Margherita Pizza"}, "slice", 2, 2.5},
		{"bread slice", Food{Name: "Sourdough Bread"}, "slice", 1, 0.4},
		{"small portion", Food{Name: "Mixed Salad"}, "small", 1, 0.75},
		{"large portion", Food{Name: "Mixed Salad"}, "large", 1, 1.5},
		{"bare cup", Food{Name: "Oats (Cooked)"}, "cup", 1, 2.4},
		{"tablespoon", Food{Name: "Peanut Butter"}, "tablespoon", 1, 0.15},
		{"unknown unit defaults to baseline", Food{Name: "Paneer"}, "chunk", 1, 1},
		{"unknown unit scales by quantity", Food{Name: "Paneer"}, "chunk", 3, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizePortion(tt.food, tt.unit, tt.quantity)
			if math.Abs(got.Multiplier-tt.want) > 1e-9 {
				t.Fatalf("multiplier = %v, want %v", got.Multiplier, tt.want)
			}
		})
	}
}

func TestNormalizePortionGramMarkerSpecificity(t *testing.T) {
	t.Parallel()

	// "150g" must never be claimed by the "50g" rule, whichever overlapping
	// rule resolves it first.
	food := Food{Name: "Paneer", CaloriesPer100: 265}
	got := NormalizePortion(food, "medium portion (150g)", 1)
	if got.Multiplier != 1.5 {
		t.Fatalf("multiplier = %v, want 1.5", got.Multiplier)
	}
	for _, g := range gramPortions {
		if g.marker == "50g" && g.multiplier != 0.5 {
			t.Fatalf("50g marker multiplier = %v, want 0.5", g.multiplier)
		}
	}
}

func TestNormalizePortionContainerRequiresSizeAgreement(t *testing.T) {
	t.Parallel()

	// A bare container word with no recognized size falls through to the
	// qualitative rules.
	food := Food{Name: "Juice Mix", CaloriesPer100: 50, IsLiquid: true}
	got := NormalizePortion(food, "bottle", 1)
	if got.Multiplier != 1 {
		t.Fatalf("bare bottle multiplier = %v, want 1 (baseline fallback)", got.Multiplier)
	}

	got = NormalizePortion(food, "pint (568ml)", 1)
	if got.Multiplier != 5.68 {
		t.Fatalf("pint multiplier = %v, want 5.68", got.Multiplier)
	}
}

func TestNormalizePortionRounding(t *testing.T) {
	t.Parallel()

	food := Food{Name: "Almonds", CaloriesPer100: 579, ProteinPer100: 21.2, CarbsPer100: 21.6, FatPer100: 49.9}
	got := NormalizePortion(food, "handful (30g)", 1)

	if got.Multiplier != 0.3 {
		t.Fatalf("multiplier = %v, want 0.3", got.Multiplier)
	}
	if got.Calories != 174 {
		t.Fatalf("calories = %d, want 174", got.Calories)
	}
	if got.Protein != 6.4 {
		t.Fatalf("protein = %v, want 6.4", got.Protein)
	}
	if got.Fat != 15.0 {
		t.Fatalf("fat = %v, want 15.0", got.Fat)
	}
}
