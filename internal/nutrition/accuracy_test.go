package nutrition

import "testing"

func TestScoreAccuracyTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		food Food
		tier AccuracyTier
	}{
		{
			"curated-quality record is high",
			Food{Name: "Almonds", Category: CategoryNuts, CaloriesPer100: 579, ProteinPer100: 21.2, CarbsPer100: 21.6, FatPer100: 49.9},
			TierHigh,
		},
		{
			"implausible calories drop to medium",
			Food{Name: "Spinach (Raw)", Category: CategoryVegetables, CaloriesPer100: 450, ProteinPer100: 2.9, CarbsPer100: 3.6, FatPer100: 0.4},
			TierMedium,
		},
		{
			"placeholder name loses trust",
			Food{Name: "AI Generated Food", Category: "Misc", CaloriesPer100: 250, ProteinPer100: 8, CarbsPer100: 45, FatPer100: 4},
			TierMedium,
		},
		{
			"negative nutrient and bad range is low",
			Food{Name: "Example Item", Category: "Misc", CaloriesPer100: 1200, ProteinPer100: -5, CarbsPer100: 10, FatPer100: 2},
			TierLow,
		},
		{
			"water scores high despite zero macros",
			Food{Name: "Water", Category: CategoryBeverages, IsLiquid: true},
			TierHigh,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ScoreAccuracy(tt.food)
			if got.Tier != tt.tier {
				t.Fatalf("tier = %s (score %.2f), want %s", got.Tier, got.Score, tt.tier)
			}
		})
	}
}

func TestTierForScoreMonotonic(t *testing.T) {
	t.Parallel()

	for score := 0.0; score <= 1.0; score += 0.05 {
		tier := tierForScore(score)
		switch {
		case score >= 0.8 && tier != TierHigh:
			t.Fatalf("score %.2f = %s, want high", score, tier)
		case score >= 0.5 && score < 0.8 && tier != TierMedium:
			t.Fatalf("score %.2f = %s, want medium", score, tier)
		case score < 0.5 && tier != TierLow:
			t.Fatalf("score %.2f = %s, want low", score, tier)
		}
	}
}

func TestPickBestDuplicate(t *testing.T) {
	t.Parallel()

	clean := Food{Name: "Chicken Curry", Category: CategoryProtein, CaloriesPer100: 145, ProteinPer100: 13.5, CarbsPer100: 5, FatPer100: 8}
	sloppy := Food{Name: "Chicken Curry Example", Category: "Misc", CaloriesPer100: 950, ProteinPer100: 13.5, CarbsPer100: 5, FatPer100: 8}

	best, ok := PickBestDuplicate([]Food{sloppy, clean})
	if !ok {
		t.Fatal("expected a winner")
	}
	if best.Name != clean.Name {
		t.Fatalf("winner = %q, want %q", best.Name, clean.Name)
	}

	if _, ok := PickBestDuplicate(nil); ok {
		t.Fatal("expected no winner for empty input")
	}
}
