package nutrition

import (
	"context"
	"sort"
	"strings"
	"time"

	applog "nutrigo/internal/log"
)

// CorpusSearcher is the persisted-corpus collaborator consulted as the
// second resolution tier. Generated records are written through it so later
// queries hit the corpus instead of the generative tier.
type CorpusSearcher interface {
	Search(ctx context.Context, query string) ([]Food, error)
	Save(ctx context.Context, food Food) error
}

// Generator is the generative-AI collaborator consulted as the last, most
// expensive tier.
type Generator interface {
	GenerateFoodFacts(ctx context.Context, query string) ([]GeneratedFood, error)
}

// Result is a resolved candidate with its query relevance and a nutrient
// preview for the record's default serving.
type Result struct {
	Food      Food    `json:"food"`
	Relevance int     `json:"relevance"`
	Preview   Portion `json:"preview"`
}

// Resolver orchestrates the three resolution tiers. Corpus and Generator
// are optional; a nil collaborator simply skips its tier.
type Resolver struct {
	Corpus      CorpusSearcher
	Generator   Generator
	CallTimeout time.Duration
}

const defaultCallTimeout = 15 * time.Second

// minQueryLenForGeneration guards the costly tier against one- and
// two-character noise queries.
const minQueryLenForGeneration = 3

// Resolve turns a free-text query into ranked food candidates. Tier order is
// strictly curated, corpus, generated; the generated tier runs only when the
// cheaper tiers left the result set empty or unconvincing. External-tier
// failures are logged and absorbed, never surfaced.
func (r *Resolver) Resolve(ctx context.Context, rawQuery string, limit int) []Result {
	q := ParseQuery(rawQuery)
	if q.Normalized == "" {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}

	foods := CuratedLookup(q)
	foods = r.appendCorpusMatches(ctx, q, foods)

	if r.shouldGenerate(q, foods) {
		foods = r.appendGenerated(ctx, q, foods)
	}

	if len(foods) == 0 {
		foods = append(foods, heuristicFallback(q))
	}

	results := make([]Result, 0, len(foods))
	for _, food := range foods {
		results = append(results, Result{
			Food:      food,
			Relevance: ScoreRelevance(food.Name, q.Normalized),
			Preview:   NormalizePortion(food, food.DefaultUnit, defaultQuantity(food)),
		})
	}

	sortResults(results, q)

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (r *Resolver) appendCorpusMatches(ctx context.Context, q Query, foods []Food) []Food {
	if r.Corpus == nil {
		return foods
	}

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout())
	defer cancel()

	hits, err := r.Corpus.Search(callCtx, q.Normalized)
	if err != nil {
		applog.Warn(ctx, "corpus search failed, continuing with earlier tiers", "query", q.Normalized, "error", err)
		return foods
	}

	for _, hit := range hits {
		if isDuplicate(hit, foods, q) {
			continue
		}
		if hit.Source == "" {
			hit.Source = SourceCorpus
		}
		if hit.AccuracyTier == "" {
			hit.AccuracyTier = ScoreAccuracy(hit).Tier
		}
		if hit.DefaultQuantity <= 0 {
			hit.DefaultQuantity = 1
		}
		foods = append(foods, hit)
	}
	return foods
}

// shouldGenerate decides whether the costly generative tier is warranted:
// nothing found so far, or a compound dish none of the candidates actually
// names, or a thin result set for a simple query.
func (r *Resolver) shouldGenerate(q Query, foods []Food) bool {
	if r.Generator == nil {
		return false
	}
	if len(q.Normalized) < minQueryLenForGeneration {
		return false
	}
	if len(foods) == 0 {
		return true
	}
	if q.IsCompoundDish {
		for _, food := range foods {
			if strings.Contains(strings.ToLower(food.Name), q.Normalized) {
				return false
			}
		}
		return true
	}
	return len(foods) < 3
}

func (r *Resolver) appendGenerated(ctx context.Context, q Query, foods []Food) []Food {
	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout())
	defer cancel()

	generated, err := r.Generator.GenerateFoodFacts(callCtx, q.Normalized)
	if err != nil {
		applog.Warn(ctx, "food generation failed, continuing without generated tier", "query", q.Normalized, "error", err)
		return foods
	}

	for i, g := range generated {
		food, ok := foodFromGenerated(q, i, g)
		if !ok {
			applog.Debug(ctx, "discarding malformed generated item", "query", q.Normalized, "index", i)
			continue
		}
		if isDuplicate(food, foods, q) {
			continue
		}
		foods = append(foods, food)
		if r.Corpus != nil {
			if err := r.Corpus.Save(ctx, food); err != nil {
				applog.Warn(ctx, "failed to persist generated food", "name", food.Name, "error", err)
			}
		}
	}
	return foods
}

func foodFromGenerated(q Query, index int, g GeneratedFood) (Food, bool) {
	name := strings.TrimSpace(g.Name)
	if name == "" || g.Calories < 0 || g.Protein < 0 || g.Carbs < 0 || g.Fat < 0 {
		return Food{}, false
	}

	unit := strings.TrimSpace(g.DefaultUnit)
	if unit == "" {
		unit = "medium portion (150g)"
		if g.IsLiquid {
			unit = "glass (250ml)"
		}
	}

	return Food{
		ID:              GeneratedID(q.Normalized, index),
		Name:            name,
		Category:        strings.TrimSpace(g.Category),
		CaloriesPer100:  g.Calories,
		ProteinPer100:   g.Protein,
		CarbsPer100:     g.Carbs,
		FatPer100:       g.Fat,
		IsLiquid:        g.IsLiquid,
		DefaultUnit:     unit,
		DefaultQuantity: 1,
		CommonUnits:     []string{unit},
		Source:          SourceGenerated,
		AccuracyTier:    TierMedium,
	}, true
}

// isDuplicate applies the tier-2 dedup rules: compound dishes collide on
// exact names or near-equal length with a shared first token; simple queries
// collide when either name contains the other's first token.
func isDuplicate(candidate Food, existing []Food, q Query) bool {
	candName := strings.ToLower(strings.TrimSpace(candidate.Name))
	candFirst := firstToken(candName)

	for _, food := range existing {
		name := strings.ToLower(strings.TrimSpace(food.Name))
		if q.IsCompoundDish {
			if name == candName {
				return true
			}
			diff := len(name) - len(candName)
			if diff < 0 {
				diff = -diff
			}
			if diff <= 3 && firstToken(name) == candFirst && candFirst != "" {
				return true
			}
			continue
		}
		if candFirst != "" && strings.Contains(name, candFirst) {
			return true
		}
		if first := firstToken(name); first != "" && strings.Contains(candName, first) {
			return true
		}
	}
	return false
}

func firstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// heuristicFallback synthesizes a low-confidence record from query keywords
// when every tier came back empty. The caller always gets at least one
// best-effort estimate.
func heuristicFallback(q Query) Food {
	calories, category, liquid := 150.0, "", false
	switch {
	case containsAny(q.Normalized, "salad", "vegetable", "greens"):
		calories, category = 60, CategoryVegetables
	case containsAny(q.Normalized, "juice", "drink", "smoothie", "shake"):
		calories, category, liquid = 55, CategoryBeverages, true
	case containsAny(q.Normalized, "fried", "fry"):
		calories = 280
	case containsAny(q.Normalized, "sweet", "dessert", "cake", "pastry"):
		calories, category = 350, CategorySweets
	case containsAny(q.Normalized, "rice", "bread", "noodle", "pasta"):
		calories, category = 200, CategoryGrains
	case containsAny(q.Normalized, "chicken", "meat", "fish", "egg"):
		calories, category = 180, CategoryProtein
	}

	unit := "medium portion (150g)"
	if liquid {
		unit = "glass (250ml)"
	}

	return Food{
		ID:              GeneratedID(q.Normalized, 0),
		Name:            titleCase(q.Normalized),
		Category:        category,
		CaloriesPer100:  calories,
		ProteinPer100:   calories * 0.04,
		CarbsPer100:     calories * 0.12,
		FatPer100:       calories * 0.03,
		IsLiquid:        liquid,
		DefaultUnit:     unit,
		DefaultQuantity: 1,
		CommonUnits:     []string{unit},
		Source:          SourceGenerated,
		AccuracyTier:    TierLow,
	}
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, field := range fields {
		fields[i] = strings.ToUpper(field[:1]) + field[1:]
	}
	return strings.Join(fields, " ")
}

// sortResults produces the final deterministic ranking: relevance (compound
// dishes only), accuracy tier weight, exact-name match, shorter name.
func sortResults(results []Result, q Query) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if q.IsCompoundDish && a.Relevance != b.Relevance {
			return a.Relevance > b.Relevance
		}
		if wa, wb := a.Food.AccuracyTier.Weight(), b.Food.AccuracyTier.Weight(); wa != wb {
			return wa > wb
		}
		aExact := strings.EqualFold(a.Food.Name, q.Normalized)
		bExact := strings.EqualFold(b.Food.Name, q.Normalized)
		if aExact != bExact {
			return aExact
		}
		return len(a.Food.Name) < len(b.Food.Name)
	})
}

func defaultQuantity(food Food) float64 {
	if food.DefaultQuantity > 0 {
		return food.DefaultQuantity
	}
	return 1
}

func (r *Resolver) callTimeout() time.Duration {
	if r.CallTimeout > 0 {
		return r.CallTimeout
	}
	return defaultCallTimeout
}
