package nutrition

import "strings"

// curatedFoods is the hand-verified table consulted before any external
// tier. Baselines are per 100 g (solids) or per 100 ml (liquids). The water
// family is the only entry allowed an all-zero baseline.
var curatedFoods = []Food{
	{ID: 1, Name: "Water", Category: CategoryBeverages, IsLiquid: true, DefaultUnit: "glass (250ml)", DefaultQuantity: 1, CommonUnits: []string{"glass (250ml)", "bottle (500ml)", "litre (1000ml)"}},
	{ID: 2, Name: "Sparkling Water", Category: CategoryBeverages, IsLiquid: true, DefaultUnit: "glass (250ml)", DefaultQuantity: 1, CommonUnits: []string{"glass (250ml)", "can (330ml)"}},
	{ID: 3, Name: "White Rice (Cooked)", Category: CategoryGrains, CaloriesPer100: 130, ProteinPer100: 2.7, CarbsPer100: 28.2, FatPer100: 0.3, DefaultUnit: "medium portion (150g)", DefaultQuantity: 1, CommonUnits: []string{"small portion (100g)", "medium portion (150g)", "large portion (250g)"}},
	{ID: 4, Name: "Brown Rice (Cooked)", Category: CategoryGrains, CaloriesPer100: 112, ProteinPer100: 2.3, CarbsPer100: 23.5, FatPer100: 0.8, DefaultUnit: "medium portion (150g)", DefaultQuantity: 1, CommonUnits: []string{"small portion (100g)", "medium portion (150g)", "large portion (250g)"}},
	{ID: 5, Name: "Whole Wheat Bread", Category: CategoryGrains, CaloriesPer100: 247, ProteinPer100: 13, CarbsPer100: 41, FatPer100: 3.4, DefaultUnit: "slice (30g)", DefaultQuantity: 2, CommonUnits: []string{"slice (30g)", "piece"}},
	{ID: 6, Name: "Chapati", Category: CategoryGrains, CaloriesPer100: 297, ProteinPer100: 11, CarbsPer100: 46, FatPer100: 7.5, DefaultUnit: "piece", DefaultQuantity: 2, CommonUnits: []string{"piece", "small", "large"}},
	{ID: 7, Name: "Oats (Cooked)", Category: CategoryGrains, CaloriesPer100: 71, ProteinPer100: 2.5, CarbsPer100: 12, FatPer100: 1.5, DefaultUnit: "bowl", DefaultQuantity: 1, CommonUnits: []string{"bowl", "cup", "small portion (100g)"}},
	{ID: 8, Name: "Chicken Breast (Grilled)", Category: CategoryProtein, CaloriesPer100: 165, ProteinPer100: 31, CarbsPer100: 0.5, FatPer100: 3.6, DefaultUnit: "medium portion (150g)", DefaultQuantity: 1, CommonUnits: []string{"piece", "small portion (100g)", "medium portion (150g)", "large portion (200g)"}},
	{ID: 9, Name: "Chicken Curry", Category: CategoryProtein, CaloriesPer100: 145, ProteinPer100: 13.5, CarbsPer100: 5, FatPer100: 8, DefaultUnit: "medium portion (200g)", DefaultQuantity: 1, CommonUnits: []string{"small portion (150g)", "medium portion (200g)", "bowl"}},
	{ID: 10, Name: "Egg (Boiled)", Category: CategoryProtein, CaloriesPer100: 155, ProteinPer100: 13, CarbsPer100: 1.1, FatPer100: 11, DefaultUnit: "piece", DefaultQuantity: 2, CommonUnits: []string{"piece", "small", "large"}},
	{ID: 11, Name: "Salmon (Baked)", Category: CategoryProtein, CaloriesPer100: 206, ProteinPer100: 22, CarbsPer100: 0.1, FatPer100: 12, DefaultUnit: "medium portion (150g)", DefaultQuantity: 1, CommonUnits: []string{"piece", "small portion (100g)", "medium portion (150g)"}},
	{ID: 12, Name: "Paneer", Category: CategoryDairy, CaloriesPer100: 265, ProteinPer100: 18.3, CarbsPer100: 1.2, FatPer100: 20.8, DefaultUnit: "small portion (100g)", DefaultQuantity: 1, CommonUnits: []string{"small portion (100g)", "medium portion (150g)", "cube (25g)"}},
	{ID: 13, Name: "Whole Milk", Category: CategoryDairy, CaloriesPer100: 61, ProteinPer100: 3.2, CarbsPer100: 4.8, FatPer100: 3.3, IsLiquid: true, DefaultUnit: "glass (250ml)", DefaultQuantity: 1, CommonUnits: []string{"glass (250ml)", "cup (240ml)"}},
	{ID: 14, Name: "Greek Yogurt", Category: CategoryDairy, CaloriesPer100: 59, ProteinPer100: 10, CarbsPer100: 3.6, FatPer100: 0.4, DefaultUnit: "small portion (100g)", DefaultQuantity: 1, CommonUnits: []string{"small portion (100g)", "bowl", "cup"}},
	{ID: 15, Name: "Cheddar Cheese", Category: CategoryDairy, CaloriesPer100: 403, ProteinPer100: 25, CarbsPer100: 1.3, FatPer100: 33, DefaultUnit: "slice (25g)", DefaultQuantity: 1, CommonUnits: []string{"slice (25g)", "cube (25g)"}},
	{ID: 16, Name: "Apple", Category: CategoryFruits, CaloriesPer100: 52, ProteinPer100: 0.3, CarbsPer100: 13.8, FatPer100: 0.2, DefaultUnit: "piece", DefaultQuantity: 1, CommonUnits: []string{"piece", "small", "large"}},
	{ID: 17, Name: "Banana", Category: CategoryFruits, CaloriesPer100: 89, ProteinPer100: 1.1, CarbsPer100: 22.8, FatPer100: 0.3, DefaultUnit: "piece", DefaultQuantity: 1, CommonUnits: []string{"piece", "small", "large"}},
	{ID: 18, Name: "Mango", Category: CategoryFruits, CaloriesPer100: 60, ProteinPer100: 0.8, CarbsPer100: 15, FatPer100: 0.4, DefaultUnit: "piece", DefaultQuantity: 1, CommonUnits: []string{"piece", "cup"}},
	{ID: 19, Name: "Spinach (Raw)", Category: CategoryVegetables, CaloriesPer100: 23, ProteinPer100: 2.9, CarbsPer100: 3.6, FatPer100: 0.4, DefaultUnit: "cup", DefaultQuantity: 1, CommonUnits: []string{"cup", "bowl", "small portion (100g)"}},
	{ID: 20, Name: "Broccoli (Steamed)", Category: CategoryVegetables, CaloriesPer100: 35, ProteinPer100: 2.4, CarbsPer100: 7.2, FatPer100: 0.4, DefaultUnit: "cup", DefaultQuantity: 1, CommonUnits: []string{"cup", "small portion (100g)"}},
	{ID: 21, Name: "Mixed Salad", Category: CategoryVegetables, CaloriesPer100: 33, ProteinPer100: 1.8, CarbsPer100: 5.5, FatPer100: 0.6, DefaultUnit: "bowl", DefaultQuantity: 1, CommonUnits: []string{"bowl", "small portion (100g)", "large portion (250g)"}},
	{ID: 22, Name: "Almonds", Category: CategoryNuts, CaloriesPer100: 579, ProteinPer100: 21.2, CarbsPer100: 21.6, FatPer100: 49.9, DefaultUnit: "handful (30g)", DefaultQuantity: 1, CommonUnits: []string{"handful (30g)", "small portion (50g)"}},
	{ID: 23, Name: "Peanut Butter", Category: CategoryNuts, CaloriesPer100: 588, ProteinPer100: 25, CarbsPer100: 20, FatPer100: 50, DefaultUnit: "tablespoon", DefaultQuantity: 1, CommonUnits: []string{"tablespoon", "teaspoon"}},
	{ID: 24, Name: "Orange Juice", Category: CategoryBeverages, CaloriesPer100: 45, ProteinPer100: 0.7, CarbsPer100: 10.4, FatPer100: 0.2, IsLiquid: true, DefaultUnit: "glass (250ml)", DefaultQuantity: 1, CommonUnits: []string{"glass (250ml)", "bottle (330ml)"}},
	{ID: 25, Name: "Beer", Category: CategoryBeverages, CaloriesPer100: 43, ProteinPer100: 0.5, CarbsPer100: 3.6, FatPer100: 0, IsLiquid: true, DefaultUnit: "can (500ml)", DefaultQuantity: 1, CommonUnits: []string{"can (500ml)", "bottle (650ml)", "pint (568ml)", "glass (250ml)"}},
	{ID: 26, Name: "Black Coffee", Category: CategoryBeverages, CaloriesPer100: 2, ProteinPer100: 0.1, CarbsPer100: 0.2, FatPer100: 0, IsLiquid: true, DefaultUnit: "cup (240ml)", DefaultQuantity: 1, CommonUnits: []string{"cup (240ml)", "small cup (150ml)"}},
	{ID: 27, Name: "Toor Dal (Cooked)", Category: CategoryLegumes, CaloriesPer100: 87, ProteinPer100: 5.4, CarbsPer100: 15.6, FatPer100: 0.5, DefaultUnit: "bowl", DefaultQuantity: 1, CommonUnits: []string{"bowl", "small portion (150g)", "cup"}},
	{ID: 28, Name: "Chickpeas (Boiled)", Category: CategoryLegumes, CaloriesPer100: 164, ProteinPer100: 8.9, CarbsPer100: 27.4, FatPer100: 2.6, DefaultUnit: "cup", DefaultQuantity: 1, CommonUnits: []string{"cup", "bowl", "small portion (100g)"}},
	{ID: 29, Name: "Dark Chocolate", Category: CategorySweets, CaloriesPer100: 546, ProteinPer100: 4.9, CarbsPer100: 61, FatPer100: 31, DefaultUnit: "piece (25g)", DefaultQuantity: 1, CommonUnits: []string{"piece (25g)", "bar (100g)"}},
	{ID: 30, Name: "Potato Chips", Category: CategorySnacks, CaloriesPer100: 536, ProteinPer100: 7, CarbsPer100: 53, FatPer100: 35, DefaultUnit: "small pack (30g)", DefaultQuantity: 1, CommonUnits: []string{"small pack (30g)", "large pack (150g)"}},
}

// CuratedFoods returns a copy of the curated table with source annotations
// applied.
func CuratedFoods() []Food {
	foods := make([]Food, len(curatedFoods))
	for i, food := range curatedFoods {
		foods[i] = annotateCurated(food)
	}
	return foods
}

// CuratedLookup is the first resolution tier. Compound-dish queries are held
// to near-exact or majority-token matches and capped at two results so a
// broad curated entry cannot crowd out a more precise compound match; simple
// queries match loosely, up to five results.
func CuratedLookup(q Query) []Food {
	if q.Normalized == "" {
		return nil
	}

	maxResults := 5
	if q.IsCompoundDish {
		maxResults = 2
	}

	var matches []Food
	for _, food := range curatedFoods {
		name := strings.ToLower(food.Name)
		if q.IsCompoundDish {
			if !compoundMatch(name, q) {
				continue
			}
		} else if !looseMatch(name, q) {
			continue
		}
		matches = append(matches, annotateCurated(food))
		if len(matches) >= maxResults {
			break
		}
	}
	return matches
}

func annotateCurated(food Food) Food {
	food.Source = SourceCurated
	food.AccuracyTier = TierHigh
	if food.DefaultQuantity <= 0 {
		food.DefaultQuantity = 1
	}
	return food
}

// compoundMatch requires either containment of the whole query or all but
// one of its words appearing in the candidate name.
func compoundMatch(name string, q Query) bool {
	if strings.Contains(name, q.Normalized) {
		return true
	}
	if len(q.Tokens) < 2 {
		return false
	}
	present := 0
	for _, token := range q.Tokens {
		if strings.Contains(name, token) {
			present++
		}
	}
	return present >= len(q.Tokens)-1
}

func looseMatch(name string, q Query) bool {
	if strings.Contains(name, q.Normalized) || strings.Contains(q.Normalized, name) {
		return true
	}
	for _, token := range q.Tokens {
		if len(token) >= 3 && strings.Contains(name, token) {
			return true
		}
	}
	return false
}
