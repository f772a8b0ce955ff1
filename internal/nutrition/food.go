package nutrition

// Source records which resolution tier produced a food record.
type Source string

const (
	SourceCurated   Source = "curated"
	SourceCorpus    Source = "corpus"
	SourceGenerated Source = "generated"
)

// AccuracyTier classifies how much trust a record's numbers deserve. It is
// independent of the resolution tier that produced the record.
type AccuracyTier string

const (
	TierHigh   AccuracyTier = "high"
	TierMedium AccuracyTier = "medium"
	TierLow    AccuracyTier = "low"
)

// Weight returns the sort weight used when ranking results.
func (t AccuracyTier) Weight() int {
	switch t {
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	default:
		return 1
	}
}

// Recognized food categories. Records from the corpus or the generative tier
// may carry other labels; the accuracy scorer treats those as generic.
const (
	CategoryGrains     = "Grains"
	CategoryProtein    = "Protein"
	CategoryDairy      = "Dairy"
	CategoryFruits     = "Fruits"
	CategoryVegetables = "Vegetables"
	CategoryNuts       = "Nuts"
	CategoryBeverages  = "Beverages"
	CategoryLegumes    = "Legumes"
	CategorySweets     = "Sweets"
	CategorySnacks     = "Snacks"
)

// Food is a resolved food record. Nutrient fields are always a baseline per
// 100 g for solids or per 100 ml for liquids, never per arbitrary portion.
type Food struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Category        string       `json:"category"`
	CaloriesPer100  float64      `json:"calories_per_100"`
	ProteinPer100   float64      `json:"protein_per_100"`
	CarbsPer100     float64      `json:"carbs_per_100"`
	FatPer100       float64      `json:"fat_per_100"`
	IsLiquid        bool         `json:"is_liquid"`
	DefaultUnit     string       `json:"default_unit"`
	DefaultQuantity float64      `json:"default_quantity"`
	CommonUnits     []string     `json:"common_units"`
	Source          Source       `json:"source"`
	AccuracyTier    AccuracyTier `json:"accuracy_tier"`
}

// GeneratedFood is the validated shape a generative collaborator must
// produce before the resolver will accept it.
type GeneratedFood struct {
	Name        string
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	Category    string
	DefaultUnit string
	IsLiquid    bool
}

// generatedIDBase keeps generated identifiers in their own namespace, well
// away from curated ids and corpus auto-increment ids.
const generatedIDBase = int64(1) << 30

// GeneratedID derives a deterministic identifier for the item at position
// index of the generation for normalizedQuery. Repeating a query yields the
// same ids instead of minting duplicates.
func GeneratedID(normalizedQuery string, index int) int64 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	var hash uint32 = offset32
	for _, b := range []byte(normalizedQuery) {
		hash ^= uint32(b)
		hash *= prime32
	}
	hash ^= uint32(index) + 0x9e37
	hash *= prime32
	return generatedIDBase | int64(hash&(1<<30-1))
}
