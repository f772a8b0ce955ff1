package nutrition

import "strings"

// Query is the normalized form of a raw search string.
type Query struct {
	Raw        string
	Normalized string
	Tokens     []string
	// IsCompoundDish marks multi-word dish queries ("chicken curry") as
	// opposed to a single item with a preparation modifier ("boiled egg").
	// The flag tightens curated matching and changes the final sort.
	IsCompoundDish bool
}

// preparationModifiers are single-item qualifiers that do not make a query a
// compound dish on their own.
var preparationModifiers = map[string]struct{}{
	"fresh":   {},
	"raw":     {},
	"cooked":  {},
	"boiled":  {},
	"fried":   {},
	"grilled": {},
	"baked":   {},
	"roasted": {},
	"steamed": {},
	"plain":   {},
}

// ParseQuery lower-cases and tokenizes a raw query and derives the
// compound-dish flag.
func ParseQuery(raw string) Query {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.Join(strings.Fields(normalized), " ")
	tokens := strings.Fields(normalized)

	q := Query{
		Raw:        raw,
		Normalized: normalized,
		Tokens:     tokens,
	}

	significant := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) >= 3 {
			significant = append(significant, token)
		}
	}

	if len(significant) >= 2 {
		q.IsCompoundDish = !isItemWithModifier(significant)
	}

	return q
}

// isItemWithModifier reports whether the tokens form a single item plus a
// preparation word, e.g. "boiled egg" or "chicken grilled".
func isItemWithModifier(tokens []string) bool {
	if len(tokens) != 2 {
		return false
	}
	_, first := preparationModifiers[tokens[0]]
	_, second := preparationModifiers[tokens[1]]
	return first != second
}
