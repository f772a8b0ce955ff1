package nutrition

import "strings"

// ScoreRelevance rates how well a candidate name answers a query. Scoring is
// purely additive; ties are broken by the resolver's secondary sort keys,
// never here.
//
//	+100 full equality
//	+50  substring containment either direction
//	+20  per exact token match (tokens shorter than 3 chars ignored)
//	+10  per partial token containment
//	+5   per token pair matching at the same position
func ScoreRelevance(name, query string) int {
	n := normalizeForMatch(name)
	q := normalizeForMatch(query)
	if n == "" || q == "" {
		return 0
	}

	score := 0
	if n == q {
		score += 100
	}
	if strings.Contains(n, q) || strings.Contains(q, n) {
		score += 50
	}

	nameTokens := strings.Fields(n)
	queryTokens := strings.Fields(q)

	for _, qt := range queryTokens {
		if len(qt) < 3 {
			continue
		}
		exact := false
		partial := false
		for _, nt := range nameTokens {
			if nt == qt {
				exact = true
				break
			}
			if strings.Contains(nt, qt) || strings.Contains(qt, nt) {
				partial = true
			}
		}
		if exact {
			score += 20
		} else if partial {
			score += 10
		}
	}

	// Word-order bonus.
	for i := 0; i < len(nameTokens) && i < len(queryTokens); i++ {
		if nameTokens[i] == queryTokens[i] {
			score += 5
		}
	}

	return score
}

func normalizeForMatch(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
