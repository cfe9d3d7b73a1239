package domain

import "strings"

// ExactSearch returns every entry whose name, keywords or category
// contain the query as a case-insensitive substring, in catalog order.
// No ranking happens here: either an entry matches or it does not.
// An empty query matches everything.
func ExactSearch(tools []Tool, query string) []Tool {
	q := strings.ToLower(strings.TrimSpace(query))

	matches := make([]Tool, 0)
	for _, t := range tools {
		if matchesExact(t, q) {
			matches = append(matches, t)
		}
	}
	return matches
}

func matchesExact(t Tool, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) {
		return true
	}
	for _, kw := range t.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(t.Category), q)
}

// FuzzySearch ranks the whole catalog by token-set similarity against
// the query and returns the top suggestions. It always returns up to
// FuzzyResultLimit entries, even low-scoring ones: when nothing matched
// exactly, a weak suggestion beats an empty page.
func FuzzySearch(tools []Tool, query string) []SearchCandidate {
	candidates := RankFuzzy(tools, query)
	if len(candidates) > FuzzyResultLimit {
		candidates = candidates[:FuzzyResultLimit]
	}
	return candidates
}

// RankFuzzy scores every entry against the query and sorts by score
// (descending). Ties keep catalog order.
func RankFuzzy(tools []Tool, query string) []SearchCandidate {
	query = strings.ToLower(query)

	candidates := make([]SearchCandidate, 0, len(tools))
	for _, t := range tools {
		candidates = append(candidates, SearchCandidate{
			Tool:  t,
			Score: TokenSetRatio(query, searchText(t)),
		})
	}

	sortCandidates(candidates)
	return candidates
}

// searchText builds the text blob an entry is matched against.
func searchText(t Tool) string {
	parts := []string{t.Name, t.Description, strings.Join(t.Keywords, " "), t.Category}
	return strings.ToLower(strings.Join(parts, " "))
}
