package domain

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// ScoreScale expresses similarity on the usual 0-100 scale.
	ScoreScale = 100.0

	// FuzzyResultLimit caps how many suggestions a fuzzy search returns.
	FuzzyResultLimit = 5
)

// SearchCandidate pairs a catalog entry with its similarity score.
type SearchCandidate struct {
	Tool  Tool
	Score float64
}

// TokenSetRatio computes a word-order-insensitive similarity between
// two strings on a 0-100 scale. Both sides are tokenized into unique
// sorted word sets; the score is the best pairing of the shared-token
// core against each side's full token string. A query whose words all
// appear in the candidate text scores 100 regardless of extra words,
// which is exactly what short queries against long descriptions need.
func TokenSetRatio(a, b string) float64 {
	tokensA := Tokenize(a)
	tokensB := Tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	sect, diffA, diffB := splitTokenSets(tokensA, tokensB)

	sectStr := strings.Join(sect, " ")
	combinedA := joinTokens(sectStr, diffA)
	combinedB := joinTokens(sectStr, diffB)

	best := indelSimilarity(sectStr, combinedA)
	if s := indelSimilarity(sectStr, combinedB); s > best {
		best = s
	}
	if s := indelSimilarity(combinedA, combinedB); s > best {
		best = s
	}

	return best * ScoreScale
}

// Tokenize splits a string into its unique lowercase words, sorted.
// Anything that is not a letter or digit separates words.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			tokens = append(tokens, f)
		}
	}

	sort.Strings(tokens)
	return tokens
}

// splitTokenSets partitions two sorted token sets into the shared
// tokens and each side's leftovers. All three results stay sorted.
func splitTokenSets(a, b []string) (sect, diffA, diffB []string) {
	inB := make(map[string]bool, len(b))
	for _, t := range b {
		inB[t] = true
	}
	inA := make(map[string]bool, len(a))
	for _, t := range a {
		inA[t] = true
	}

	for _, t := range a {
		if inB[t] {
			sect = append(sect, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for _, t := range b {
		if !inA[t] {
			diffB = append(diffB, t)
		}
	}
	return sect, diffA, diffB
}

func joinTokens(sectStr string, diff []string) string {
	if len(diff) == 0 {
		return sectStr
	}
	if sectStr == "" {
		return strings.Join(diff, " ")
	}
	return sectStr + " " + strings.Join(diff, " ")
}

// indelSimilarity is the normalized insert/delete similarity of two
// strings: 1 - distance/(len(a)+len(b)), where the distance counts the
// characters that must be inserted or deleted to turn one into the
// other (substitutions cost 2, so this reduces to a longest common
// subsequence computation).
func indelSimilarity(a, b string) float64 {
	runesA := []rune(a)
	runesB := []rune(b)

	total := len(runesA) + len(runesB)
	if total == 0 {
		return 1.0
	}

	distance := total - 2*lcsLength(runesA, runesB)
	return 1.0 - float64(distance)/float64(total)
}

// lcsLength computes the longest common subsequence length with the
// classic two-row dynamic program.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// sortCandidates sorts candidates by score (descending).
func sortCandidates(candidates []SearchCandidate) {
	// Simple bubble sort (fine for small lists, and stable so ties
	// keep catalog order)
	n := len(candidates)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if candidates[j].Score < candidates[j+1].Score {
				candidates[j], candidates[j+1] = candidates[j+1], candidates[j]
			}
		}
	}
}
