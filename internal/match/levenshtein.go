package match

import (
	"sort"
)

// Levenshtein computes the edit distance between two strings counted in runes:
// the minimum number of single-rune insertions, deletions or substitutions
// turning one string into the other.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// keep the shorter string in ra, two rows are enough
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// LevenshteinNormalized computes a normalized similarity score between 0 and 1.
// 1.0 means identical strings, 0.0 means completely different.
func LevenshteinNormalized(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(la, lb))
}

// NormalizedLevenshteinScore computes the similarity of two identifiers after
// NormalizeIdent.
func NormalizedLevenshteinScore(a, b string) float64 {
	return LevenshteinNormalized(NormalizeIdent(a), NormalizeIdent(b))
}

// SuggestThreshold is the minimal normalized similarity for Suggest.
const SuggestThreshold = 0.5

// Suggest returns up to limit candidates resembling name, most similar first.
// Candidates below SuggestThreshold are dropped. A non-positive limit keeps all.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var found []scored

	for _, candidate := range candidates {
		score := NormalizedLevenshteinScore(name, candidate)
		if score >= SuggestThreshold {
			found = append(found, scored{candidate, score})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].score != found[j].score {
			return found[i].score > found[j].score
		}

		return found[i].name < found[j].name
	})

	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}

	result := make([]string, len(found))
	for i, s := range found {
		result[i] = s.name
	}

	return result
}
