package match

import (
	"sort"

	"schema-typer/primitive"
)

// Target is a field an unmatched source key may belong to.
type Target struct {
	Name string
	Kind primitive.KindEnum // 0 for complex and sequence fields
}

// Candidate represents a potential mapping from a source key to a target field.
type Candidate struct {
	Key    string
	Target Target

	// Scoring components
	NameScore  float64                 // Normalized Levenshtein similarity (0-1)
	TypeCompat TypeCompatibilityResult // Kind compatibility result

	// Combined score for ranking (higher is better)
	CombinedScore float64

	NormalizedKey    string
	NormalizedTarget string
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates ranks the targets a source key holding a value of kind could
// be meant for. Returns candidates sorted by combined score (descending).
func RankCandidates(key string, kind primitive.KindEnum, targets []Target) CandidateList {
	candidates := make(CandidateList, 0, len(targets))

	keyNorm := NormalizeIdent(key)
	keyNormStripped := NormalizeIdentWithSuffixStrip(key)

	for _, target := range targets {
		targetNorm := NormalizeIdent(target.Name)

		// use the better of the plain and suffix-stripped similarities
		nameScore := max(
			LevenshteinNormalized(keyNorm, targetNorm),
			LevenshteinNormalized(keyNormStripped, NormalizeIdentWithSuffixStrip(target.Name)),
		)

		var typeCompat TypeCompatibilityResult
		if kind != 0 && target.Kind != 0 {
			typeCompat = ScoreKindCompatibility(kind, target.Kind)
		} else {
			typeCompat = TypeCompatibilityResult{
				Compatibility: TypeNeedsTransform,
				SourceKind:    kind,
				TargetKind:    target.Kind,
			}
		}

		candidates = append(candidates, Candidate{
			Key:              key,
			Target:           target,
			NameScore:        nameScore,
			TypeCompat:       typeCompat,
			CombinedScore:    calculateCombinedScore(nameScore, typeCompat.Compatibility),
			NormalizedKey:    keyNorm,
			NormalizedTarget: targetNorm,
		})
	}

	// by combined score, then by name for determinism
	sort.Sort(candidates)

	return candidates
}

// calculateCombinedScore computes a combined score from name similarity and type compatibility.
// Weights:
//   - Name similarity: 60% (0.0-0.6)
//   - Type compatibility: 40% (0.0-0.4)
func calculateCombinedScore(nameScore float64, typeCompat TypeCompatibility) float64 {
	const (
		nameWeight = 0.6
		typeWeight = 0.4
	)

	var typeScore float64
	switch typeCompat {
	case TypeIdentical:
		typeScore = 1.0
	case TypeAssignable:
		typeScore = 0.9
	case TypeConvertible:
		typeScore = 0.7
	case TypeNeedsTransform:
		typeScore = 0.4
	case TypeIncompatible:
		typeScore = 0.0
	}

	return nameScore*nameWeight + typeScore*typeWeight
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].CombinedScore != c[j].CombinedScore {
		return c[i].CombinedScore > c[j].CombinedScore
	}

	return c[i].Target.Name < c[j].Target.Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}
	return c[0].CombinedScore-c[1].CombinedScore < threshold
}

// AboveThreshold returns candidates with combined score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.CombinedScore >= threshold {
			result = append(result, cand)
		}
	}
	return result
}

// Names returns the target names in ranking order.
func (c CandidateList) Names() []string {
	names := make([]string, len(c))
	for i, cand := range c {
		names[i] = cand.Target.Name
	}
	return names
}

// HighConfidence returns the best candidate if it's significantly better than alternatives.
// Returns nil if no clear winner exists.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	if len(c) == 0 {
		return nil
	}
	best := &c[0]

	if best.CombinedScore < minScore {
		return nil
	}

	if best.TypeCompat.Compatibility < TypeNeedsTransform {
		return nil
	}

	if len(c) > 1 && c[0].CombinedScore-c[1].CombinedScore < minGap {
		return nil
	}

	return best
}

// Confidence thresholds for suggestions.
const (
	// DefaultMinScore is the minimum combined score for a confident suggestion.
	DefaultMinScore = 0.7
	// DefaultMinGap is the minimum score gap between top candidates.
	DefaultMinGap = 0.15
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
)
