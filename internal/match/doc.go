// Package match provides field name normalization, Levenshtein distance
// calculation, kind compatibility scoring, and candidate ranking used to
// explain unmatched keys.
//
// Key functions:
//   - PascalCase: converts raw schema and document keys into field names
//   - Levenshtein: computes edit distance between strings
//   - ScoreKindCompatibility: scores how well a value kind fits a field kind
//   - RankCandidates: ranks fields an unmatched key may belong to
package match
