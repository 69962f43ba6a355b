package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PascalCase converts a raw schema key into a field name.
// The key is split into tokens on runs of non-alphanumeric runes and on
// camelCase humps, the first rune of every token is upper-cased, the rest
// lower-cased, and the tokens are concatenated:
//   - "street_name" -> "StreetName"
//   - "Street-Name" -> "StreetName"
//   - "streetName"  -> "StreetName"
//   - "userID"      -> "UserId"
//   - "FIRSTNAME"   -> "Firstname"
//
// Input without any alphanumeric rune is returned unchanged.
// PascalCase(PascalCase(s)) == PascalCase(s) for every s.
func PascalCase(s string) string {
	tokens := tokenizeCamelCase(s)
	if len(tokens) == 0 {
		return s
	}

	var result strings.Builder

	result.Grow(len(s))

	for _, token := range tokens {
		r, size := utf8.DecodeRuneInString(token)
		result.WriteRune(unicode.ToUpper(r))
		result.WriteString(strings.ToLower(token[size:]))
	}

	return result.String()
}

// NormalizeIdent normalizes an identifier for fuzzy matching.
// The normalization pipeline:
// 1. Tokenize CamelCase and separators.
// 2. Case-fold to lower.
// 3. Join without separators.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s), ""))
}

// NormalizeIdentWithSuffixStrip normalizes and strips common suffixes.
// Common tokens to strip: id, ids, at, utc, timestamp.
// Note: We avoid stripping short suffixes like "ts" as they're too aggressive.
func NormalizeIdentWithSuffixStrip(s string) string {
	normalized := NormalizeIdent(s)

	// Strip common suffixes (ordered from longer to shorter to avoid partial matches)
	suffixes := []string{"timestamp", "ids", "utc", "id", "at"}
	for _, suffix := range suffixes {
		if strings.HasSuffix(normalized, suffix) && len(normalized) > len(suffix) {
			normalized = strings.TrimSuffix(normalized, suffix)

			break
		}
	}

	return normalized
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "first name.2" -> ["first", "name", "2"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator reports whether the rune splits tokens: everything that is
// neither a letter nor a digit, underscore included.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)

	// lower or digit to upper: "orderID" splits before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prevRune) {
		return true
	}

	// end of acronym: "XMLParser" splits before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}

// TokenizeIdent splits an identifier into normalized lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}
