package match

import (
	"schema-typer/primitive"
)

// TypeCompatibility represents the level of compatibility between two kinds.
type TypeCompatibility int

const (
	// TypeIncompatible means no coercion rule connects the kinds.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means the value goes through its textual form.
	TypeNeedsTransform
	// TypeConvertible means a numeric conversion that may lose precision.
	TypeConvertible
	// TypeAssignable means a lossless numeric widening.
	TypeAssignable
	// TypeIdentical means the kinds are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Score returns a numeric score for sorting (higher is better).
func (c TypeCompatibility) Score() int {
	return int(c)
}

// TypeCompatibilityResult contains detailed information about kind compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Category      primitive.CategoryEnum
	SourceKind    primitive.KindEnum
	TargetKind    primitive.KindEnum
}

// ScoreKindCompatibility tells how well a value of kind source fits a field of
// kind target. KindAny accepts everything; an unknown source kind (nested
// objects, sequences) is only compatible with KindAny.
func ScoreKindCompatibility(source, target primitive.KindEnum) TypeCompatibilityResult {
	result := TypeCompatibilityResult{
		Category:   primitive.Classify(source, target),
		SourceKind: source,
		TargetKind: target,
	}

	switch {
	case source == target || target == primitive.KindAny:
		result.Compatibility = TypeIdentical
	case result.Category == primitive.CategorySafeNumber:
		result.Compatibility = TypeAssignable
	case result.Category == primitive.CategoryUnsafeNumber:
		result.Compatibility = TypeConvertible
	case result.Category != primitive.CategoryNone:
		result.Compatibility = TypeNeedsTransform
	default:
		result.Compatibility = TypeIncompatible
	}

	return result
}
