// Package gen renders a synthesized type registry as Go source.
//
// Generation uses text/template + go/format. Output is deterministic:
// definitions are ordered dependencies first, ties broken by definition
// order, and imports are sorted.
//
// Type mapping:
//   - primitives use their Go representation (int32, decimal.Decimal, time.Time, uuid.UUID, []byte)
//   - struct references become pointers (*Person_Address)
//   - sequences and arrays become slices
//   - nullable primitives become pointers
//   - opaque values become any
package gen
