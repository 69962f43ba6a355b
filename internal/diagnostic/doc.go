// Package diagnostic provides structured, non-fatal findings collected while
// normalizing schemas, populating runtime objects and materializing instances.
//
// Key capabilities:
//   - Unsupported type tag warnings
//   - Skipped field reports from generic population
//   - Unmatched document keys with suggested field names
package diagnostic
