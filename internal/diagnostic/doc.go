// Package diagnostic provides structured warnings, errors and notes
// collected while selecting fields and generating code.
//
// Key capabilities:
//   - Skipped member notes (skip marker)
//   - Unnamed member notes (embedded or blank members)
//   - Records without eligible fields
package diagnostic
