// Package gen renders record update helpers as Go source.
//
// For a struct T, one file holds:
//   - TField, a sealed interface with one variant struct per eligible field
//   - T.Str2Col, which resolves a snake case field name to its column
//   - T.Field2CV, which converts a TField to a column and a value expression
//   - T.Fields2Active, which folds TField values into an active model
//
// All four are rendered from the same PlanFields result, so field order
// and naming agree between them. Generation uses text/template + go/format.
package gen
