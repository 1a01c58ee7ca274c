// Package selector decides which members of a record take part in update
// code generation.
//
// A record must be a struct with at least one declared member; every other
// shape is rejected with a ShapeError. Members are kept in declaration
// order unless they carry the skip marker or have no accessible name.
// The skip marker is a struct tag under the configured group key whose
// comma separated items include exactly "skip":
//
//	PasswordHash []byte `struct_field:"skip"`
//
// Malformed tags and other keys are never treated as skip markers.
package selector
