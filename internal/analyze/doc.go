// Package analyze loads Go packages and builds record descriptors.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to describe
// every named type of the loaded packages: its shape, its type parameters
// and its members with rendered types, struct tags and required imports.
//
// Key types:
//   - TypeID: package import path + type name
//   - Record: one named type, the input of field selection
//   - Member: one declared struct member
//   - Shape: struct/unit/sum/tuple/other classification
package analyze
