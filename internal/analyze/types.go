package analyze

import (
	"reflect"
	"strings"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "field-updater/examples/account"
	Name    string // e.g., "Account"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

//go:generate go tool stringer -type=Shape -linecomment -output=shape_string.go

// Shape classifies the underlying type of a named type.
// Only ShapeStruct records take part in generation.
type Shape int

const (
	ShapeUnknown Shape = iota // unknown
	ShapeStruct               // struct
	ShapeUnit                 // unit
	ShapeSum                  // sum
	ShapeTuple                // tuple
	ShapeOther                // other
)

// Import is a package referenced by a rendered type expression.
type Import struct {
	Path string // e.g., "time"
	Name string // package name used as qualifier, e.g., "time"
}

// TypeParam is one type parameter of a generic record.
type TypeParam struct {
	Name       string   // e.g., "K"
	Constraint string   // rendered constraint, e.g., "comparable"
	Imports    []Import // packages referenced by Constraint
}

// Member describes one declared member of a record type.
type Member struct {
	Name     string            // declared name; "_" for blank fields
	Exported bool              // whether the member is exported
	Type     string            // rendered Go type, qualified relative to the record's package
	Imports  []Import          // packages referenced by Type
	Tag      reflect.StructTag // raw struct tag, the attached markers
	Embedded bool              // whether the member is embedded (anonymous)
	Index    int               // member index in the struct
}

// HasName reports whether the member can be referenced by a declared name.
// Embedded and blank members cannot.
func (m *Member) HasName() bool {
	return !m.Embedded && m.Name != "" && m.Name != "_"
}

// Record is the descriptor of one named type, built once per load.
type Record struct {
	ID         TypeID
	PkgName    string      // package clause name
	Dir        string      // directory holding the package sources
	Pos        string      // "file:line" of the type declaration
	Shape      Shape       // shape of the underlying type
	TypeParams []TypeParam // type parameters, in declaration order
	Members    []Member    // struct members, in declaration order
	Derive     bool        // true if the declaration carries the derive directive
}

// Name returns the declared type name.
func (r *Record) Name() string {
	return r.ID.Name
}

// TypeParamsDecl renders the type parameter list for a declaration,
// e.g., "[K comparable, V any]". It is empty for non-generic records.
func (r *Record) TypeParamsDecl() string {
	if len(r.TypeParams) == 0 {
		return ""
	}

	parts := make([]string, len(r.TypeParams))
	for i, tp := range r.TypeParams {
		parts[i] = tp.Name + " " + tp.Constraint
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// TypeArgs renders the type argument list for an instantiation,
// e.g., "[K, V]". It is empty for non-generic records.
func (r *Record) TypeArgs() string {
	if len(r.TypeParams) == 0 {
		return ""
	}

	names := make([]string, len(r.TypeParams))
	for i, tp := range r.TypeParams {
		names[i] = tp.Name
	}

	return "[" + strings.Join(names, ", ") + "]"
}

// TypeGraph holds the records of all loaded packages.
type TypeGraph struct {
	// Records maps TypeID to Record for all named types.
	Records map[TypeID]*Record
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Records:  make(map[TypeID]*Record),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetRecord returns the Record for a given TypeID, or nil if not found.
func (g *TypeGraph) GetRecord(id TypeID) *Record {
	return g.Records[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Source directory
	Types []TypeID // Named types defined in this package, in source order
}
