package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"

	"golang.org/x/tools/go/packages"

	"field-updater/internal/debug"
)

// loadMode asks for syntax and full type information of the named packages.
// Dependencies are type checked but not parsed for declarations.
const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedImports |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo

// Analyzer turns Go packages into a TypeGraph of records.
// Loading more patterns into the same Analyzer extends its graph.
type Analyzer struct {
	graph *TypeGraph

	// Dir resolves relative patterns. Empty means the working directory.
	Dir string
	// Overlay maps absolute file names to contents that shadow the disk.
	Overlay map[string][]byte
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{graph: NewTypeGraph()}
}

// LoadPackages loads patterns such as "." or "./models/..." and records
// every named type they declare. Any load or type error fails the whole call.
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode:    loadMode,
		Dir:     a.Dir,
		Overlay: a.Overlay,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", patterns, err)
	}

	if err := loadErrors(pkgs); err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("analyzing %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// loadErrors joins the errors reported for the loaded packages themselves.
func loadErrors(pkgs []*packages.Package) error {
	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Errorf("%s: %w", pkg.PkgPath, e))
		}
	}

	return errors.Join(errs...)
}

// processPackage describes every package level named type of pkg.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return fmt.Errorf("missing type information")
	}

	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
		Dir:  packageDir(pkg),
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok || obj.IsAlias() {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				rec := a.describe(pkg, obj)
				rec.Dir = pkgInfo.Dir
				rec.Derive = hasDeriveDirective(doc)
				rec.Pos = position(pkg.Fset, ts.Pos())

				a.graph.Records[rec.ID] = rec
				pkgInfo.Types = append(pkgInfo.Types, rec.ID)
			}
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo

	debug.Debug("package analyzed", "path", pkg.PkgPath, "types", len(pkgInfo.Types))

	return nil
}

// describe builds the Record of a named type.
func (a *Analyzer) describe(pkg *packages.Package, obj *types.TypeName) *Record {
	rec := &Record{
		ID: TypeID{
			PkgPath: pkg.PkgPath,
			Name:    obj.Name(),
		},
		PkgName: pkg.Name,
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		rec.Shape = ShapeOther
		return rec
	}

	if tps := named.TypeParams(); tps != nil {
		for i := range tps.Len() {
			tp := tps.At(i)
			constraint, imports := renderType(tp.Constraint(), pkg.Types)
			rec.TypeParams = append(rec.TypeParams, TypeParam{
				Name:       tp.Obj().Name(),
				Constraint: constraint,
				Imports:    imports,
			})
		}
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		if ut.NumFields() == 0 {
			rec.Shape = ShapeUnit
			break
		}

		rec.Shape = ShapeStruct
		rec.Members = describeMembers(ut, pkg.Types)

	case *types.Interface:
		rec.Shape = ShapeSum

	case *types.Array:
		rec.Shape = ShapeTuple

	default:
		rec.Shape = ShapeOther
	}

	return rec
}

// describeMembers extracts every declared member of a struct, in order.
// No member is filtered here.
func describeMembers(st *types.Struct, from *types.Package) []Member {
	members := make([]Member, 0, st.NumFields())

	for i := range st.NumFields() {
		field := st.Field(i)
		rendered, imports := renderType(field.Type(), from)

		members = append(members, Member{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     rendered,
			Imports:  imports,
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}

	return members
}

// renderType renders t as Go source relative to the package from and
// returns the packages the rendering refers to.
func renderType(t types.Type, from *types.Package) (string, []Import) {
	seen := make(map[string]Import)
	qualifier := func(p *types.Package) string {
		if p == nil || (from != nil && p.Path() == from.Path()) {
			return ""
		}

		seen[p.Path()] = Import{Path: p.Path(), Name: p.Name()}

		return p.Name()
	}

	rendered := types.TypeString(t, qualifier)

	if len(seen) == 0 {
		return rendered, nil
	}

	imports := make([]Import, 0, len(seen))
	for _, imp := range seen {
		imports = append(imports, imp)
	}

	sort.Slice(imports, func(i, j int) bool {
		return imports[i].Path < imports[j].Path
	})

	return rendered, imports
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}

	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}

	return ""
}

func position(fset *token.FileSet, pos token.Pos) string {
	p := fset.Position(pos)
	if !p.IsValid() {
		return ""
	}

	return fmt.Sprintf("%s:%d", filepath.Base(p.Filename), p.Line)
}
