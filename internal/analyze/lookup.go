package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"slices"
	"sort"
	"strings"

	"field-updater/internal/naming"
)

// DeriveDirective marks a type declaration for generation when no explicit
// type names are requested:
//
//	//field-updater:derive
//	type Account struct { ... }
const DeriveDirective = "//field-updater:derive"

// ErrTypeNotFound is returned when a requested type is not declared in any
// loaded package.
var ErrTypeNotFound = errors.New("type not found")

// hasDeriveDirective reports whether a doc comment group carries DeriveDirective.
// Directive comments are matched on their raw text, as ast.CommentGroup.Text
// drops them.
func hasDeriveDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		text := strings.TrimRight(c.Text, " \t")
		if text == DeriveDirective || strings.HasPrefix(text, DeriveDirective+" ") {
			return true
		}
	}

	return false
}

// Find returns the records named name, one per loaded package declaring it,
// ordered by package path. Unknown names produce ErrTypeNotFound with
// suggestions of similarly named types.
func (g *TypeGraph) Find(name string) ([]*Record, error) {
	var found []*Record

	for _, pkgPath := range g.sortedPackages() {
		if rec, ok := g.Records[TypeID{PkgPath: pkgPath, Name: name}]; ok {
			found = append(found, rec)
		}
	}

	if len(found) > 0 {
		return found, nil
	}

	var names []string
	for id := range g.Records {
		names = append(names, id.Name)
	}

	sort.Strings(names)
	names = slices.Compact(names)

	if suggestions := naming.Suggest(name, names, 3); len(suggestions) > 0 {
		return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrTypeNotFound, name, strings.Join(suggestions, ", "))
	}

	return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
}

// Derived returns every record whose declaration carries DeriveDirective,
// ordered by package path and then by source order.
func (g *TypeGraph) Derived() []*Record {
	var out []*Record

	for _, pkgPath := range g.sortedPackages() {
		for _, id := range g.Packages[pkgPath].Types {
			if rec := g.Records[id]; rec != nil && rec.Derive {
				out = append(out, rec)
			}
		}
	}

	return out
}

func (g *TypeGraph) sortedPackages() []string {
	paths := make([]string, 0, len(g.Packages))
	for p := range g.Packages {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}
