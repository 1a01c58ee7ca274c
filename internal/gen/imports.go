package gen

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"field-updater/internal/analyze"
)

// importSpec is one line of the generated import block.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the packages a generated file refers to.
// Package names must stay unique within one file.
type importSet struct {
	self   string
	byPath map[string]string // path -> name
	byName map[string]string // name -> path
}

func newImportSet(selfPath string) *importSet {
	return &importSet{
		self:   selfPath,
		byPath: make(map[string]string),
		byName: make(map[string]string),
	}
}

// add records imp. It fails when imp.Name is already used by another path.
func (s *importSet) add(imp analyze.Import) error {
	if imp.Path == "" || imp.Path == s.self {
		return nil
	}

	name := imp.Name
	if name == "" {
		name = path.Base(imp.Path)
	}

	if _, ok := s.byPath[imp.Path]; ok {
		return nil
	}

	if other, ok := s.byName[name]; ok {
		return fmt.Errorf("import name %q is used by both %q and %q", name, other, imp.Path)
	}

	s.byPath[imp.Path] = name
	s.byName[name] = imp.Path

	return nil
}

// addSpec records a configured import, "path" or "name path".
func (s *importSet) addSpec(spec string) error {
	fields := strings.Fields(spec)

	switch len(fields) {
	case 1:
		return s.add(analyze.Import{Path: strings.Trim(fields[0], `"`)})
	case 2:
		return s.add(analyze.Import{Name: fields[0], Path: strings.Trim(fields[1], `"`)})
	default:
		return fmt.Errorf("invalid import %q", spec)
	}
}

// specs returns the import lines sorted by path. An alias is only
// written when the package name differs from the last path element.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))

	for p, name := range s.byPath {
		spec := importSpec{Path: p}
		if name != path.Base(p) {
			spec.Alias = name
		}

		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}
