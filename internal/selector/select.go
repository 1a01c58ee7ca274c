package selector

import (
	"errors"
	"fmt"

	"field-updater/internal/analyze"
	"field-updater/internal/diagnostic"
)

// ErrShape is matched by every ShapeError.
var ErrShape = errors.New("unsupported record shape")

// ShapeError reports a record that is not a struct of named members.
type ShapeError struct {
	Type  analyze.TypeID
	Shape analyze.Shape
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s is a %s type, update helpers need a struct with named fields",
		ErrShape, e.Type, e.Shape)
}

// Unwrap returns ErrShape.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// Field is a member that survived selection.
type Field struct {
	Name     string           // declared name
	Exported bool             // visibility, kept but never used as a filter
	Type     string           // rendered value type
	Imports  []analyze.Import // packages referenced by Type
	Index    int              // index in the record's member list
}

// Options configures Select.
type Options struct {
	// Group is the marker group key; DefaultGroup when empty.
	Group string
	// Diagnostics, when set, receives a note for every excluded member.
	Diagnostics *diagnostic.Diagnostics
}

// Select returns the eligible fields of rec in declaration order.
// It fails with a *ShapeError unless rec is a struct with members.
func Select(rec *analyze.Record, opts Options) ([]Field, error) {
	if err := CheckShape(rec); err != nil {
		return nil, err
	}

	group := opts.Group
	if group == "" {
		group = DefaultGroup
	}

	fields := make([]Field, 0, len(rec.Members))

	for i := range rec.Members {
		m := &rec.Members[i]

		if HasSkipMarker(m.Tag, group) {
			note(opts.Diagnostics, diagnostic.CodeSkipped,
				fmt.Sprintf("skipped by %s:%q", group, SkipToken), rec, m)

			continue
		}

		if !m.HasName() {
			note(opts.Diagnostics, diagnostic.CodeUnnamed,
				"member has no accessible name", rec, m)

			continue
		}

		fields = append(fields, Field{
			Name:     m.Name,
			Exported: m.Exported,
			Type:     m.Type,
			Imports:  m.Imports,
			Index:    m.Index,
		})
	}

	if len(fields) == 0 && opts.Diagnostics != nil {
		opts.Diagnostics.AddWarning(diagnostic.CodeNoFields,
			"no eligible fields, generated helpers will be empty", rec.Name(), "")
	}

	return fields, nil
}

// CheckShape fails with a *ShapeError unless rec is a struct with members.
func CheckShape(rec *analyze.Record) error {
	if rec.Shape != analyze.ShapeStruct {
		return &ShapeError{Type: rec.ID, Shape: rec.Shape}
	}

	return nil
}

func note(d *diagnostic.Diagnostics, code, msg string, rec *analyze.Record, m *analyze.Member) {
	if d == nil {
		return
	}

	name := m.Name
	if m.Embedded {
		name = "(embedded " + m.Type + ")"
	}

	d.AddInfo(code, msg, rec.Name(), name)
}
