package gen

import (
	"fmt"

	"field-updater/internal/analyze"
	"field-updater/internal/naming"
	"field-updater/internal/selector"
)

// PlannedField is an eligible field together with its canonical names.
type PlannedField struct {
	selector.Field
	naming.CanonicalName
}

// PlanFields selects the eligible fields of rec and canonicalizes each
// name once. Every artifact of a record is rendered from this one slice.
//
// Two fields that canonicalize to the same name would produce duplicate
// cases and variants, so they are rejected.
func PlanFields(rec *analyze.Record, opts selector.Options) ([]PlannedField, error) {
	fields, err := selector.Select(rec, opts)
	if err != nil {
		return nil, err
	}

	planned := make([]PlannedField, 0, len(fields))
	seen := make(map[string]string, 2*len(fields))

	for _, f := range fields {
		cn := naming.Canonicalize(f.Name)
		if cn.TypeRef == "" {
			return nil, fmt.Errorf("%s: field %s has no canonical name", rec.ID, f.Name)
		}

		for _, name := range []string{"key " + cn.LookupKey, "ref " + cn.TypeRef} {
			if prev, ok := seen[name]; ok {
				return nil, fmt.Errorf("%s: fields %s and %s both canonicalize to %s",
					rec.ID, prev, f.Name, name)
			}

			seen[name] = f.Name
		}

		planned = append(planned, PlannedField{Field: f, CanonicalName: cn})
	}

	return planned, nil
}
