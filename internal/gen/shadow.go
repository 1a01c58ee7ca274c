package gen

import (
	"fmt"
	"slices"
	"unicode"

	"field-updater/internal/analyze"
)

// checkShadowing rejects collaborator names and type parameters that the
// locals of the generated methods would hide. A collaborator "model.Set"
// inside Fields2Active would otherwise resolve model to the active model.
func checkShadowing(rec *analyze.Record, data *templateData) error {
	for _, tp := range rec.TypeParams {
		if slices.Contains(localNames, tp.Name) {
			return fmt.Errorf("type parameter %s is shadowed by a local of the generated methods, rename it", tp.Name)
		}
	}

	names := []struct{ key, value string }{
		{"column_type", data.ColumnType},
		{"expr_type", data.ExprType},
		{"expr_func", data.ExprFunc},
		{"active_model_type", data.ActiveModelType},
		{"active_model_ctor", data.ActiveModelCtor},
		{"set_func", data.SetFunc},
	}

	for _, f := range data.Fields {
		names = append(names, struct{ key, value string }{"column_variant", f.Column})
	}

	for _, n := range names {
		if ident := leadingIdent(n.value); slices.Contains(localNames, ident) {
			return fmt.Errorf("collaborators.%s: %q starts with %s, a local name of the generated methods; import the package under another name",
				n.key, n.value, ident)
		}
	}

	return nil
}

// leadingIdent returns the identifier s starts with: the package
// qualifier of "sea.Set", or the whole name of "Set".
func leadingIdent(s string) string {
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return s[:i]
		}
	}

	return s
}
