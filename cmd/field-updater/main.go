// Package main provides the CLI entrypoint for field-updater.
//
// field-updater generates record update helpers for Go structs:
//   - Str2Col resolves a snake case field name to a column
//   - Field2CV turns a tagged field value into a column and value expression
//   - Fields2Active folds tagged field values into an active model
//
// Typical use is a go:generate directive in the package holding the records:
//
//	//go:generate go run field-updater/cmd/field-updater generate
package main

import (
	"context"
	"os"

	"github.com/spf13/afero"

	"field-updater/internal/ui"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).ExecuteContext(context.Background()); err != nil {
		ui.Error(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
