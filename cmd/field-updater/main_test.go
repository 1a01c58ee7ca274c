package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-updater/internal/config"
	"field-updater/internal/selector"
)

const (
	accountPkg = "field-updater/examples/account"
	shapesPkg  = "field-updater/examples/shapes"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd(fs)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func TestGenerate_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, _, err := run(t, fs, "generate", "--dry-run", accountPkg)
	require.NoError(t, err)

	assert.Contains(t, out, "// Code generated by field-updater. DO NOT EDIT.")
	assert.Contains(t, out, "func (Account) Str2Col(s string) (col Column, ok bool) {")
	assert.NotContains(t, out, "PasswordHash")

	files, err := afero.ReadDir(fs, "/")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGenerate_WritesFiles(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, _, err := run(t, fs, "generate", accountPkg)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote ")
	assert.Contains(t, out, "account_fieldupdater.go")

	path, err := filepath.Abs(filepath.Join("..", "..", "examples", "account", "account_fieldupdater.go"))
	require.NoError(t, err)

	written, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	committed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(committed), string(written))

	// A second run finds nothing to change.
	out, _, err = run(t, fs, "generate", accountPkg)
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged ")
}

func TestGenerate_MarkerGroupFlag(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "generate", "--dry-run", "--marker-group", "db", accountPkg)
	require.NoError(t, err)

	// struct_field markers are not skip markers under another group.
	assert.Contains(t, out, "type AccountFieldPasswordHash struct")
}

func TestGenerate_ShapeErrorWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, _, err := run(t, fs, "generate", shapesPkg)
	require.ErrorIs(t, err, selector.ErrShape)

	var count int
	require.NoError(t, afero.Walk(fs, "/", func(_ string, info os.FileInfo, _ error) error {
		if info != nil && !info.IsDir() {
			count++
		}

		return nil
	}))
	assert.Zero(t, count)
}

func TestGenerate_UnknownType(t *testing.T) {
	_, _, err := run(t, afero.NewMemMapFs(), "generate", "--type", "Acount", accountPkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean Account")
}

func TestGenerate_NoRecords(t *testing.T) {
	_, errOut, err := run(t, afero.NewMemMapFs(), "generate", "field-updater/examples/sea")
	require.NoError(t, err)
	assert.Contains(t, errOut, "no records found")
}

func TestInspect(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "inspect", "--type", "Account", accountPkg)
	require.NoError(t, err)

	assert.Contains(t, out, "user_name")
	assert.Contains(t, out, "UserName")
	assert.Contains(t, out, "unexported")
	assert.Contains(t, out, "[FU001]")
	assert.Contains(t, out, "[FU002]")
}

func TestInspect_ShapeErrors(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "inspect", shapesPkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 record(s)")
	assert.Contains(t, out, "is a sum type")
	assert.Contains(t, out, "label")
}

func TestInit(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, _, err := run(t, fs, "init", "--config", "/project/"+config.FileName)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote /project/"+config.FileName)

	cfg, err := config.LoadFile(fs, "/project/"+config.FileName)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)

	_, _, err = run(t, fs, "init", "--config", "/project/"+config.FileName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = run(t, fs, "init", "--force", "--config", "/project/"+config.FileName)
	require.NoError(t, err)
}

func TestInit_Interactive(t *testing.T) {
	answers := map[string]string{
		"Skip marker tag key": "db",
		"Column type":         "{{.Type}}Column",
		"Active model type":   "{{.Type}}Active",
	}

	old := ask
	t.Cleanup(func() { ask = old })

	ask = func(message, _, def string) (string, error) {
		if a, ok := answers[message]; ok {
			return a, nil
		}

		return def, nil
	}

	fs := afero.NewMemMapFs()

	_, _, err := run(t, fs, "init", "-i", "--config", "/p/"+config.FileName)
	require.NoError(t, err)

	cfg, err := config.LoadFile(fs, "/p/"+config.FileName)
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Marker.Group)
	assert.Equal(t, "{{.Type}}Column", cfg.Collaborators.ColumnType)
	assert.Equal(t, "{{.Type}}Active", cfg.Collaborators.ActiveModelType)
	assert.Equal(t, config.Default().Output.Suffix, cfg.Output.Suffix)

	answers["Output file suffix"] = ".txt"

	_, _, err = run(t, fs, "init", "-i", "-f", "--config", "/p/"+config.FileName)
	require.ErrorContains(t, err, "output.suffix")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "field-updater version ")
}

func TestGenerate_RequiredVersion(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("required_version: \">= 99.0\"\n"), 0o644))

	_, _, err := run(t, fs, "generate", "--dry-run", "--config", "/cfg.yaml", accountPkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not satisfy required version")
}
