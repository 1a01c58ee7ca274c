package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-updater/internal/analyze"
	"field-updater/internal/config"
	"field-updater/internal/selector"
)

func loadRecords(t *testing.T, pkg string) (*analyze.TypeGraph, []*analyze.Record) {
	t.Helper()

	graph, err := analyze.NewAnalyzer().LoadPackages(pkg)
	require.NoError(t, err)

	return graph, graph.Derived()
}

// typeCheck reloads pkg with the generated files in place of anything on disk.
func typeCheck(t *testing.T, pkg string, files []GeneratedFile) {
	t.Helper()

	overlay := make(map[string][]byte, len(files))
	for _, f := range files {
		overlay[f.Path()] = f.Content
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Overlay = overlay

	_, err := analyzer.LoadPackages(pkg)
	require.NoError(t, err, "generated code should type check")
}

func TestIntegration_Account(t *testing.T) {
	const pkg = "field-updater/examples/account"

	_, records := loadRecords(t, pkg)
	require.Len(t, records, 1)

	files, err := NewGenerator(DefaultGeneratorConfig()).GenerateAll(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, files, 1)

	typeCheck(t, pkg, files)

	// The committed helpers are what the generator produces today.
	committed, err := os.ReadFile(files[0].Path())
	require.NoError(t, err)
	assert.Equal(t, string(committed), string(files[0].Content))
}

func TestIntegration_StoreWithConfig(t *testing.T) {
	const pkg = "field-updater/examples/store"

	cfg, err := config.LoadFile(afero.NewOsFs(), filepath.Join("..", "..", "examples", "store", config.FileName))
	require.NoError(t, err)

	_, records := loadRecords(t, pkg)
	require.Len(t, records, 2)
	assert.Equal(t, "Product", records[0].Name())
	assert.Equal(t, "Customer", records[1].Name())

	files, err := NewGenerator(ConfigFrom(*cfg)).GenerateAll(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "product_fieldupdater.go", files[0].Filename)
	assert.Equal(t, "customer_fieldupdater.go", files[1].Filename)

	product := string(files[0].Content)
	assert.Contains(t, product, "\"field-updater/examples/sea\"")
	assert.Contains(t, product, `case "sku":`)
	assert.Contains(t, product, "return ProductColumnSku, true")
	assert.Contains(t, product, "model.SKU = sea.Set(f.Value)")
	assert.NotContains(t, product, "SearchRank")

	typeCheck(t, pkg, files)
}

func TestIntegration_StoreShadowedImport(t *testing.T) {
	cfg, err := config.LoadFile(afero.NewOsFs(), filepath.Join("..", "..", "examples", "store", config.FileName))
	require.NoError(t, err)

	cfg.Collaborators.ExprFunc = "model.Value"
	cfg.Collaborators.SetFunc = "model.Set"
	cfg.Collaborators.Imports = []string{"model field-updater/examples/sea"}

	_, records := loadRecords(t, "field-updater/examples/store")

	files, err := NewGenerator(ConfigFrom(*cfg)).GenerateAll(context.Background(), records)
	require.Error(t, err)
	assert.Nil(t, files)
	assert.Contains(t, err.Error(), "a local name of the generated methods")
}

func TestIntegration_ShapesAllOrNothing(t *testing.T) {
	graph, records := loadRecords(t, "field-updater/examples/shapes")
	require.Len(t, records, 2)

	files, err := NewGenerator(DefaultGeneratorConfig()).GenerateAll(context.Background(), records)
	require.ErrorIs(t, err, selector.ErrShape)
	assert.Nil(t, files)

	// The generic record alone still renders, without its skipped field's import.
	pair, err := graph.Find("Pair")
	require.NoError(t, err)

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pair[0])
	require.NoError(t, err)

	code := string(file.Content)
	assert.NotContains(t, code, "import")
	assert.Contains(t, code, "type PairFieldKey[K comparable, V any] struct {\n\tValue K\n}")
	assert.Contains(t, code, `case "label":`)
	assert.NotContains(t, code, "ttl")
}
