package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"field-updater/internal/analyze"
	"field-updater/internal/config"
	"field-updater/internal/debug"
	"field-updater/internal/diagnostic"
	"field-updater/internal/naming"
	"field-updater/internal/selector"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// MarkerGroup is the struct tag key holding the skip marker.
	MarkerGroup string
	// Collaborators names the column, expression and active model API.
	Collaborators config.Collaborators
	// FileSuffix is appended to the snake case record name.
	FileSuffix string
	// OutputDir overrides the output directory. Empty means the record's
	// package directory.
	OutputDir string
	// Fs receives the unformatted sidecar when formatting fails.
	// Nil disables the sidecar.
	Fs afero.Fs
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return ConfigFrom(config.Default())
}

// ConfigFrom builds a GeneratorConfig from a loaded configuration.
func ConfigFrom(cfg config.Config) GeneratorConfig {
	return GeneratorConfig{
		MarkerGroup:   cfg.Marker.Group,
		Collaborators: cfg.Collaborators,
		FileSuffix:    cfg.Output.Suffix,
		OutputDir:     cfg.Output.Dir,
	}
}

// Generator renders update helpers for record types.
type Generator struct {
	config GeneratorConfig

	mu    sync.Mutex
	diags diagnostic.Diagnostics
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.FileSuffix == "" {
		cfg.FileSuffix = DefaultGeneratorConfig().FileSuffix
	}

	return &Generator{config: cfg}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Record is the type the file was generated for.
	Record analyze.TypeID
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "account_fieldupdater.go").
	Filename string
	// Package is the package clause of the file.
	Package string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full output path of the file.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Diagnostics returns the diagnostics collected so far.
func (g *Generator) Diagnostics() diagnostic.Diagnostics {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.diags
}

// Generate renders the update helpers of one record.
func (g *Generator) Generate(rec *analyze.Record) (*GeneratedFile, error) {
	var diags diagnostic.Diagnostics

	file, err := g.generate(rec, &diags)

	g.mu.Lock()
	g.diags.Merge(diags)
	g.mu.Unlock()

	return file, err
}

// GenerateAll renders every record concurrently. Files are returned in the
// order of records. If any record fails, no file is returned.
func (g *Generator) GenerateAll(ctx context.Context, records []*analyze.Record) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, len(records))
	diags := make([]diagnostic.Diagnostics, len(records))

	eg, ctx := errgroup.WithContext(ctx)

	for i, rec := range records {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			file, err := g.generate(rec, &diags[i])
			if err != nil {
				return err
			}

			files[i] = *file

			return nil
		})
	}

	err := eg.Wait()

	g.mu.Lock()
	for _, d := range diags {
		g.diags.Merge(d)
	}
	g.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if err := checkOutputs(files); err != nil {
		return nil, err
	}

	return files, nil
}

// checkOutputs fails when two files share a path, or when one directory
// would receive files of different packages. Both happen only when
// output.dir gathers records of several packages.
func checkOutputs(files []GeneratedFile) error {
	byPath := make(map[string]analyze.TypeID, len(files))
	byDir := make(map[string]GeneratedFile, len(files))

	for _, f := range files {
		if other, ok := byPath[f.Path()]; ok {
			return fmt.Errorf("%s and %s both generate %s", other, f.Record, f.Path())
		}

		byPath[f.Path()] = f.Record

		if other, ok := byDir[f.Dir]; ok && other.Package != f.Package {
			return fmt.Errorf("%s (package %s) and %s (package %s) cannot share output directory %s",
				other.Record, other.Package, f.Record, f.Package, f.Dir)
		}

		byDir[f.Dir] = f
	}

	return nil
}

func (g *Generator) generate(rec *analyze.Record, diags *diagnostic.Diagnostics) (*GeneratedFile, error) {
	log := debug.With("type", rec.ID.String())

	fields, err := PlanFields(rec, selector.Options{
		Group:       g.config.MarkerGroup,
		Diagnostics: diags,
	})
	if err != nil {
		return nil, err
	}

	data, err := g.buildTemplateData(rec, fields)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", rec.ID, err)
	}

	file := &GeneratedFile{
		Record:   rec.ID,
		Dir:      g.outputDir(rec),
		Filename: data.Filename,
		Package:  data.PackageName,
	}

	var buf bytes.Buffer
	if err := updaterTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("generating %s: executing template: %w", rec.ID, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		log.Warn("generated code does not format", "error", err)

		if g.config.Fs != nil {
			writeSidecar(g.config.Fs, file, buf.Bytes())
		}

		return nil, fmt.Errorf("generating %s: formatting code: %w", rec.ID, err)
	}

	file.Content = formatted

	log.Debug("record generated", "fields", len(fields), "file", file.Filename)

	return file, nil
}

// buildTemplateData resolves collaborator names and imports for rec.
func (g *Generator) buildTemplateData(rec *analyze.Record, fields []PlannedField) (*templateData, error) {
	names, err := g.config.Collaborators.Resolve(config.NameData{
		Type:     rec.Name(),
		TypeArgs: rec.TypeArgs(),
	})
	if err != nil {
		return nil, err
	}

	imports := newImportSet(rec.ID.PkgPath)

	for _, tp := range rec.TypeParams {
		for _, imp := range tp.Imports {
			if err := imports.add(imp); err != nil {
				return nil, err
			}
		}
	}

	for _, spec := range g.config.Collaborators.Imports {
		if err := imports.addSpec(spec); err != nil {
			return nil, err
		}
	}

	data := &templateData{
		PackageName:     rec.PkgName,
		Filename:        g.filename(rec),
		Type:            rec.Name(),
		TypeParams:      rec.TypeParamsDecl(),
		TypeArgs:        rec.TypeArgs(),
		FieldType:       rec.Name() + "Field",
		ColumnType:      names.ColumnType,
		ExprType:        names.ExprType,
		ExprFunc:        names.ExprFunc,
		ActiveModelType: names.ActiveModelType,
		ActiveModelCtor: names.ActiveModelCtor,
		SetFunc:         names.SetFunc,
		Fields:          make([]fieldData, 0, len(fields)),
	}

	for _, f := range fields {
		for _, imp := range f.Imports {
			if err := imports.add(imp); err != nil {
				return nil, err
			}
		}

		column, err := names.ColumnVariant(f.TypeRef)
		if err != nil {
			return nil, fmt.Errorf("collaborators.column_variant: %w", err)
		}

		data.Fields = append(data.Fields, fieldData{
			Name:      f.Name,
			LookupKey: f.LookupKey,
			TypeRef:   f.TypeRef,
			Variant:   data.FieldType + f.TypeRef,
			Column:    column,
			ValueType: f.Type,
		})
	}

	if err := checkShadowing(rec, data); err != nil {
		return nil, err
	}

	data.Imports = imports.specs()

	return data, nil
}

func (g *Generator) outputDir(rec *analyze.Record) string {
	if g.config.OutputDir != "" {
		return g.config.OutputDir
	}

	return rec.Dir
}

// filename returns e.g. "account_fieldupdater.go" for Account.
func (g *Generator) filename(rec *analyze.Record) string {
	return naming.ToNormalIdent(rec.Name()) + g.config.FileSuffix
}
