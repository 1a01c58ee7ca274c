package config

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file searched for by Load.
const FileName = ".field-updater.yaml"

// Config is the generator configuration.
type Config struct {
	Marker        Marker        `yaml:"marker" mapstructure:"marker"`
	Collaborators Collaborators `yaml:"collaborators" mapstructure:"collaborators"`
	Output        Output        `yaml:"output" mapstructure:"output"`

	// RequiredVersion constrains the generator version reading this file,
	// e.g. ">= 0.1". Empty accepts any version.
	RequiredVersion string `yaml:"required_version,omitempty" mapstructure:"required_version"`
}

// Marker configures the per-field skip marker.
type Marker struct {
	// Group is the struct tag key holding the skip item.
	Group string `yaml:"group" mapstructure:"group"`
}

// Collaborators names the externally provided types and functions the
// generated code refers to. Every value is a text/template evaluated per
// record with NameData.
type Collaborators struct {
	ColumnType      string   `yaml:"column_type" mapstructure:"column_type"`
	ColumnVariant   string   `yaml:"column_variant" mapstructure:"column_variant"`
	ExprType        string   `yaml:"expr_type" mapstructure:"expr_type"`
	ExprFunc        string   `yaml:"expr_func" mapstructure:"expr_func"`
	ActiveModelType string   `yaml:"active_model_type" mapstructure:"active_model_type"`
	ActiveModelCtor string   `yaml:"active_model_ctor" mapstructure:"active_model_ctor"`
	SetFunc         string   `yaml:"set_func" mapstructure:"set_func"`
	Imports         []string `yaml:"imports,omitempty" mapstructure:"imports"`
}

// Output configures where generated files go.
type Output struct {
	// Dir overrides the output directory; empty means the record's package directory.
	Dir string `yaml:"dir,omitempty" mapstructure:"dir"`
	// Suffix is appended to the snake form of the record name.
	Suffix string `yaml:"suffix" mapstructure:"suffix"`
}

// NameData is the data available to collaborator templates.
type NameData struct {
	Type     string // record name, e.g., "Account"
	TypeArgs string // type argument list, e.g., "[K, V]", empty if not generic
	Field    string // TypeRef of the field, only set for ColumnVariant
}

// Names holds collaborator names resolved for one record.
type Names struct {
	ColumnType      string
	ExprType        string
	ExprFunc        string
	ActiveModelType string
	ActiveModelCtor string
	SetFunc         string

	variant *template.Template
	data    NameData
}

// ColumnVariant returns the column variant for a field TypeRef.
func (n *Names) ColumnVariant(typeRef string) (string, error) {
	data := n.data
	data.Field = typeRef

	return execute(n.variant, data)
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Marker: Marker{
			Group: "struct_field",
		},
		Collaborators: DefaultCollaborators(),
		Output: Output{
			Suffix: "_fieldupdater.go",
		},
	}
}

// DefaultCollaborators returns the default collaborator names.
func DefaultCollaborators() Collaborators {
	return Collaborators{
		ColumnType:      "Column",
		ColumnVariant:   "Column{{.Field}}",
		ExprType:        "SimpleExpr",
		ExprFunc:        "Value",
		ActiveModelType: "ActiveModel",
		ActiveModelCtor: "NewActiveModel",
		SetFunc:         "Set",
	}
}

// Parse parses YAML data into a Config, applying defaults and validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile loads and parses a YAML config file.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(fs afero.Fs, cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// applyDefaults fills empty values with their defaults.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Marker.Group == "" {
		cfg.Marker.Group = def.Marker.Group
	}

	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = def.Output.Suffix
	}

	c := &cfg.Collaborators
	d := def.Collaborators

	for _, pair := range []struct {
		dst *string
		src string
	}{
		{&c.ColumnType, d.ColumnType},
		{&c.ColumnVariant, d.ColumnVariant},
		{&c.ExprType, d.ExprType},
		{&c.ExprFunc, d.ExprFunc},
		{&c.ActiveModelType, d.ActiveModelType},
		{&c.ActiveModelCtor, d.ActiveModelCtor},
		{&c.SetFunc, d.SetFunc},
	} {
		if strings.TrimSpace(*pair.dst) == "" {
			*pair.dst = pair.src
		}
	}
}

// Validate checks the marker group and parses every collaborator template.
func (c *Config) Validate() error {
	var errs []error

	if strings.ContainsAny(c.Marker.Group, " \t\":") {
		errs = append(errs, fmt.Errorf("marker.group %q is not a valid struct tag key", c.Marker.Group))
	}

	if !strings.HasSuffix(c.Output.Suffix, ".go") {
		errs = append(errs, fmt.Errorf("output.suffix %q must end in .go", c.Output.Suffix))
	}

	if c.RequiredVersion != "" {
		if _, err := goversion.NewConstraint(c.RequiredVersion); err != nil {
			errs = append(errs, fmt.Errorf("required_version: %w", err))
		}
	}

	sample := NameData{Type: "Record", TypeArgs: "[T]", Field: "Field"}

	for _, t := range c.Collaborators.templates() {
		tmpl, err := parse(t.key, t.text)
		if err == nil {
			_, err = execute(tmpl, sample)
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("collaborators.%s: %w", t.key, err))
		}
	}

	return errors.Join(errs...)
}

// Resolve evaluates the collaborator templates for one record.
func (c Collaborators) Resolve(data NameData) (*Names, error) {
	names := &Names{data: data}

	targets := map[string]*string{
		"column_type":       &names.ColumnType,
		"expr_type":         &names.ExprType,
		"expr_func":         &names.ExprFunc,
		"active_model_type": &names.ActiveModelType,
		"active_model_ctor": &names.ActiveModelCtor,
		"set_func":          &names.SetFunc,
	}

	for _, t := range c.templates() {
		tmpl, err := parse(t.key, t.text)
		if err != nil {
			return nil, fmt.Errorf("collaborators.%s: %w", t.key, err)
		}

		if t.key == "column_variant" {
			names.variant = tmpl
			continue
		}

		value, err := execute(tmpl, data)
		if err != nil {
			return nil, fmt.Errorf("collaborators.%s: %w", t.key, err)
		}

		*targets[t.key] = value
	}

	return names, nil
}

type namedTemplate struct {
	key  string
	text string
}

func (c Collaborators) templates() []namedTemplate {
	return []namedTemplate{
		{"column_type", c.ColumnType},
		{"column_variant", c.ColumnVariant},
		{"expr_type", c.ExprType},
		{"expr_func", c.ExprFunc},
		{"active_model_type", c.ActiveModelType},
		{"active_model_ctor", c.ActiveModelCtor},
		{"set_func", c.SetFunc},
	}
}

func parse(name, text string) (*template.Template, error) {
	return template.New(name).Option("missingkey=error").Parse(text)
}

func execute(tmpl *template.Template, data NameData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}

	return strings.TrimSpace(sb.String()), nil
}
