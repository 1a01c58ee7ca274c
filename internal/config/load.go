package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"field-updater/internal/debug"
)

// EnvPrefix prefixes environment overrides, e.g., FIELD_UPDATER_MARKER_GROUP.
const EnvPrefix = "FIELD_UPDATER"

// Load resolves the configuration from, in increasing priority: defaults,
// the config file, .env and environment variables, and flags already bound
// to v. An empty path searches for FileName in the working directory and in
// ~/.config/field-updater; a missing file is not an error then.
func Load(v *viper.Viper, fs afero.Fs, path string) (*Config, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	loadDotEnv(fs)
	setDefaults(v)

	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "field-updater"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		debug.Debug("no config file found, using defaults")
	} else {
		debug.Debug("config file loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// flagKeys maps command line flags to the keys they override.
var flagKeys = []struct {
	flag, key, usage string
}{
	{"marker-group", "marker.group", "struct tag key of the skip marker (default \"struct_field\")"},
	{"output-dir", "output.dir", "write generated files here instead of the package directory"},
}

// AddFlags registers the config overriding flags on flags and binds them
// to v. A flag only wins over the file and environment when it is set.
func AddFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for _, f := range flagKeys {
		flags.String(f.flag, "", f.usage)
		_ = v.BindPFlag(f.key, flags.Lookup(f.flag))
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("marker.group", def.Marker.Group)
	v.SetDefault("collaborators.column_type", def.Collaborators.ColumnType)
	v.SetDefault("collaborators.column_variant", def.Collaborators.ColumnVariant)
	v.SetDefault("collaborators.expr_type", def.Collaborators.ExprType)
	v.SetDefault("collaborators.expr_func", def.Collaborators.ExprFunc)
	v.SetDefault("collaborators.active_model_type", def.Collaborators.ActiveModelType)
	v.SetDefault("collaborators.active_model_ctor", def.Collaborators.ActiveModelCtor)
	v.SetDefault("collaborators.set_func", def.Collaborators.SetFunc)
	v.SetDefault("collaborators.imports", []string{})
	v.SetDefault("output.dir", def.Output.Dir)
	v.SetDefault("output.suffix", def.Output.Suffix)
	v.SetDefault("required_version", "")
}

// loadDotEnv loads .env, then .env.local with higher priority, when present.
func loadDotEnv(fs afero.Fs) {
	if _, err := fs.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			debug.Warn("failed to load .env", "error", err)
		}
	}

	if _, err := fs.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			debug.Warn("failed to load .env.local", "error", err)
		}
	}
}
