// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads, validates, and scaffolds the juris-curador
// configuration. Values come from viper (config file, JURIS_CURADOR_*
// environment) layered over the defaults registered here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// FileName is the config file name without extension.
const FileName = "juris-curador"

// EnvPrefix prefixes environment overrides, e.g. JURIS_CURADOR_LOGGING_LEVEL.
const EnvPrefix = "JURIS_CURADOR"

// ErrExists is returned by WriteTemplate when the target already exists.
var ErrExists = errors.New("config file already exists")

// Default returns the built-in configuration.
func Default() types.Config {
	return types.Config{
		Directories: types.DirectoriesConfig{
			Download:      "juris_downloads",
			AnnotatedPDFs: "juris_annotated",
			ZoteroExports: "juris_zotero_exports",
			Logs:          "juris_logs",
		},
		HighlightColors: map[string][]float64{
			types.CategoryPrimary:   {1, 1, 0},
			types.CategorySecondary: {0, 1, 1},
			types.CategoryFallback:  {0.8, 0.2, 0.8},
		},
		Output: types.OutputConfig{
			BibliographyStyle: "ABNT",
			ZoteroJSONIndent:  4,
		},
		Logging: types.LoggingConfig{
			Level:    "info",
			Format:   "console",
			File:     true,
			Filename: "juris_curador.log",
		},
		HTTP: types.HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "juris-curador/0.1",
			DownloadDelay: time.Second,
		},
		Locate: types.LocateConfig{
			MinScore: 0.6,
		},
		Library: types.LibraryConfig{
			Path: "juris_library.db",
		},
	}
}

// SetDefaults registers Default with v so that partial config files and
// environment overrides merge over it.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("directories.download", d.Directories.Download)
	v.SetDefault("directories.annotated_pdfs", d.Directories.AnnotatedPDFs)
	v.SetDefault("directories.zotero_exports", d.Directories.ZoteroExports)
	v.SetDefault("directories.logs", d.Directories.Logs)
	for name, c := range d.HighlightColors {
		v.SetDefault("pdf_highlight_colors."+name, c)
	}
	v.SetDefault("output_formats.bibliography_style", d.Output.BibliographyStyle)
	v.SetDefault("output_formats.zotero_json_indent", d.Output.ZoteroJSONIndent)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.filename", d.Logging.Filename)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.download_delay", d.HTTP.DownloadDelay)
	v.SetDefault("locate.min_score", d.Locate.MinScore)
	v.SetDefault("library.path", d.Library.Path)
}

// Load decodes the configuration held by v and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its field constraints.
func Validate(cfg types.Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// WriteTemplate writes the default configuration as YAML to path. It
// refuses to replace an existing file unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling config template: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}

// EnsureDirectories creates every configured working directory.
func EnsureDirectories(cfg types.Config) error {
	for _, dir := range cfg.Directories.All() {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// NewViper returns a viper instance with defaults registered, environment
// overrides enabled, and the config file read. An explicit cfgFile must
// exist; otherwise juris-curador.yaml is searched for in the working
// directory and ~/.config/juris-curador/, and its absence is not an error.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}
