// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Config is the complete juris-curador configuration, loaded from
// juris-curador.yaml and the JURIS_CURADOR_* environment.
type Config struct {
	Directories     DirectoriesConfig    `json:"directories" yaml:"directories" mapstructure:"directories"`
	HighlightColors map[string][]float64 `json:"pdf_highlight_colors" yaml:"pdf_highlight_colors" mapstructure:"pdf_highlight_colors"`
	Output          OutputConfig         `json:"output_formats" yaml:"output_formats" mapstructure:"output_formats"`
	Logging         LoggingConfig        `json:"logging" yaml:"logging" mapstructure:"logging"`
	HTTP            HTTPConfig           `json:"http" yaml:"http" mapstructure:"http"`
	Locate          LocateConfig         `json:"locate" yaml:"locate" mapstructure:"locate"`
	Library         LibraryConfig        `json:"library" yaml:"library" mapstructure:"library"`
}

// DirectoriesConfig lists the working directories. Each is created on demand.
type DirectoriesConfig struct {
	// Download receives PDFs fetched by acquire.
	Download string `json:"download" yaml:"download" mapstructure:"download" validate:"required"`

	// AnnotatedPDFs receives highlight sidecars written by locate.
	AnnotatedPDFs string `json:"annotated_pdfs" yaml:"annotated_pdfs" mapstructure:"annotated_pdfs" validate:"required"`

	// ZoteroExports receives reference-manager JSON exports.
	ZoteroExports string `json:"zotero_exports" yaml:"zotero_exports" mapstructure:"zotero_exports" validate:"required"`

	// Logs receives the log file when file logging is enabled.
	Logs string `json:"logs" yaml:"logs" mapstructure:"logs" validate:"required"`
}

// All returns every configured directory.
func (d DirectoriesConfig) All() []string {
	return []string{d.Download, d.AnnotatedPDFs, d.ZoteroExports, d.Logs}
}

// OutputConfig holds output format settings.
type OutputConfig struct {
	// BibliographyStyle names the citation style. Only ABNT is implemented.
	BibliographyStyle string `json:"bibliography_style" yaml:"bibliography_style" mapstructure:"bibliography_style" validate:"oneof=ABNT"`

	// ZoteroJSONIndent is the indentation width of exported JSON.
	ZoteroJSONIndent int `json:"zotero_json_indent" yaml:"zotero_json_indent" mapstructure:"zotero_json_indent" validate:"gte=0,lte=8"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn warning error"`

	// Format is console (human readable) or json.
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=console json"`

	// File enables the log file in the logs directory.
	File bool `json:"file" yaml:"file" mapstructure:"file"`

	// Filename is the log file name inside the logs directory.
	Filename string `json:"filename" yaml:"filename" mapstructure:"filename" validate:"required_if=File true"`
}

// HTTPConfig holds shared HTTP settings used when downloading sources.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// UserAgent is sent with direct PDF downloads.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// DownloadDelay is the minimum spacing between consecutive downloads.
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay" mapstructure:"download_delay" validate:"gte=0"`
}

// LocateConfig tunes the citation locator.
type LocateConfig struct {
	// MinScore is the minimum token overlap (0-1) for a fallback match.
	MinScore float64 `json:"min_score" yaml:"min_score" mapstructure:"min_score" validate:"gt=0,lte=1"`
}

// LibraryConfig locates the SQLite library database.
type LibraryConfig struct {
	Path string `json:"path" yaml:"path" mapstructure:"path" validate:"required"`
}
