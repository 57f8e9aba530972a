// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Storage backends.
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Storage
	Store       string `json:"store,omitempty"`        // file, memory, postgres or s3
	DataDir     string `json:"data_dir,omitempty"`     // Directory for the file store
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	S3Bucket    string `json:"s3_bucket,omitempty"`    // Bucket for the s3 store
	S3Prefix    string `json:"s3_prefix,omitempty"`    // Object key prefix
	S3Region    string `json:"s3_region,omitempty"`    // AWS region
	S3Endpoint  string `json:"s3_endpoint,omitempty"`  // Custom endpoint (MinIO, localstack)
	S3AccessKey string `json:"s3_access_key,omitempty"` // Static credentials; default AWS chain when empty
	S3SecretKey string `json:"s3_secret_key,omitempty"`

	// Rendering
	Template      string `json:"template,omitempty"`       // Initial template (modern or classic)
	LaTeXTemplate string `json:"latex_template,omitempty"` // Path to a custom LaTeX template

	// Export
	OutDir               string `json:"out_dir,omitempty"`                // Directory exported PDFs are written to
	PageFormat           string `json:"page_format,omitempty"`            // A4 or Letter
	ViewportWidth        int    `json:"viewport_width,omitempty"`         // Browser viewport width in px
	ChromeTimeoutSeconds int    `json:"chrome_timeout_seconds,omitempty"` // Headless browser timeout

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Store:                StoreFile,
		DataDir:              ".resume",
		S3Prefix:             "resume-builder",
		Template:             string(types.DefaultTemplate),
		OutDir:               ".",
		PageFormat:           "A4",
		ViewportWidth:        800,
		ChromeTimeoutSeconds: 30,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Empty fields are allowed; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	switch c.Store {
	case "", StoreFile, StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	case StoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("config error: 's3_bucket' is required for the s3 store")
		}
		if (c.S3AccessKey == "") != (c.S3SecretKey == "") {
			return fmt.Errorf("config error: 's3_access_key' and 's3_secret_key' must be set together")
		}
	default:
		return fmt.Errorf("config error: unknown store %q (want file, memory, postgres or s3)", c.Store)
	}

	if c.Template != "" {
		if _, ok := types.ParseTemplate(c.Template); !ok {
			return fmt.Errorf("config error: unknown template %q", c.Template)
		}
	}

	if c.PageFormat != "" && !strings.EqualFold(c.PageFormat, "A4") && !strings.EqualFold(c.PageFormat, "Letter") {
		return fmt.Errorf("config error: 'page_format' must be A4 or Letter")
	}

	// Validate numeric ranges
	if c.ViewportWidth < 0 {
		return fmt.Errorf("config error: 'viewport_width' must be non-negative")
	}
	if c.ChromeTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'chrome_timeout_seconds' must be non-negative")
	}

	if c.LaTeXTemplate != "" {
		if _, err := os.Stat(c.LaTeXTemplate); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.LaTeXTemplate)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.S3Bucket == "" {
		result.S3Bucket = defaults.S3Bucket
	}
	if result.S3Prefix == "" {
		result.S3Prefix = defaults.S3Prefix
	}
	if result.S3Region == "" {
		result.S3Region = defaults.S3Region
	}
	if result.S3Endpoint == "" {
		result.S3Endpoint = defaults.S3Endpoint
	}
	if result.S3AccessKey == "" && result.S3SecretKey == "" {
		result.S3AccessKey = defaults.S3AccessKey
		result.S3SecretKey = defaults.S3SecretKey
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.LaTeXTemplate == "" {
		result.LaTeXTemplate = defaults.LaTeXTemplate
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.PageFormat == "" {
		result.PageFormat = defaults.PageFormat
	}

	// Int fields: use default if zero
	if result.ViewportWidth == 0 {
		result.ViewportWidth = defaults.ViewportWidth
	}
	if result.ChromeTimeoutSeconds == 0 {
		result.ChromeTimeoutSeconds = defaults.ChromeTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
