// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/usage-stats/internal/fetch"
	"gopkg.in/yaml.v3"
)

var (
	// periodRegex matches report periods such as "2025-04" or "2024-12-DLC1"
	periodRegex = regexp.MustCompile(`^\d{4}-\d{2}(-[A-Za-z0-9]+)?$`)
	// formatRegex matches format identifiers such as "gen9ou"
	formatRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional in the file; missing values use defaults or CLI flags.
type Config struct {
	// Period is the report month, e.g. 2025-04
	Period string `json:"period,omitempty" yaml:"period,omitempty" validate:"required,period"`
	// Format is the primary format, e.g. gen9ou
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"required,format"`
	// Rating is the rating cutoff of the reports, e.g. 0 or 1500
	Rating int `json:"rating,omitempty" yaml:"rating,omitempty" validate:"gte=0"`
	// Fallbacks are lower-priority formats, each "format" or "format:rating"
	Fallbacks []string `json:"fallbacks,omitempty" yaml:"fallbacks,omitempty" validate:"dive,required,fallback"`
	// BaseURL is the root of the stats server
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"required,http_url"`

	// Output is the path of the JSON array to write
	Output string `json:"output,omitempty" yaml:"output,omitempty" validate:"required"`
	// Limit caps the ranking rows read; 0 reads all
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty" validate:"gte=0"`

	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0"`
	LogLevel       string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN WARNING ERROR debug info warn warning error"`
	LogFile        string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	Verbose        bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Period:         "2025-04",
		Format:         "gen9ou",
		Rating:         0,
		BaseURL:        fetch.DefaultBaseURL,
		Output:         "data/usage.json",
		TimeoutSeconds: int(fetch.DefaultTimeout / time.Second),
		LogLevel:       "INFO",
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml.
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Period == "" {
		result.Period = defaults.Period
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}

	// Int fields: use default if zero
	if result.Rating == 0 {
		result.Rating = defaults.Rating
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	if len(result.Fallbacks) == 0 {
		result.Fallbacks = defaults.Fallbacks
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return fetch.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Reports returns the reports to fetch in priority order: the primary format
// first, then each fallback.
func (c *Config) Reports() ([]fetch.ReportID, error) {
	reports := []fetch.ReportID{{Period: c.Period, Format: c.Format, Rating: c.Rating}}
	for _, fb := range c.Fallbacks {
		format, rating, err := ParseFallback(fb, c.Rating)
		if err != nil {
			return nil, err
		}
		reports = append(reports, fetch.ReportID{Period: c.Period, Format: format, Rating: rating})
	}
	return reports, nil
}

// ParseFallback parses "format" or "format:rating". A missing rating uses defaultRating.
func ParseFallback(s string, defaultRating int) (string, int, error) {
	format, ratingStr, hasRating := strings.Cut(strings.TrimSpace(s), ":")
	if format == "" {
		return "", 0, fmt.Errorf("invalid fallback %q: empty format", s)
	}
	if !hasRating {
		return format, defaultRating, nil
	}
	rating, err := strconv.Atoi(ratingStr)
	if err != nil || rating < 0 {
		return "", 0, fmt.Errorf("invalid fallback %q: rating must be a non-negative integer", s)
	}
	return format, rating, nil
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

// FieldError is a single failed constraint.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "config error: " + strings.Join(parts, "; ")
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := newValidator()

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("config error: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}
	return out
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		return periodRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("format", func(fl validator.FieldLevel) bool {
		return formatRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("fallback", func(fl validator.FieldLevel) bool {
		_, _, err := ParseFallback(fl.Field().String(), 0)
		return err == nil
	})
	return validate
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "period":
		return fmt.Sprintf("%q is not a period like 2025-04", fe.Value())
	case "fallback":
		return fmt.Sprintf("%q is not \"format\" or \"format:rating\"", fe.Value())
	case "http_url":
		return fmt.Sprintf("%q is not an http(s) URL", fe.Value())
	case "gte":
		return "must be non-negative"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "format":
		return fmt.Sprintf("%q is not a format identifier like gen9ou", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
