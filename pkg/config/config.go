// Package config provides configuration management for ideinfo.
// It supports multi-layer configuration with precedence:
//  1. Built-in defaults (lowest priority)
//  2. Global user config (~/.config/ideinfo/config.toml)
//  3. Project config (.ideinfo/config.toml or ideinfo.toml)
//  4. Environment variables (IDEINFO_*)
//  5. CLI flags (highest priority)
package config

import (
	"fmt"

	"github.com/albertocavalcante/ideinfo/pkg/ideinfo"
)

// Config is the main configuration struct for ideinfo.
type Config struct {
	// InputFormat is the encoding of messages read from files ("binary", "json", "text").
	InputFormat string `toml:"input_format"`

	// OutputFormat is the encoding of messages written to stdout.
	OutputFormat string `toml:"output_format"`

	// JSON configures json output.
	JSON JSONConfig `toml:"json"`

	// Log configures logging.
	Log LogConfig `toml:"log"`
}

// JSONConfig holds json output options.
type JSONConfig struct {
	// Multiline pretty-prints json and text output.
	Multiline *bool `toml:"multiline"`

	// UseProtoNames emits snake_case field names instead of camelCase.
	UseProtoNames *bool `toml:"use_proto_names"`

	// EmitUnpopulated emits fields holding default values.
	EmitUnpopulated *bool `toml:"emit_unpopulated"`
}

// LogConfig holds logging options.
type LogConfig struct {
	// Verbosity is the -v level (0=error .. 4=trace).
	Verbosity *int `toml:"verbosity"`

	// Format is the log format ("text" or "json").
	Format string `toml:"format"`
}

// NewConfig creates a new Config with built-in defaults.
func NewConfig() *Config {
	trueVal := true
	falseVal := false
	verbosity := 1
	return &Config{
		InputFormat:  string(ideinfo.FormatBinary),
		OutputFormat: string(ideinfo.FormatText),
		JSON: JSONConfig{
			Multiline:       &trueVal,
			UseProtoNames:   &falseVal,
			EmitUnpopulated: &falseVal,
		},
		Log: LogConfig{
			Verbosity: &verbosity,
			Format:    "text",
		},
	}
}

// Merge merges another config into this one (other takes precedence).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.InputFormat != "" {
		c.InputFormat = other.InputFormat
	}
	if other.OutputFormat != "" {
		c.OutputFormat = other.OutputFormat
	}

	if other.JSON.Multiline != nil {
		c.JSON.Multiline = other.JSON.Multiline
	}
	if other.JSON.UseProtoNames != nil {
		c.JSON.UseProtoNames = other.JSON.UseProtoNames
	}
	if other.JSON.EmitUnpopulated != nil {
		c.JSON.EmitUnpopulated = other.JSON.EmitUnpopulated
	}

	if other.Log.Verbosity != nil {
		c.Log.Verbosity = other.Log.Verbosity
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}

// Validate checks that formats name known encodings.
func (c *Config) Validate() error {
	if _, err := ideinfo.ParseFormat(c.InputFormat); err != nil {
		return fmt.Errorf("input_format: %w", err)
	}
	if _, err := ideinfo.ParseFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("output_format: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want text or json)", c.Log.Format)
	}
	return nil
}

// Input returns the parsed input format.
func (c *Config) Input() (ideinfo.Format, error) {
	return ideinfo.ParseFormat(c.InputFormat)
}

// MarshalOptions returns encoding options for output.
func (c *Config) MarshalOptions() (ideinfo.MarshalOptions, error) {
	format, err := ideinfo.ParseFormat(c.OutputFormat)
	if err != nil {
		return ideinfo.MarshalOptions{}, err
	}
	return ideinfo.MarshalOptions{
		Format:          format,
		Multiline:       isTrue(c.JSON.Multiline),
		UseProtoNames:   isTrue(c.JSON.UseProtoNames),
		EmitUnpopulated: isTrue(c.JSON.EmitUnpopulated),
	}, nil
}

// LogVerbosity returns the configured verbosity, defaulting to warnings.
func (c *Config) LogVerbosity() int {
	if c.Log.Verbosity == nil {
		return 1
	}
	return *c.Log.Verbosity
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
