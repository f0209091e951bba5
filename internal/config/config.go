// Package config holds the formatter settings, their validation and the
// loaders for .nufmt.toml / .nufmt.yaml files.
package config

import (
	"fmt"
	"strings"
)

// QuoteStyle selects how string literal quotes are normalized.
type QuoteStyle string

const (
	QuotePreserve QuoteStyle = "preserve"
	QuoteDouble   QuoteStyle = "double"
	QuoteSingle   QuoteStyle = "single"
)

// BracketSpacing selects the padding inside inline lists and records.
type BracketSpacing string

const (
	BracketSpaced  BracketSpacing = "spaced"
	BracketCompact BracketSpacing = "compact"
)

// TrailingComma selects comma placement in multiline lists and records.
type TrailingComma string

const (
	TrailingAlways TrailingComma = "always"
	TrailingNever  TrailingComma = "never"
)

const (
	MinIndentWidth = 1
	MaxIndentWidth = 16
	MinMaxWidth    = 20
	MaxMaxWidth    = 500
)

// Config is immutable for the duration of a run; pass it by value.
type Config struct {
	IndentWidth    int            `toml:"indent_width" yaml:"indent_width"`
	MaxWidth       int            `toml:"max_width" yaml:"max_width"`
	QuoteStyle     QuoteStyle     `toml:"quote_style" yaml:"quote_style"`
	BracketSpacing BracketSpacing `toml:"bracket_spacing" yaml:"bracket_spacing"`
	TrailingComma  TrailingComma  `toml:"trailing_comma" yaml:"trailing_comma"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		IndentWidth:    2,
		MaxWidth:       100,
		QuoteStyle:     QuoteDouble,
		BracketSpacing: BracketSpaced,
		TrailingComma:  TrailingAlways,
	}
}

// ConfigError reports one field outside its valid range.
type ConfigError struct {
	Field string
	Value any
	Valid string // "between 1 and 16" or "one of a, b"
}

func (e *ConfigError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("%s must be %s, got %q", e.Field, e.Valid, s)
	}
	return fmt.Sprintf("%s must be %s, got %v", e.Field, e.Valid, e.Value)
}

// Validate returns c unchanged when every field is in range. Values are never
// clamped.
func (c Config) Validate() (Config, error) {
	if c.IndentWidth < MinIndentWidth || c.IndentWidth > MaxIndentWidth {
		return c, rangeError("indent_width", c.IndentWidth, MinIndentWidth, MaxIndentWidth)
	}
	if c.MaxWidth < MinMaxWidth || c.MaxWidth > MaxMaxWidth {
		return c, rangeError("max_width", c.MaxWidth, MinMaxWidth, MaxMaxWidth)
	}
	if err := oneOf("quote_style", string(c.QuoteStyle), QuotePreserve, QuoteDouble, QuoteSingle); err != nil {
		return c, err
	}
	if err := oneOf("bracket_spacing", string(c.BracketSpacing), BracketSpaced, BracketCompact); err != nil {
		return c, err
	}
	if err := oneOf("trailing_comma", string(c.TrailingComma), TrailingAlways, TrailingNever); err != nil {
		return c, err
	}
	return c, nil
}

// Fingerprint identifies the formatting behaviour of c, for caches.
func (c Config) Fingerprint() string {
	return fmt.Sprintf("i%d/w%d/%s/%s/%s", c.IndentWidth, c.MaxWidth, c.QuoteStyle, c.BracketSpacing, c.TrailingComma)
}

func rangeError(field string, v, lo, hi int) *ConfigError {
	return &ConfigError{Field: field, Value: v, Valid: fmt.Sprintf("between %d and %d", lo, hi)}
}

func oneOf[T ~string](field, v string, allowed ...T) error {
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		if string(a) == v {
			return nil
		}
		names = append(names, string(a))
	}
	return &ConfigError{Field: field, Value: v, Valid: "one of " + strings.Join(names, ", ")}
}
