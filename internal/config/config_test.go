package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Default().Validate()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.IndentWidth)
	assert.Equal(t, 100, cfg.MaxWidth)
	assert.Equal(t, QuoteDouble, cfg.QuoteStyle)
	assert.Equal(t, BracketSpaced, cfg.BracketSpacing)
	assert.Equal(t, TrailingAlways, cfg.TrailingComma)
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"indent min", func(c *Config) { c.IndentWidth = 1 }, ""},
		{"indent max", func(c *Config) { c.IndentWidth = 16 }, ""},
		{"indent zero", func(c *Config) { c.IndentWidth = 0 }, "indent_width must be between 1 and 16, got 0"},
		{"indent over", func(c *Config) { c.IndentWidth = 17 }, "indent_width must be between 1 and 16, got 17"},
		{"width min", func(c *Config) { c.MaxWidth = 20 }, ""},
		{"width max", func(c *Config) { c.MaxWidth = 500 }, ""},
		{"width under", func(c *Config) { c.MaxWidth = 19 }, "max_width must be between 20 and 500, got 19"},
		{"width over", func(c *Config) { c.MaxWidth = 501 }, "max_width must be between 20 and 500, got 501"},
		{"quote", func(c *Config) { c.QuoteStyle = "fancy" }, `quote_style must be one of preserve, double, single, got "fancy"`},
		{"spacing", func(c *Config) { c.BracketSpacing = "" }, `bracket_spacing must be one of spaced, compact, got ""`},
		{"comma", func(c *Config) { c.TrailingComma = "sometimes" }, `trailing_comma must be one of always, never, got "sometimes"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			got, err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, cfg, got, "valid config must come back unchanged")
				return
			}
			require.Error(t, err)
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, cfg, got, "values are never clamped")
		})
	}
}

func TestParseTOML(t *testing.T) {
	cfg, err := Parse([]byte("indent_width = 4\nquote_style = \"single\"\n"), ".toml")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.IndentWidth)
	assert.Equal(t, QuoteSingle, cfg.QuoteStyle)
	assert.Equal(t, 100, cfg.MaxWidth, "missing keys keep defaults")

	_, err = Parse([]byte("indent = 4\n"), ".toml")
	require.ErrorContains(t, err, "unknown key(s): indent")

	_, err = Parse([]byte("max_width = 5\n"), ".toml")
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "max_width", cerr.Field)
}

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte("bracket_spacing: compact\ntrailing_comma: never\n"), ".yml")
	require.NoError(t, err)
	assert.Equal(t, BracketCompact, cfg.BracketSpacing)
	assert.Equal(t, TrailingNever, cfg.TrailingComma)

	cfg, err = Parse(nil, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Parse([]byte("colour: red\n"), ".yaml")
	require.Error(t, err)
}

func TestTemplateParses(t *testing.T) {
	cfg, err := Parse([]byte(Template), ".toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".nufmt.yaml"), []byte("indent_width: 3\n"), 0o600))

	path, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".nufmt.yaml"), path)

	// TOML wins within the same directory
	require.NoError(t, os.WriteFile(filepath.Join(root, ".nufmt.toml"), []byte("indent_width = 5\n"), 0o600))
	cfg, found, err := Resolve("", nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".nufmt.toml"), found)
	assert.Equal(t, 5, cfg.IndentWidth)
}

func TestLoadErrorMentionsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".nufmt.toml")
	require.NoError(t, os.WriteFile(path, []byte("indent_width = 0\n"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error in "+path)
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestWriteTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTemplate(dir, false)
	require.NoError(t, err)
	_, err = WriteTemplate(dir, false)
	require.ErrorIs(t, err, ErrExists)
	_, err = WriteTemplate(dir, true)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Template, string(data))
}
