package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Template is the documented .nufmt.toml written by `nufmt init`.
const Template = `# nufmt configuration
# Place this file in your project root; nufmt searches parent directories for it.

# Spaces per indentation level (1-16).
indent_width = 2

# Maximum line width before a region is broken across lines (20-500).
max_width = 100

# String quotes: "preserve", "double" or "single".
# Conversion only happens when it cannot change the string's meaning.
quote_style = "double"

# Padding inside inline lists and records: "spaced" ([ 1, 2 ]) or "compact" ([1, 2]).
bracket_spacing = "spaced"

# Commas after the last element of multiline lists and records: "always" or "never".
trailing_comma = "always"
`

// ErrExists is returned by WriteTemplate when the target file exists.
var ErrExists = os.ErrExist

// WriteTemplate writes Template to dir/.nufmt.toml and returns the path.
func WriteTemplate(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileNames[0])
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists (use --force to overwrite): %w", path, ErrExists)
		}
	}
	if err := os.WriteFile(path, []byte(Template), 0o600); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
