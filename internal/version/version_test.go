package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if strings.Contains(Version, "\x1b[") {
		t.Errorf("Version must be plain text, got %q", Version)
	}
}

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc.1"
	if got := Colored(false); got != "1.2.3-rc.1" {
		t.Errorf("Colored(false) = %q", got)
	}
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("Colored(true) = %q", got)
	}

	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Errorf("unparsable version must stay plain, got %q", got)
	}
}

// BenchmarkColored measures the coloured rendering used by `nufmt version`.
func BenchmarkColored(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Colored(true)
	}
}
