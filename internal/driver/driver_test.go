package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nufmt/internal/config"
	"nufmt/internal/format"
	"nufmt/internal/version"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func tree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.nu"), "ls|sort-by name\n", 0o644)
	writeFile(t, filepath.Join(dir, "b.nu"), "echo hi\n", 0o644)
	writeFile(t, filepath.Join(dir, "notes.txt"), "x", 0o644)
	writeFile(t, filepath.Join(dir, "sub", "c.nu"), "let x=1\n", 0o644)
	writeFile(t, filepath.Join(dir, "sub", "deep", "d.nu"), "ls\n", 0o644)
	return dir
}

func TestExpandPatterns(t *testing.T) {
	dir := tree(t)
	ctx := context.Background()
	j := func(parts ...string) string { return filepath.Join(append([]string{dir}, parts...)...) }

	files, err := ExpandPatterns(ctx, []string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{j("a.nu"), j("b.nu"), j("sub", "c.nu"), j("sub", "deep", "d.nu")}, files)

	files, err = ExpandPatterns(ctx, []string{filepath.Join(dir, "*.nu")})
	require.NoError(t, err)
	assert.Equal(t, []string{j("a.nu"), j("b.nu")}, files)

	files, err = ExpandPatterns(ctx, []string{filepath.Join(dir, "**", "*.nu")})
	require.NoError(t, err)
	assert.Contains(t, files, j("sub", "deep", "d.nu"))
	assert.NotContains(t, files, j("notes.txt"))

	files, err = ExpandPatterns(ctx, []string{filepath.Join(dir, "s*")})
	require.NoError(t, err)
	assert.Equal(t, []string{j("sub", "c.nu"), j("sub", "deep", "d.nu")}, files)

	// literal paths are kept as given, duplicates collapse
	files, err = ExpandPatterns(ctx, []string{j("b.nu"), j("missing.nu"), j("b.nu"), j("notes.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{j("b.nu"), j("missing.nu"), j("notes.txt")}, files)

	_, err = ExpandPatterns(ctx, []string{filepath.Join(dir, "*.md")})
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestStaticPrefix(t *testing.T) {
	assert.Equal(t, ".", staticPrefix("*.nu"))
	assert.Equal(t, "src", staticPrefix("src/*.nu"))
	assert.Equal(t, "src/lib", staticPrefix("src/lib/**/x.nu"))
	assert.Equal(t, "/", staticPrefix("/*.nu"))
	assert.Equal(t, "/tmp", staticPrefix("/tmp/[ab].nu"))
}

func TestFormatPathsWritesChangedFiles(t *testing.T) {
	dir := tree(t)
	a := filepath.Join(dir, "a.nu")
	require.NoError(t, os.Chmod(a, 0o600))
	files, err := ExpandPatterns(context.Background(), []string{dir})
	require.NoError(t, err)

	results, err := FormatPaths(context.Background(), files, Options{Config: config.Default(), Jobs: 2})
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, a, results[0].Path)
	assert.Equal(t, OutcomeChanged, results[0].Outcome)
	assert.Equal(t, OutcomeUnchanged, results[1].Outcome)
	assert.Equal(t, OutcomeChanged, results[2].Outcome)

	assert.Equal(t, "ls | sort-by name\n", readFile(t, a))
	info, err := os.Stat(a)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	s := Summarize(results)
	assert.Equal(t, Summary{Total: 4, Changed: 2, Unchanged: 2}, s)
	assert.Equal(t, "4 files: 2 formatted, 2 unchanged", s.Line(false))
	assert.Equal(t, 0, s.ExitCode(false))
}

func TestFormatPathsCheckMode(t *testing.T) {
	dir := tree(t)
	a := filepath.Join(dir, "a.nu")
	results, err := FormatPaths(context.Background(), []string{a, filepath.Join(dir, "b.nu")},
		Options{Config: config.Default(), Check: true})
	require.NoError(t, err)

	assert.Equal(t, "ls|sort-by name\n", readFile(t, a), "check mode must not write")
	assert.Equal(t, OutcomeChanged, results[0].Outcome)
	assert.Contains(t, results[0].Diff, "--- "+a+"\n")
	assert.Contains(t, results[0].Diff, "+++ "+a+" (formatted)\n")
	assert.Contains(t, results[0].Diff, "-ls|sort-by name\n")
	assert.Contains(t, results[0].Diff, "+ls | sort-by name\n")
	assert.Empty(t, results[1].Diff)

	s := Summarize(results)
	assert.Equal(t, "2 files: 1 would be reformatted, 1 already formatted", s.Line(true))
	assert.Equal(t, 1, s.ExitCode(true))
}

func TestFormatPathsIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.nu")
	good := filepath.Join(dir, "good.nu")
	writeFile(t, bad, "if true {\n", 0o644)
	writeFile(t, good, "let x=1", 0o644)

	results, err := FormatPaths(context.Background(), []string{bad, filepath.Join(dir, "gone.nu"), good},
		Options{Config: config.Default(), Jobs: 1})
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, results[0].Outcome)
	var se *format.SyntaxError
	assert.True(t, errors.As(results[0].Err, &se))
	assert.Equal(t, OutcomeFailed, results[1].Outcome)
	assert.ErrorIs(t, results[1].Err, os.ErrNotExist)
	assert.Equal(t, OutcomeChanged, results[2].Outcome)
	assert.Equal(t, "let x = 1\n", readFile(t, good))

	s := Summarize(results)
	assert.Equal(t, "3 files: 1 formatted, 2 failed", s.Line(false))
	assert.Equal(t, 2, s.ExitCode(false))
}

func TestFormatPathsRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxWidth = 5
	_, err := FormatPaths(context.Background(), []string{"x.nu"}, Options{Config: cfg})
	var ce *config.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestFormatPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FormatPaths(ctx, []string{"x.nu"}, Options{Config: config.Default()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatPathsCache(t *testing.T) {
	dir := tree(t)
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	files := []string{filepath.Join(dir, "a.nu"), filepath.Join(dir, "b.nu")}
	opts := Options{Config: config.Default(), Cache: cache}

	first, err := FormatPaths(context.Background(), files, opts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeChanged, first[0].Outcome)
	assert.Equal(t, OutcomeUnchanged, first[1].Outcome)

	second, err := FormatPaths(context.Background(), files, opts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCached, second[0].Outcome)
	assert.Equal(t, OutcomeCached, second[1].Outcome)
	assert.Equal(t, "All 2 files already formatted", Summarize(second).Line(false))

	// другая конфигурация, другой ключ
	opts.Config.IndentWidth = 4
	third, err := FormatPaths(context.Background(), files, opts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, third[1].Outcome)

	// новая версия форматтера не доверяет старым записям
	opts.Config = config.Default()
	engineVersion = "next"
	t.Cleanup(func() { engineVersion = version.Version })
	upgraded, err := FormatPaths(context.Background(), files, opts)
	require.NoError(t, err)
	assert.NotEqual(t, OutcomeCached, upgraded[0].Outcome)
	assert.NotEqual(t, OutcomeCached, upgraded[1].Outcome)
	engineVersion = version.Version

	require.NoError(t, cache.DropAll())
	fourth, err := FormatPaths(context.Background(), files, Options{Config: config.Default(), Cache: cache})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, fourth[0].Outcome)
}

func TestFingerprintCarriesVersion(t *testing.T) {
	cfg := config.Default()
	assert.True(t, strings.HasPrefix(Fingerprint(cfg), version.Version+"|"))
	assert.Contains(t, Fingerprint(cfg), cfg.Fingerprint())
}

func TestDiskCacheRejectsForeignFingerprint(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	key := CacheKey("a", []byte("ls\n"))
	require.NoError(t, cache.Put(key, CacheEntry{Fingerprint: "a", Path: "x.nu", Size: 3}))

	entry, ok, err := cache.Get(key, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x.nu", entry.Path)
	assert.Equal(t, cacheSchemaVersion, entry.Schema)

	_, ok, err = cache.Get(key, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	var nilCache *DiskCache
	_, ok, err = nilCache.Get(key, "a")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, nilCache.Put(key, CacheEntry{}))
}

func TestProgressEvents(t *testing.T) {
	dir := tree(t)
	var (
		mu     sync.Mutex
		events []Event
	)
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})
	files := []string{filepath.Join(dir, "a.nu"), filepath.Join(dir, "b.nu")}
	_, err := FormatPaths(context.Background(), files, Options{Config: config.Default(), Progress: sink})
	require.NoError(t, err)

	queued, done := 0, 0
	for _, ev := range events {
		switch ev.Status {
		case StatusQueued:
			queued++
		case StatusDone:
			done++
		}
	}
	assert.Equal(t, 2, queued)
	assert.Equal(t, 2, done)
}

func TestFormatStream(t *testing.T) {
	before, after, err := FormatStream(strings.NewReader("ls|length"), config.Default())
	require.NoError(t, err)
	assert.Equal(t, "ls|length", string(before))
	assert.Equal(t, "ls | length\n", string(after))

	_, _, err = FormatStream(strings.NewReader("(ls"), config.Default())
	var se *format.SyntaxError
	assert.True(t, errors.As(err, &se))
}

func TestUnifiedDiffEqual(t *testing.T) {
	d, err := UnifiedDiff("x", []byte("a\n"), []byte("a\n"))
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestSummaryLines(t *testing.T) {
	assert.Equal(t, "All 1 file formatted correctly", Summary{Total: 1, Unchanged: 1}.Line(true))
	assert.Equal(t, "All 3 files already formatted", Summary{Total: 3, Unchanged: 3}.Line(false))
	assert.Equal(t, "2 files: 1 would be reformatted, 1 failed", Summary{Total: 2, Changed: 1, Failed: 1}.Line(true))
	assert.Equal(t, 2, Summary{Total: 2, Changed: 1, Failed: 1}.ExitCode(true))
}
