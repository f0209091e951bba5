package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// SourceExt is the extension collected from directories.
const SourceExt = ".nu"

// ErrNoFiles is returned when the patterns expand to nothing.
var ErrNoFiles = errors.New("no files matched the given patterns")

// ExpandPatterns turns CLI patterns into a de-duplicated file list, keeping
// the order of the patterns. Patterns with `*`, `?` or `[` are globbed
// (`**` crosses directories); matched or named directories are walked for
// *.nu files; anything else is taken literally, so a missing file fails
// later at read time.
func ExpandPatterns(ctx context.Context, patterns []string) ([]string, error) {
	c := collector{seen: make(map[string]struct{})}
	for _, pat := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isGlob(pat) {
			if err := c.glob(ctx, pat); err != nil {
				return nil, err
			}
			continue
		}
		if info, err := os.Stat(pat); err == nil && info.IsDir() {
			if err := c.walk(ctx, pat); err != nil {
				return nil, err
			}
			continue
		}
		c.add(pat)
	}
	if len(c.files) == 0 {
		return nil, ErrNoFiles
	}
	return c.files, nil
}

func isGlob(pat string) bool {
	return strings.ContainsAny(pat, "*?[")
}

type collector struct {
	files []string
	seen  map[string]struct{}
}

func (c *collector) add(path string) {
	path = filepath.Clean(path)
	if _, ok := c.seen[path]; ok {
		return
	}
	c.seen[path] = struct{}{}
	c.files = append(c.files, path)
}

// walk collects *.nu files under dir in lexical order.
func (c *collector) walk(ctx context.Context, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == SourceExt {
			c.add(path)
		}
		return nil
	})
}

func (c *collector) glob(ctx context.Context, pat string) error {
	slashed := filepath.ToSlash(filepath.Clean(pat))
	g, err := glob.Compile(slashed, '/')
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pat, err)
	}
	base := staticPrefix(slashed)
	if _, err := os.Stat(filepath.FromSlash(base)); err != nil {
		// как и у shell-глоба: нет совпадений, а не ошибка
		return nil
	}
	recursive := strings.Contains(slashed, "**")
	maxDepth := strings.Count(slashed, "/")

	return filepath.WalkDir(filepath.FromSlash(base), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := filepath.ToSlash(path)
		if rel == base && d.IsDir() {
			return nil
		}
		if g.Match(rel) {
			if d.IsDir() {
				if err := c.walk(ctx, path); err != nil {
					return err
				}
				return fs.SkipDir
			}
			c.add(path)
			return nil
		}
		if d.IsDir() && !recursive && strings.Count(rel, "/") >= maxDepth {
			return fs.SkipDir
		}
		return nil
	})
}

// staticPrefix returns the leading directory of pat that holds no glob
// metacharacters, or "." when the first segment is already a pattern.
func staticPrefix(pat string) string {
	segs := strings.Split(pat, "/")
	var keep []string
	for _, s := range segs[:len(segs)-1] {
		if isGlob(s) || strings.ContainsAny(s, "{") {
			break
		}
		keep = append(keep, s)
	}
	switch {
	case len(keep) == 0:
		return "."
	case len(keep) == 1 && keep[0] == "":
		return "/"
	default:
		return strings.Join(keep, "/")
	}
}
