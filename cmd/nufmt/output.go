package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"nufmt/internal/diagfmt"
	"nufmt/internal/driver"
	"nufmt/internal/format"
)

type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "always", "on":
		return colorAlways, nil
	case "never", "off":
		return colorNever, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|always|never)", value)
	}
}

// enabled resolves auto against w: colour only for a terminal.
func (m colorMode) enabled(w io.Writer) bool {
	switch m {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isTerminal(f)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// reporter prints per-file lines and the summary to stderr.
type reporter struct {
	w     io.Writer
	color bool
	quiet bool
	check bool
}

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

func (r *reporter) mark(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}

// file prints the line for one result. Unchanged files stay silent.
func (r *reporter) file(res driver.FileResult) {
	switch res.Outcome {
	case driver.OutcomeFailed:
		r.failure(res.Path, res.Err)
	case driver.OutcomeChanged:
		if res.Diff != "" {
			r.diff(res.Diff)
		}
		if r.quiet {
			return
		}
		if r.check {
			fmt.Fprintf(r.w, "%s %s (would reformat)\n", r.mark(warnColor, "!"), res.Path)
		} else {
			fmt.Fprintf(r.w, "%s %s\n", r.mark(okColor, "✓"), res.Path)
		}
	}
}

// failure is printed even with --quiet.
func (r *reporter) failure(path string, err error) {
	var se *format.SyntaxError
	if errors.As(err, &se) {
		fmt.Fprintf(r.w, "%s ", r.mark(failColor, "✗"))
		diagfmt.RenderSnippet(r.w, se.Snippet(), diagfmt.SnippetOpts{Color: r.color, Path: path})
		return
	}
	fmt.Fprintf(r.w, "%s %s: %v\n", r.mark(failColor, "✗"), path, err)
}

func (r *reporter) diff(d string) {
	if !r.color {
		fmt.Fprint(r.w, d)
		if !strings.HasSuffix(d, "\n") {
			fmt.Fprintln(r.w)
		}
		return
	}
	for _, line := range strings.SplitAfter(d, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(r.w, r.mark(color.New(color.Bold), line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(r.w, r.mark(color.New(color.FgGreen), line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(r.w, r.mark(color.New(color.FgRed), line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(r.w, r.mark(color.New(color.FgCyan), line))
		default:
			fmt.Fprint(r.w, line)
		}
	}
}

func (r *reporter) summary(s driver.Summary) {
	if r.quiet || s.Total == 0 {
		return
	}
	if s.Clean() {
		fmt.Fprintf(r.w, "\n%s %s\n", r.mark(okColor, "✓"), s.Line(r.check))
		return
	}
	fmt.Fprintf(r.w, "\n%s\n", s.Line(r.check))
}
