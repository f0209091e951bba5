package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Snippet is a located message ready for display.
type Snippet struct {
	Line       uint32 // 1-based
	Column     uint32 // 1-based, in runes
	Message    string
	Hint       string
	SourceLine string
	Prefix     string // SourceLine up to the error offset, for caret alignment
}

var (
	locColor    = color.New(color.Bold)
	msgColor    = color.New(color.FgRed, color.Bold)
	gutterColor = color.New(color.FgBlue, color.Bold)
	caretColor  = color.New(color.FgRed, color.Bold)
	helpColor   = color.New(color.FgCyan)
)

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}

// RenderSnippet печатает сообщение в виде:
//
//	L:C: message
//	   |
//	 L | source line
//	   |     ^
//	   = help: hint
//
// Ширина желобка растёт вместе с номером строки.
func RenderSnippet(w io.Writer, s Snippet, opts SnippetOpts) {
	loc := fmt.Sprintf("%d:%d:", s.Line, s.Column)
	if opts.Path != "" {
		loc = opts.Path + ":" + loc
	}
	fmt.Fprintf(w, "%s %s\n", paint(locColor, opts.Color, loc), paint(msgColor, opts.Color, s.Message))

	num := strconv.FormatUint(uint64(s.Line), 10)
	pad := strings.Repeat(" ", len(num)+2)
	bar := paint(gutterColor, opts.Color, "|")

	fmt.Fprintf(w, "%s%s\n", pad, bar)
	fmt.Fprintf(w, "%s %s %s\n", paint(gutterColor, opts.Color, " "+num), bar, s.SourceLine)
	fmt.Fprintf(w, "%s%s %s%s\n", pad, bar, caretIndent(s.Prefix), paint(caretColor, opts.Color, "^"))
	if s.Hint != "" {
		fmt.Fprintf(w, "%s%s %s\n", pad, paint(gutterColor, opts.Color, "="), paint(helpColor, opts.Color, "help: "+s.Hint))
	}
}

// caretIndent mirrors the prefix width, keeping tabs so the caret lines up.
func caretIndent(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
