package format

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer accumulates formatted output, tracks the display column and emits
// indentation lazily at the first write of each line.
type Writer struct {
	buf         []byte
	indentWidth int
	indentLevel int
	column      int
	atLineStart bool
}

// NewWriter creates a writer with room for capacity bytes.
func NewWriter(indentWidth, capacity int) *Writer {
	return &Writer{
		buf:         make([]byte, 0, capacity),
		indentWidth: indentWidth,
		atLineStart: true,
	}
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	n := w.indentLevel * w.indentWidth
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, ' ')
	}
	w.column = n
	w.atLineStart = false
}

// WriteString writes s verbatim. s may span lines only when it is a single
// multi-line literal; its inner text is never re-indented.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.column = runewidth.StringWidth(s[i+1:])
	} else {
		w.column += runewidth.StringWidth(s)
	}
}

// Newline ends the current line, dropping trailing blanks written on it.
func (w *Writer) Newline() {
	w.buf = bytes.TrimRight(w.buf, " \t")
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
	w.column = 0
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// Column is the 0-based display column the next write starts at.
func (w *Writer) Column() int {
	if w.atLineStart {
		return w.indentLevel * w.indentWidth
	}
	return w.column
}

// Width is the display width of everything written so far on one line.
func (w *Writer) Width() int {
	return runewidth.StringWidth(string(w.buf))
}

// Bytes returns the output with trailing whitespace removed and exactly one
// final newline.
func (w *Writer) Bytes() []byte {
	out := bytes.TrimRight(w.buf, " \t\n")
	res := make([]byte, len(out), len(out)+1)
	copy(res, out)
	return append(res, '\n')
}
