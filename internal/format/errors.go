package format

import (
	"strings"

	"nufmt/internal/diag"
	"nufmt/internal/diagfmt"
	"nufmt/internal/source"
)

// SyntaxError is the only failure the engine reports for valid config.
type SyntaxError struct {
	Code       diag.Code
	Offset     uint32
	Line       uint32 // 1-based
	Column     uint32 // 1-based, in runes
	Message    string
	Hint       string
	SourceLine string
	prefix     string
}

func newSyntaxError(file *source.File, d diag.Diagnostic) *SyntaxError {
	off := d.Primary.Start
	pos := file.Position(off)
	return &SyntaxError{
		Code:       d.Code,
		Offset:     off,
		Line:       pos.Line,
		Column:     file.RuneColumn(off),
		Message:    d.Message,
		Hint:       d.Hint,
		SourceLine: file.GetLine(pos.Line),
		prefix:     file.LinePrefix(off),
	}
}

// Snippet returns the renderable view of the error.
func (e *SyntaxError) Snippet() diagfmt.Snippet {
	return diagfmt.Snippet{
		Line:       e.Line,
		Column:     e.Column,
		Message:    e.Message,
		Hint:       e.Hint,
		SourceLine: e.SourceLine,
		Prefix:     e.prefix,
	}
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	diagfmt.RenderSnippet(&sb, e.Snippet(), diagfmt.SnippetOpts{})
	return strings.TrimRight(sb.String(), "\n")
}
