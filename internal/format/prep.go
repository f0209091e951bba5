package format

import (
	"bytes"
	"slices"

	"nufmt/internal/token"
)

// preprocess returns a copy of toks annotated with glue, closure-parameter and
// trailing-comment flags. The input slice is left untouched.
func preprocess(src []byte, in []token.Token) []token.Token {
	toks := slices.Clone(in)
	for i := range toks {
		t := &toks[i]
		switch t.Kind {
		case token.Marker:
			if t.Text == "?" {
				if i > 0 && toks[i-1].Span.End == t.Span.Start {
					toks[i-1].Flags |= token.Glued
				}
			} else if next := toks[i+1]; next.Kind != token.EOF && next.Span.Start == t.Span.End {
				t.Flags |= token.Glued
			}
		case token.Comment:
			if i > 0 && !hasNewline(src, toks[i-1].Span.End, t.Span.Start) {
				t.Flags |= token.Trailing
			}
		case token.LBrace:
			markParams(src, toks, i)
		}
	}
	return toks
}

// markParams flags `{|a, b|` parameter pipes. The opening pipe must share the
// brace's line; the list may not hold comments.
func markParams(src []byte, toks []token.Token, open int) {
	first := open + 1
	if toks[first].Kind != token.Pipe || hasNewline(src, toks[open].Span.End, toks[first].Span.Start) {
		return
	}
	depth := 0
	for k := first + 1; k < len(toks); k++ {
		switch kind := toks[k].Kind; {
		case kind == token.EOF || kind == token.Comment:
			return
		case kind.IsOpen():
			depth++
		case kind.IsClose():
			if depth == 0 {
				return
			}
			depth--
		case kind == token.Pipe && depth == 0:
			toks[first].Flags |= token.ParamOpen
			toks[k].Flags |= token.ParamClose
			return
		}
	}
}

func hasNewline(src []byte, from, to uint32) bool {
	return bytes.IndexByte(src[from:to], '\n') >= 0
}

func countNewlines(src []byte, from, to uint32) int {
	return bytes.Count(src[from:to], []byte{'\n'})
}
