package format

import (
	"strings"

	"nufmt/internal/token"
)

// sep returns the canonical same-line separator between token a and token b
// (b follows a, possibly after a nested region ending at a).
func (p *printer) sep(a, b int) string {
	ta, tb := p.toks[a], p.toks[b]
	switch {
	case ta.Has(token.Glued):
		return ""
	case tb.Kind == token.Comma || tb.Kind == token.Semicolon || tb.Kind == token.Colon:
		return ""
	case ta.Kind == token.Colon && p.tightColon(a, b):
		return ""
	case ta.Kind == token.Colon || ta.Kind == token.Comma || ta.Kind == token.Semicolon:
		return " "
	case tb.Kind == token.Comment:
		return " "
	case ta.Kind == token.Operator || tb.Kind == token.Operator:
		return " "
	case ta.Kind == token.Pipe || tb.Kind == token.Pipe:
		return " "
	case ta.Span.End == tb.Span.Start:
		// 'foo(bar)', '$x.0', '..$n', нулевой зазор сохраняется
		return ""
	default:
		return " "
	}
}

// tightColon reports a colon at c that must stay glued to b: `color:#fff`
// (a space would open a comment) and hh:mm:ss style chains.
func (p *printer) tightColon(c, b int) bool {
	colon, next := p.toks[c], p.toks[b]
	if b != c+1 || colon.Span.End != next.Span.Start {
		return false
	}
	if strings.HasPrefix(next.Text, "#") {
		return true
	}
	if c == 0 || p.toks[c-1].Span.End != colon.Span.Start {
		return false
	}
	return p.chainColon(c-2, c-1) || p.chainColon(c+2, c+1)
}

// chainColon reports a colon at i glued to its neighbour at j.
func (p *printer) chainColon(i, j int) bool {
	if i < 0 || i >= len(p.toks) || p.toks[i].Kind != token.Colon {
		return false
	}
	ti, tj := p.toks[i], p.toks[j]
	if i < j {
		return ti.Span.End == tj.Span.Start
	}
	return tj.Span.End == ti.Span.Start
}

func (p *printer) newlines(a, b int) int {
	return countNewlines(p.src, p.toks[a].Span.End, p.toks[b].Span.Start)
}

func (p *printer) glued(a, b int) bool {
	return p.toks[a].Has(token.Glued) || p.toks[a].Span.End == p.toks[b].Span.Start
}

// joins reports tokens that bind their neighbours into one element.
func joins(t token.Token) bool {
	return t.Kind == token.Operator || t.Kind == token.Colon
}

// boundary decides whether b starts a new element of a multiline region whose
// current element ends at a. nl is the number of newlines between them.
func (p *printer) boundary(kind regionKind, a, b, nl int) bool {
	ta, tb := p.toks[a], p.toks[b]
	if p.glued(a, b) {
		return false
	}
	switch kind {
	case regionList:
		return !joins(ta) && !joins(tb) && tb.Kind != token.Semicolon
	case regionRecord:
		if joins(ta) || joins(tb) {
			return false
		}
		return nl > 0 || p.isKey(b)
	case regionMatch:
		if joins(ta) || joins(tb) || ta.Kind == token.Pipe || tb.Kind == token.Pipe {
			return false
		}
		return nl > 0
	default:
		return nl > 0
	}
}

// isKey reports whether token i starts a `key:` pair or a spread.
func (p *printer) isKey(i int) bool {
	t := p.toks[i]
	if t.Kind == token.Marker && t.Text == "..." {
		return true
	}
	return t.IsValue() && p.toks[i+1].Kind == token.Colon
}
