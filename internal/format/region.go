package format

import (
	"nufmt/internal/config"
	"nufmt/internal/token"
)

type regionKind uint8

const (
	regionTop regionKind = iota
	regionBlock
	regionClosure
	regionRecord
	regionList
	regionParen
	regionMatch
)

// region is a delimited span of tokens laid out as one unit.
type region struct {
	kind       regionKind
	open       int
	close      int
	paramClose int // closure only, -1 otherwise
	body       int // first token after the open delimiter (or params)
	forced     bool
}

func (r *region) bodyEmpty() bool { return r.body >= r.close }

// region discovers (and memoizes) the region opened at token open.
func (p *printer) region(open int) *region {
	if r, ok := p.regions[open]; ok {
		return r
	}
	r := &region{open: open, close: p.findClose(open), paramClose: -1, body: open + 1}
	switch p.toks[open].Kind {
	case token.LBracket:
		r.kind = regionList
	case token.LParen:
		r.kind = regionParen
	default:
		if p.toks[open+1].Has(token.ParamOpen) {
			for k := open + 2; k < r.close; k++ {
				if p.toks[k].Has(token.ParamClose) {
					r.paramClose = k
					break
				}
			}
		}
		if r.paramClose > 0 {
			r.kind = regionClosure
			r.body = r.paramClose + 1
		} else {
			r.kind = p.classifyBrace(open, r.close)
		}
	}
	r.forced = p.forcedMultiline(r)
	p.regions[open] = r
	return r
}

// findClose matches the delimiter at open by counting same-kind delimiters.
func (p *printer) findClose(open int) int {
	kind := p.toks[open].Kind
	closer := kind.Closer()
	depth := 0
	for i := open; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case kind:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	// front end guarantees balance
	return len(p.toks) - 1
}

// step returns the index after the element starting at i, skipping nested regions.
func (p *printer) step(i int) int {
	if p.toks[i].Kind.IsOpen() {
		return p.findClose(i) + 1
	}
	return i + 1
}

func (p *printer) classifyBrace(open, close int) regionKind {
	first := open + 1
	for first < close && p.toks[first].Kind == token.Comment {
		first++
	}
	if first == close || p.isKey(first) {
		return regionRecord
	}
	for i := first; i < close; i = p.step(i) {
		if p.toks[i].IsOp("=>") {
			return regionMatch
		}
	}
	return regionBlock
}

// forcedMultiline: a comment or a line break anywhere inside, descendants included.
func (p *printer) forcedMultiline(r *region) bool {
	for i := r.open + 1; i <= r.close; i++ {
		if p.toks[i].Kind == token.Comment || p.newlines(i-1, i) > 0 {
			return true
		}
	}
	return false
}

// padded reports whether the inline form puts a space inside the delimiters.
func (p *printer) padded(kind regionKind) bool {
	switch kind {
	case regionList, regionRecord:
		return p.cfg.BracketSpacing == config.BracketSpaced
	case regionParen:
		return false
	default:
		return true
	}
}
