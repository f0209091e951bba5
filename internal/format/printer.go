package format

import (
	"strings"

	"nufmt/internal/config"
	"nufmt/internal/token"
)

type printer struct {
	src     []byte
	toks    []token.Token
	cfg     config.Config
	w       *Writer
	regions map[int]*region
	// measuring renders every region inline into a scratch writer
	measuring bool
}

func newPrinter(src []byte, toks []token.Token, cfg config.Config) *printer {
	return &printer{
		src:     src,
		toks:    toks,
		cfg:     cfg,
		w:       NewWriter(cfg.IndentWidth, len(src)+len(src)/10),
		regions: make(map[int]*region),
	}
}

// item is one line-level element of a multiline region: a statement, list
// element, record pair, match arm, or a standalone comment.
type item struct {
	first, last int // inclusive token range
	comment     bool
	trailing    int  // trailing comment token, -1 if none
	comma       bool // a source comma followed the element
	boundary    bool // the element ended at a real separator
	blank       bool // a blank line preceded it
}

func (it item) cut() bool { return !it.comment && !it.boundary && it.trailing >= 0 }

func (p *printer) printFile() {
	eof := len(p.toks) - 1
	items, _ := p.collectItems(regionTop, 0, eof)
	last := lastElement(items)
	for k, it := range items {
		if k > 0 {
			p.w.Newline()
			if it.blank {
				p.w.Newline()
			}
		}
		p.printItem(regionTop, it, k == last)
	}
}

// collectItems splits toks[from:to] into items. openTrailing is a comment
// sharing the line of the open delimiter, or -1.
func (p *printer) collectItems(kind regionKind, from, to int) (items []item, openTrailing int) {
	openTrailing = -1
	var cur *item
	finish := func(boundary bool) {
		if cur != nil {
			cur.boundary = boundary
			items = append(items, *cur)
			cur = nil
		}
	}
	commaSplits := kind == regionList || kind == regionRecord || kind == regionMatch

	prev := from - 1
	for i := from; i < to; {
		t := p.toks[i]
		nl := 0
		if prev >= 0 {
			nl = p.newlines(prev, i)
		}

		switch {
		case t.Kind == token.Comment && t.Has(token.Trailing):
			switch {
			case cur != nil:
				cur.trailing = i
				finish(false)
			case len(items) > 0 && !items[len(items)-1].comment && items[len(items)-1].trailing < 0:
				items[len(items)-1].trailing = i
			case len(items) == 0:
				openTrailing = i
			default:
				items = append(items, item{first: i, last: i, comment: true, trailing: -1})
			}
			prev = i
			i++
			continue

		case t.Kind == token.Comment:
			finish(true)
			items = append(items, item{first: i, last: i, comment: true, trailing: -1, blank: nl >= 2})
			prev = i
			i++
			continue

		case t.Kind == token.Comma && commaSplits:
			if cur != nil {
				cur.comma = true
				finish(true)
			} else if n := len(items); n > 0 && !items[n-1].comment {
				items[n-1].comma = true
				items[n-1].boundary = true
			}
			prev = i
			i++
			continue
		}

		if cur != nil && p.boundary(kind, cur.last, i, nl) {
			finish(true)
		}
		if cur == nil {
			if n := len(items); n > 0 && items[n-1].cut() {
				items[n-1].boundary = p.boundary(kind, items[n-1].last, i, nl)
			}
			cur = &item{first: i, trailing: -1, blank: nl >= 2}
		}
		end := i
		if t.Kind.IsOpen() {
			end = p.findClose(i)
		}
		cur.last = end
		prev = end
		i = end + 1
	}
	finish(true)
	if n := len(items); n > 0 && items[n-1].cut() {
		items[n-1].boundary = true
	}
	return items, openTrailing
}

func lastElement(items []item) int {
	for k := len(items) - 1; k >= 0; k-- {
		if !items[k].comment {
			return k
		}
	}
	return -1
}

func (p *printer) printItem(kind regionKind, it item, isLast bool) {
	if it.comment {
		p.printComment(it.first)
		return
	}
	p.printSeq(it.first, it.last)
	if p.wantsComma(kind, it, isLast) {
		p.w.WriteString(",")
	}
	if it.trailing >= 0 {
		p.w.WriteString(" ")
		p.printComment(it.trailing)
	}
}

func (p *printer) wantsComma(kind regionKind, it item, isLast bool) bool {
	last := p.toks[it.last]
	if !it.boundary || last.Kind == token.Semicolon {
		return false
	}
	if last.Kind == token.Word && strings.HasSuffix(last.Text, ",") {
		// `--flag,` внутри записи: запятая уже в слове
		return false
	}
	switch kind {
	case regionList, regionRecord:
		if p.cfg.TrailingComma == config.TrailingAlways {
			return true
		}
		return it.comma && !isLast
	case regionMatch:
		return it.comma && !isLast
	default:
		return false
	}
}

// printSeq prints toks[from..to] on the current line, joining direct
// neighbours with canonical separators.
func (p *printer) printSeq(from, to int) {
	prev := -1
	for i := from; i <= to; {
		if prev >= 0 {
			p.w.WriteString(p.sep(prev, i))
		}
		if p.toks[i].Kind.IsOpen() {
			prev = p.printRegion(i)
			i = prev + 1
			continue
		}
		p.printToken(i)
		prev = i
		i++
	}
}

// printRegion lays out the region opened at open and returns its close index.
func (p *printer) printRegion(open int) int {
	r := p.region(open)
	switch {
	case r.bodyEmpty():
		p.printEmpty(r)
	case p.measuring || (!r.forced && p.fits(r)):
		p.printInline(r)
	default:
		p.printMultiline(r)
	}
	return r.close
}

// fits renders r inline into a scratch writer and checks it against the width limit.
func (p *printer) fits(r *region) bool {
	scratch := &printer{
		src:       p.src,
		toks:      p.toks,
		cfg:       p.cfg,
		w:         NewWriter(p.cfg.IndentWidth, 64),
		regions:   p.regions,
		measuring: true,
	}
	scratch.printInline(r)
	return p.w.Column()+scratch.w.Width() <= p.cfg.MaxWidth
}

func (p *printer) printEmpty(r *region) {
	p.w.WriteString(p.toks[r.open].Text)
	if r.kind == regionClosure {
		p.printParams(r)
		p.w.WriteString(" ")
	}
	p.w.WriteString(p.toks[r.close].Text)
}

func (p *printer) printParams(r *region) {
	p.w.WriteString("|")
	if r.paramClose > r.open+2 {
		p.printSeq(r.open+2, r.paramClose-1)
	}
	p.w.WriteString("|")
}

func (p *printer) printInline(r *region) {
	p.w.WriteString(p.toks[r.open].Text)
	if r.kind == regionClosure {
		p.printParams(r)
	}
	pad := p.padded(r.kind)
	if pad {
		p.w.WriteString(" ")
	}
	end := r.close - 1
	if r.kind == regionList || r.kind == regionRecord || r.kind == regionMatch {
		// висячая запятая в однострочной форме не нужна
		if p.toks[end].Kind == token.Comma {
			end--
		}
	}
	if end >= r.body {
		p.printSeq(r.body, end)
	}
	if pad {
		p.w.WriteString(" ")
	}
	p.w.WriteString(p.toks[r.close].Text)
}

func (p *printer) printMultiline(r *region) {
	p.w.WriteString(p.toks[r.open].Text)
	if r.kind == regionClosure {
		p.printParams(r)
	}
	items, openTrailing := p.collectItems(r.kind, r.body, r.close)
	if openTrailing >= 0 {
		p.w.WriteString(" ")
		p.printComment(openTrailing)
	}
	p.w.IndentPush()
	last := lastElement(items)
	for k, it := range items {
		p.w.Newline()
		if it.blank && k > 0 {
			p.w.Newline()
		}
		p.printItem(r.kind, it, k == last)
	}
	p.w.IndentPop()
	p.w.Newline()
	p.w.WriteString(p.toks[r.close].Text)
}

func (p *printer) printToken(i int) {
	t := p.toks[i]
	switch t.Kind {
	case token.String:
		p.w.WriteString(normalizeQuotes(t.Text, p.cfg.QuoteStyle))
	case token.Comment:
		p.printComment(i)
	default:
		p.w.WriteString(t.Text)
	}
}

func (p *printer) printComment(i int) {
	p.w.WriteString(strings.TrimRight(p.toks[i].Text, " \t"))
}
