package lexer

import (
	"fmt"

	"nufmt/internal/diag"
	"nufmt/internal/source"
	"nufmt/internal/token"
)

// Tokenize lexes the whole file, then checks delimiter balance. The result
// always ends with EOF; problems go to opts.Reporter.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	CheckDelimiters(toks, opts.Reporter)
	return toks
}

// CheckDelimiters reports unexpected, mismatched and unclosed delimiters and
// returns true when the stream is balanced.
func CheckDelimiters(toks []token.Token, r diag.Reporter) bool {
	if r == nil {
		r = diag.NopReporter{}
	}
	ok := true
	var open []token.Token
	for _, tok := range toks {
		switch {
		case tok.Kind.IsOpen():
			open = append(open, tok)
		case tok.Kind.IsClose():
			want := tok.Kind.Opener()
			if len(open) == 0 {
				ok = false
				diag.ReportError(r, diag.SynUnexpectedDelimiter, tok.Span,
					fmt.Sprintf("unexpected closing delimiter `%s`", tok.Text)).
					WithHint(fmt.Sprintf("remove it or add a matching `%s` before it", want.Symbol())).
					Emit()
				continue
			}
			top := open[len(open)-1]
			open = open[:len(open)-1]
			if top.Kind != want {
				ok = false
				diag.ReportError(r, diag.SynMismatchedDelimiter, tok.Span,
					fmt.Sprintf("mismatched closing delimiter: expected `%s`, found `%s`", top.Kind.Closer().Symbol(), tok.Text)).
					WithNote(top.Span, "unclosed delimiter opened here").
					WithHint(fmt.Sprintf("close `%s` with `%s` before this point", top.Text, top.Kind.Closer().Symbol())).
					Emit()
			}
		}
	}
	for _, tok := range open {
		ok = false
		diag.ReportError(r, diag.SynUnclosedDelimiter, tok.Span,
			fmt.Sprintf("unclosed delimiter `%s`", tok.Text)).
			WithHint(fmt.Sprintf("add a matching `%s` to close it", tok.Kind.Closer().Symbol())).
			Emit()
	}
	return ok
}
