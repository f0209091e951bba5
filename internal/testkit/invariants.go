package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"nufmt/internal/lexer"
	"nufmt/internal/source"
	"nufmt/internal/token"
)

// CheckTokenInvariants runs a minimal set of invariants on a token stream:
// 1) the stream ends with exactly one EOF token at the end of the content
// 2) every span is non-empty (EOF aside), ordered and non-overlapping
// 3) every token text is the exact byte slice its span names
func CheckTokenInvariants(sf *source.File, toks []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) EOF sanity
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		return fmt.Errorf("last token is %s, want EOF", eof.Kind)
	}
	if eof.Span.Start != lenContent {
		return fmt.Errorf("EOF at %d, content ends at %d", eof.Span.Start, lenContent)
	}

	// 2) ordering; 3) text
	var prevEnd uint32
	for i, tok := range toks[:len(toks)-1] {
		if tok.Kind == token.EOF {
			return fmt.Errorf("token %d: EOF before end of stream", i)
		}
		sp := tok.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d (%s): empty span %v", i, tok.Kind, sp)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%s): span %v overlaps previous end %d", i, tok.Kind, sp, prevEnd)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d (%s): span %v beyond content %d", i, tok.Kind, sp, lenContent)
		}
		if got := sf.Text(sp); got != tok.Text {
			return fmt.Errorf("token %d (%s): text %q, span names %q", i, tok.Kind, tok.Text, got)
		}
		prevEnd = sp.End
	}
	return nil
}

// StringLiterals returns the text of every string token in src, in order.
func StringLiterals(src []byte) []string {
	var out []string
	for _, tok := range lexer.Tokenize(source.Virtual("<literals>", src), lexer.Options{}) {
		if tok.Kind == token.String || tok.Kind == token.StringInterp {
			out = append(out, tok.Text)
		}
	}
	return out
}

// SameLiterals reports a mismatch between the string literals of before and
// after. Interpolations, raw and backtick strings must match byte for byte;
// plain quoted strings may differ only in their quote character.
func SameLiterals(before, after []byte) error {
	a, b := StringLiterals(before), StringLiterals(after)
	if len(a) != len(b) {
		return fmt.Errorf("literal count changed: %d -> %d", len(a), len(b))
	}
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if !requotable(a[i]) || !requotable(b[i]) || body(a[i]) != body(b[i]) {
			return fmt.Errorf("literal %d changed: %s -> %s", i, a[i], b[i])
		}
	}
	return nil
}

func requotable(s string) bool {
	return len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0]
}

func body(s string) string { return s[1 : len(s)-1] }
