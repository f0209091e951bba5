package lexer

import (
	"nufmt/internal/diag"
	"nufmt/internal/token"
)

// scanString читает "..." (с escape), '...' и `...` (сырые). Литералы могут
// занимать несколько строк.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	q := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' && q == '"' {
			// грубая обработка escape: съесть '\' и следующий байт
			lx.cursor.Bump()
			continue
		}
		if b == q {
			return lx.emit(token.String, start)
		}
	}
	lx.errUnterminated(start, q)
	return lx.emit(token.Invalid, start)
}

func (lx *Lexer) errUnterminated(start Mark, q byte) {
	sp := lx.cursor.SpanFrom(start)
	sp.End = sp.Start + 1
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal",
		"add a closing `"+string(q)+"` to end the string")
}

// scanInterp читает $"..." / $'...' целиком, отслеживая вложенные скобки,
// чтобы кавычки внутри (...) не закрывали строку.
func (lx *Lexer) scanInterp(q byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	lx.cursor.Bump() // quote
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\' && q == '"':
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		case b == '(':
			depth++
		case b == ')':
			if depth > 0 {
				depth--
			}
		case b == q && depth == 0:
			lx.cursor.Bump()
			return lx.emit(token.StringInterp, start)
		case (b == '"' || b == '\'' || b == '`') && depth > 0:
			lx.skipQuoted(b)
			continue
		}
		lx.cursor.Bump()
	}
	lx.errUnterminated(start, q)
	return lx.emit(token.Invalid, start)
}

func (lx *Lexer) atRawString() bool {
	n := uint32(1)
	for lx.cursor.PeekAt(n) == '#' {
		n++
	}
	return n > 1 && lx.cursor.PeekAt(n) == '\''
}

// scanRawString читает r#'...'# с любым числом '#'.
func (lx *Lexer) scanRawString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // 'r'
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // '\''
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '\'' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.PeekAt(uint32(n)) == '#' { // #nosec G115 -- hashes is small
			n++
		}
		if n == hashes {
			lx.cursor.Off += uint32(n) // #nosec G115 -- hashes is small
			return lx.emit(token.String, start)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	sp.End = sp.Start + 1
	lx.errLex(diag.LexBadRawString, sp, "unterminated raw string literal",
		"close the raw string with `'` followed by the same number of `#`")
	return lx.emit(token.Invalid, start)
}
