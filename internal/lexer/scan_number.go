package lexer

import (
	"nufmt/internal/token"
)

// scanNumber читает числа вместе с суффиксами единиц и основаниями
// (10kb, 0x1f, 1.5, 1..10, 3day) и литералы дат (2024-01-01T10:00:00+02:00).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if b := lx.cursor.Peek(); b == '-' || b == '+' {
		lx.cursor.Bump()
	}
	body := lx.cursor.Off
	date := false

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		next := lx.cursor.PeekAt(1)
		switch {
		case isAlnum(b) || b == '_' || b == '.':
			lx.cursor.Bump()
			continue
		case b == '-' && isDec(next) && (date || lx.isYear(body)):
			date = true
		case date && (b == ':' || b == '+') && isDec(next):
		case (b == '-' || b == '+') && isDec(next) && lx.afterExponent(body):
		default:
			return lx.emit(token.Number, start)
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Number, start)
}

// isYear reports whether the digits since body are exactly four decimals.
func (lx *Lexer) isYear(body uint32) bool {
	if lx.cursor.Off-body != 4 {
		return false
	}
	for _, b := range lx.file.Content[body:lx.cursor.Off] {
		if !isDec(b) {
			return false
		}
	}
	return true
}

func (lx *Lexer) afterExponent(body uint32) bool {
	if lx.cursor.Off <= body {
		return false
	}
	text := lx.file.Content[body:lx.cursor.Off]
	last := text[len(text)-1]
	if last != 'e' && last != 'E' {
		return false
	}
	for _, b := range text[:len(text)-1] {
		if !isDec(b) && b != '.' && b != '_' {
			return false
		}
	}
	return true
}
