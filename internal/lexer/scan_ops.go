package lexer

import (
	"bytes"

	"nufmt/internal/token"
)

// Жадность: сначала длинные, затем короткие.
var operators = []string{
	"++=",
	"==", "!=", "=~", "!~", "<=", ">=", "=>", "++", "+=", "-=", "*=", "/=", "**", "//", "&&",
	"=", "<", ">", "+", "-", "*", "/",
}

// matchOperator распознаёт оператор в начале токена: он должен стоять особняком
// (дальше пробел, EOF или разделитель) или быть приклеен к операнду слева.
func (lx *Lexer) matchOperator(glued bool) (string, bool) {
	rest := lx.file.Content[lx.cursor.Off:lx.cursor.Limit]
	for _, op := range operators {
		if !bytes.HasPrefix(rest, []byte(op)) {
			continue
		}
		follow := lx.cursor.PeekAt(uint32(len(op))) // #nosec G115 -- operators are short
		if isBoundary(follow) {
			return op, true
		}
		if glued && (lx.prev.IsOperand() || (op == "=" && lx.prev.Kind == token.Word)) {
			return op, true
		}
		// более короткий оператор тоже не подойдёт: "-f" это флаг, а не минус
		return "", false
	}
	return "", false
}

func (lx *Lexer) emitOperator(op string) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Off += uint32(len(op)) // #nosec G115 -- operators are short
	return lx.emit(token.Operator, start)
}

// atMarker recognises `^cmd`, `...$rest` and the optional access `$x.a?`.
func (lx *Lexer) atMarker(glued bool) bool {
	switch lx.cursor.Peek() {
	case '^':
		return !isBoundary(lx.cursor.PeekAt(1))
	case '.':
		b0, b1, b2, ok := lx.cursor.Peek3()
		return ok && b0 == '.' && b1 == '.' && b2 == '.' && !isBoundary(lx.cursor.PeekAt(3)) && lx.cursor.PeekAt(3) != '.'
	case '?':
		if !glued {
			return false
		}
		switch lx.prev.Kind {
		case token.Variable, token.RParen, token.RBracket, token.String:
			return true
		}
	}
	return false
}

func (lx *Lexer) scanMarker() token.Token {
	start := lx.cursor.Mark()
	if !lx.try3('.', '.', '.') {
		lx.cursor.Bump()
	}
	return lx.emit(token.Marker, start)
}
