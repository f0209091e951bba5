package lexer

import (
	"nufmt/internal/token"
)

// scanWord читает голое слово: команду, аргумент, флаг, путь или glob.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	keyPos := lx.keyPosition()
	// флаги вне списка глотают запятые: --features=a,b
	flag := lx.cursor.Peek() == '-' && !lx.inList()
	lx.bumpRune() // первый символ всегда часть слова

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) || isDelim(b) {
			break
		}
		if b == ',' && !flag {
			break
		}
		if b == ':' && lx.colonEndsWord(keyPos) {
			break
		}
		if b == '=' && lx.bindName {
			break
		}
		if b == '"' || b == '\'' || b == '`' {
			// --msg="a b" и key:'v': кавычки после '=' или ':' входят в слово
			if p := lx.cursor.Prev(); p == '=' || p == ':' {
				lx.skipQuoted(b)
				continue
			}
		}
		lx.bumpRune()
	}
	return lx.emit(token.Word, start)
}

// colonEndsWord decides whether the ':' under the cursor separates a key.
func (lx *Lexer) colonEndsWord(keyPos bool) bool {
	next := lx.cursor.PeekAt(1)
	switch {
	case next == '/' || next == '\\' || next == ':':
		return false
	case isBoundary(next):
		return true
	default:
		return keyPos
	}
}

// skipQuoted consumes a quoted segment starting at the cursor. Reports an
// unterminated string when the closing quote is missing.
func (lx *Lexer) skipQuoted(q byte) {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' && q == '"' {
			lx.cursor.Bump()
			continue
		}
		if b == q {
			return
		}
	}
	lx.errUnterminated(start, q)
}

// scanDollar читает $name, $env.PATH, $"..." и $'...'.
func (lx *Lexer) scanDollar() token.Token {
	next := lx.cursor.PeekAt(1)
	if next == '"' || next == '\'' {
		return lx.scanInterp(next)
	}

	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	if !lx.scanVarName() {
		// одиночный '$': просто слово
		lx.cursor.Reset(start)
		return lx.scanWord()
	}
	// cell path
	for lx.cursor.Peek() == '.' {
		seg := lx.cursor.Mark()
		lx.cursor.Bump()
		b := lx.cursor.Peek()
		if b == '"' || b == '\'' || b == '`' {
			lx.skipQuoted(b)
			continue
		}
		if !lx.scanVarName() {
			lx.cursor.Reset(seg)
			break
		}
	}
	return lx.emit(token.Variable, start)
}

// scanVarName consumes a variable name or cell-path segment; `-` joins
// letters (`$my-var`) but never leads into a digit.
func (lx *Lexer) scanVarName() bool {
	begin := lx.cursor.Off
	for !lx.cursor.EOF() {
		r, _ := lx.peekRune()
		if isVarRune(r) {
			lx.bumpRune()
			continue
		}
		if r == '-' && lx.cursor.Off > begin {
			if n := lx.cursor.PeekAt(1); (n >= 'a' && n <= 'z') || (n >= 'A' && n <= 'Z') || n == '_' {
				lx.cursor.Bump()
				continue
			}
		}
		break
	}
	return lx.cursor.Off > begin
}
