package lexer

import (
	"nufmt/internal/source"
	"nufmt/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	prev     token.Token  // последний выданный токен
	hasPrev  bool
	bindName bool         // предыдущее слово было let/mut/const
	sawNL    bool         // перед текущим токеном был перевод строки
	stack    []token.Kind // открытые скобки, для определения позиции ключа
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен. Пробелы токенами не являются.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	lx.skipSpace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	glued := lx.hasPrev && lx.cursor.Off == lx.prev.Span.End
	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '#' && lx.commentAllowed():
		tok = lx.scanComment()

	case isDelim(ch) || ch == ',' || ch == ':':
		tok = lx.scanPunct()

	case ch == '"' || ch == '\'' || ch == '`':
		tok = lx.scanString()

	case ch == '$':
		tok = lx.scanDollar()

	case ch == 'r' && lx.atRawString():
		tok = lx.scanRawString()

	case lx.atMarker(glued):
		tok = lx.scanMarker()

	case isDec(ch):
		tok = lx.scanNumber()

	case (ch == '-' || ch == '+') && isDec(lx.cursor.PeekAt(1)) && !(glued && lx.prev.IsOperand()):
		// знак числа, а не бинарный оператор
		tok = lx.scanNumber()

	default:
		if op, ok := lx.matchOperator(glued); ok {
			tok = lx.emitOperator(op)
		} else {
			tok = lx.scanWord()
		}
	}

	lx.advance(tok)
	return tok
}

// advance обновляет контекст после выдачи токена.
func (lx *Lexer) advance(tok token.Token) {
	lx.bindName = tok.Kind == token.Word && (tok.Text == "let" || tok.Text == "mut" || tok.Text == "const")
	switch {
	case tok.Kind.IsOpen():
		lx.stack = append(lx.stack, tok.Kind)
	case tok.Kind.IsClose():
		if n := len(lx.stack); n > 0 && lx.stack[n-1] == tok.Kind.Opener() {
			lx.stack = lx.stack[:n-1]
		}
	}
	lx.prev = tok
	lx.hasPrev = true
}

func (lx *Lexer) skipSpace() {
	lx.sawNL = false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isSpace(b) {
			return
		}
		if b == '\n' {
			lx.sawNL = true
		}
		lx.cursor.Bump()
	}
}

// keyPosition reports whether the next word sits where a record key or a
// signature parameter name is expected.
func (lx *Lexer) keyPosition() bool {
	n := len(lx.stack)
	if n == 0 || (lx.stack[n-1] != token.LBrace && lx.stack[n-1] != token.LBracket) {
		return false
	}
	if !lx.hasPrev {
		return false
	}
	return lx.prev.Kind == token.LBrace || lx.prev.Kind == token.LBracket ||
		lx.prev.Kind == token.Comma || lx.sawNL
}

// inList reports whether the innermost open delimiter is '['.
func (lx *Lexer) inList() bool {
	n := len(lx.stack)
	return n > 0 && lx.stack[n-1] == token.LBracket
}

// '#' открывает комментарий только в начале токена.
func (lx *Lexer) commentAllowed() bool {
	if lx.cursor.Off == 0 {
		return true
	}
	p := lx.cursor.Prev()
	return isSpace(p) || p == '{' || p == '[' || p == '(' || p == ';' || p == ',' || p == '|'
}

func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.SkipTo('\n')
	return lx.emit(token.Comment, start)
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	var k token.Kind
	switch lx.cursor.Bump() {
	case '{':
		k = token.LBrace
	case '}':
		k = token.RBrace
	case '[':
		k = token.LBracket
	case ']':
		k = token.RBracket
	case '(':
		k = token.LParen
	case ')':
		k = token.RParen
	case '|':
		k = token.Pipe
	case ';':
		k = token.Semicolon
	case ',':
		k = token.Comma
	default:
		k = token.Colon
	}
	return lx.emit(k, start)
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{Start: lx.cursor.Off, End: lx.cursor.Off}
}
