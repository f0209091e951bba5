package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexUnterminatedString Code = 1001
	LexBadRawString       Code = 1002

	// Скобки
	SynInfo                Code = 2000
	SynUnclosedDelimiter   Code = 2001
	SynUnexpectedDelimiter Code = 2002
	SynMismatchedDelimiter Code = 2003
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnterminatedString:  "Unterminated string literal",
	LexBadRawString:        "Malformed raw string literal",
	SynInfo:                "Syntax information",
	SynUnclosedDelimiter:   "Unclosed delimiter",
	SynUnexpectedDelimiter: "Unexpected closing delimiter",
	SynMismatchedDelimiter: "Mismatched closing delimiter",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
