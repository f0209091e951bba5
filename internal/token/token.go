package token

import (
	"nufmt/internal/source"
)

// Flags are annotations attached by the preprocessing pass.
type Flags uint8

const (
	// Glued means no whitespace may ever separate this token from the next one.
	Glued Flags = 1 << iota
	// Trailing marks a comment sharing a line with the token before it.
	Trailing
	// ParamOpen marks the `|` opening closure parameters.
	ParamOpen
	// ParamClose marks the `|` closing closure parameters.
	ParamClose
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Flags Flags
}

// Has reports whether all bits of f are set.
func (t Token) Has(f Flags) bool { return t.Flags&f == f }

// IsOperand reports whether the token can end an operand, so that an
// operator glued right after it is binary.
func (t Token) IsOperand() bool {
	switch t.Kind {
	case Number, Variable, String, StringInterp, RParen, RBracket, RBrace:
		return true
	default:
		return false
	}
}

// IsValue reports whether the token can start a list element or record key.
func (t Token) IsValue() bool {
	switch t.Kind {
	case Word, Variable, Number, String, StringInterp:
		return true
	default:
		return false
	}
}

// IsOp reports whether the token is the operator op.
func (t Token) IsOp(op string) bool { return t.Kind == Operator && t.Text == op }
