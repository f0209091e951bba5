package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unterminated string).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Word is a bare word: command names, arguments, flags, paths, keywords.
	Word
	// Variable is `$name` with an optional cell path.
	Variable
	// Number is a numeric, filesize, duration, range or date literal.
	Number
	// String is a quoted, backtick or raw string literal.
	String
	// StringInterp is `$"..."` or `$'...'`, kept as one opaque unit.
	StringInterp
	// Operator is a binary or assignment operator.
	Operator
	// Marker is a glue sigil: `^`, `...` or the optional-access `?`.
	Marker
	// Comment runs from `#` to the end of the line.
	Comment

	Colon     // :
	Comma     // ,
	Semicolon // ;
	Pipe      // |
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	LParen    // (
	RParen    // )
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Word:         "Word",
	Variable:     "Variable",
	Number:       "Number",
	String:       "String",
	StringInterp: "StringInterp",
	Operator:     "Operator",
	Marker:       "Marker",
	Comment:      "Comment",
	Colon:        "Colon",
	Comma:        "Comma",
	Semicolon:    "Semicolon",
	Pipe:         "Pipe",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	LParen:       "LParen",
	RParen:       "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsOpen reports whether k opens a region.
func (k Kind) IsOpen() bool {
	return k == LBrace || k == LBracket || k == LParen
}

// IsClose reports whether k closes a region.
func (k Kind) IsClose() bool {
	return k == RBrace || k == RBracket || k == RParen
}

// Closer returns the closing kind matching an opening kind, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	case LParen:
		return RParen
	default:
		return Invalid
	}
}

// Opener returns the opening kind matching a closing kind, or Invalid.
func (k Kind) Opener() Kind {
	switch k {
	case RBrace:
		return LBrace
	case RBracket:
		return LBracket
	case RParen:
		return LParen
	default:
		return Invalid
	}
}

// Symbol returns the literal text of single-character kinds.
func (k Kind) Symbol() string {
	switch k {
	case Colon:
		return ":"
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case Pipe:
		return "|"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case LParen:
		return "("
	case RParen:
		return ")"
	default:
		return ""
	}
}
