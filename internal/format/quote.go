package format

import (
	"strings"

	"nufmt/internal/config"
)

// normalizeQuotes converts between '...' and "..." only when the literal's
// value cannot change: the body must hold neither the target quote nor a
// backslash. Backtick and raw (r#'...'#) strings are returned as is.
func normalizeQuotes(text string, style config.QuoteStyle) string {
	if len(text) < 2 {
		return text
	}
	q := text[0]
	if (q != '"' && q != '\'') || text[len(text)-1] != q {
		return text
	}
	body := text[1 : len(text)-1]
	switch {
	case style == config.QuoteDouble && q == '\'' && !strings.ContainsAny(body, "\"\\"):
		return `"` + body + `"`
	case style == config.QuoteSingle && q == '"' && !strings.ContainsAny(body, "'\\"):
		return "'" + body + "'"
	default:
		return text
	}
}
