// Package token defines lexical token kinds for Nushell source.
// Invariants:
//   - Token.Text is a slice of the original source (no copies, no rewriting).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace is never a token; gaps are recovered from consecutive spans.
//   - Comments are tokens (Kind: Comment) so the layout engine can place them.
//   - Keywords (let, def, if, match, ...) are plain Words; the lexer only
//     peeks at let/mut/const to split `x=1` bindings.
//   - The stream always ends with exactly one EOF token.
package token
