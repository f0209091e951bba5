package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"nufmt/internal/source"
	"nufmt/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Span  source.Span `json:"span"`
	Line  uint32      `json:"line"`
	Col   uint32      `json:"col"`
	Gap   string      `json:"gap,omitempty"`
	Flags []string    `json:"flags,omitempty"`
}

func flagNames(f token.Flags) []string {
	var out []string
	if f&token.Glued != 0 {
		out = append(out, "glued")
	}
	if f&token.Trailing != 0 {
		out = append(out, "trailing")
	}
	if f&token.ParamOpen != 0 {
		out = append(out, "param-open")
	}
	if f&token.ParamClose != 0 {
		out = append(out, "param-close")
	}
	return out
}

func gapBefore(file *source.File, tokens []token.Token, i int) string {
	if i == 0 {
		return string(file.Content[:tokens[0].Span.Start])
	}
	return string(file.Content[tokens[i-1].Span.End:tokens[i].Span.Start])
}

// FormatTokensPretty выводит токены в человекочитаемом формате, вместе с
// пробельными промежутками между ними.
func FormatTokensPretty(w io.Writer, tokens []token.Token, file *source.File) error {
	for i, tok := range tokens {
		if gap := gapBefore(file, tokens, i); gap != "" {
			if _, err := fmt.Fprintf(w, "     %-13s %q\n", "·gap", gap); err != nil {
				return err
			}
		}
		startPos, endPos := file.Position(tok.Span.Start), file.Position(tok.Span.End)
		line := fmt.Sprintf("%3d: %-13s", i+1, tok.Kind.String())
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if names := flagNames(tok.Flags); len(names) > 0 {
			line += " (" + strings.Join(names, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, file *source.File) error {
	output := make([]TokenOutput, 0, len(tokens))
	for i, tok := range tokens {
		pos := file.Position(tok.Span.Start)
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Span:  tok.Span,
			Line:  pos.Line,
			Col:   pos.Col,
			Gap:   gapBefore(file, tokens, i),
			Flags: flagNames(tok.Flags),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatTokens dispatches on format.
func FormatTokens(w io.Writer, tokens []token.Token, file *source.File, format TokenFormat) error {
	switch format {
	case TokensJSON:
		return FormatTokensJSON(w, tokens, file)
	case TokensPretty, "":
		return FormatTokensPretty(w, tokens, file)
	default:
		return fmt.Errorf("unknown token format %q", format)
	}
}
