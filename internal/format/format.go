package format

import (
	"nufmt/internal/config"
	"nufmt/internal/diag"
	"nufmt/internal/lexer"
	"nufmt/internal/source"
	"nufmt/internal/token"
)

// Source formats src with cfg. It returns *config.ConfigError for an invalid
// cfg and *SyntaxError when the front end rejects src.
func Source(src []byte, cfg config.Config) ([]byte, error) {
	if _, err := cfg.Validate(); err != nil {
		return nil, err
	}
	file := source.Virtual("<input>", src)
	toks, err := frontEnd(file)
	if err != nil {
		return nil, err
	}
	p := newPrinter(file.Content, preprocess(file.Content, toks), cfg)
	p.printFile()
	return p.w.Bytes(), nil
}

// SourceString is Source for string input.
func SourceString(src string, cfg config.Config) (string, error) {
	out, err := Source([]byte(src), cfg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DebugTokens returns the raw front-end tokens of src, EOF included.
// Errors are ignored so that broken input can still be inspected.
func DebugTokens(src []byte) []token.Token {
	return lexer.Tokenize(source.Virtual("<input>", src), lexer.Options{})
}

func frontEnd(file *source.File) ([]token.Token, error) {
	bag := diag.NewBag(64)
	toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if !bag.HasErrors() {
		return toks, nil
	}
	return nil, newSyntaxError(file, firstError(bag))
}

// firstError prefers lexical failures: an unterminated string swallows the
// rest of the file and would otherwise surface as an unclosed delimiter.
func firstError(bag *diag.Bag) diag.Diagnostic {
	bag.Sort()
	for _, d := range bag.Items() {
		if d.Severity.Blocks() && d.Code < diag.SynInfo {
			return d
		}
	}
	d, _ := bag.FirstError()
	return d
}
