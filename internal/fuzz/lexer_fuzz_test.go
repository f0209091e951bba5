package fuzztests

import (
	"testing"

	"nufmt/internal/lexer"
	"nufmt/internal/source"
	"nufmt/internal/testkit"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		file := source.Virtual("fuzz.nu", input)
		toks := lexer.Tokenize(file, lexer.Options{})
		if err := testkit.CheckTokenInvariants(file, toks); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}
