package format

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nufmt/internal/config"
	"nufmt/internal/diag"
	"nufmt/internal/testkit"
)

type fmtCase struct {
	name string
	in   string
	want string
	cfg  func(*config.Config)
}

func (c fmtCase) config() config.Config {
	cfg := config.Default()
	if c.cfg != nil {
		c.cfg(&cfg)
	}
	return cfg
}

func width(n int) func(*config.Config) {
	return func(c *config.Config) { c.MaxWidth = n }
}

var cases = []fmtCase{
	{name: "simple", in: "ls", want: "ls\n"},
	{name: "empty", in: "", want: "\n"},
	{name: "blank only", in: "   \n\n\t\n", want: "\n"},
	{name: "pipeline spacing", in: "ls|sort-by name", want: "ls | sort-by name\n"},
	{name: "crlf", in: "ls   -la\r\n", want: "ls -la\n"},
	{name: "binding", in: "let x=1", want: "let x = 1\n"},
	{name: "arith", in: "let x = 1 + 2", want: "let x = 1 + 2\n"},
	{name: "semicolon", in: "ls;ls", want: "ls; ls\n"},
	{name: "block indent", in: "if true {\necho hello\n}", want: "if true {\n  echo hello\n}\n"},
	{
		name: "nested blocks",
		in:   "if true {\n  if false {\n    echo nested\n  }\n}\n",
		want: "if true {\n  if false {\n    echo nested\n  }\n}\n",
	},
	{
		name: "indent width 4",
		in:   "if true {\nls\n}",
		want: "if true {\n    ls\n}\n",
		cfg:  func(c *config.Config) { c.IndentWidth = 4 },
	},
	{name: "inline record", in: "{a:1,  b:   2}", want: "{ a: 1, b: 2 }\n"},
	{name: "inline list", in: "[1,  2,   3]", want: "[ 1, 2, 3 ]\n"},
	{name: "nested lists", in: "[[1, 2], [3, 4]]", want: "[ [ 1, 2 ], [ 3, 4 ] ]\n"},
	{name: "table literal", in: "[[a, b]; [1, 2]]", want: "[ [ a, b ]; [ 1, 2 ] ]\n"},
	{name: "multiline record", in: "{\na: 1\nb: 2\n}", want: "{\n  a: 1,\n  b: 2,\n}\n"},
	{name: "record pairs on one line", in: "{\n  a: 1  b: 2\n}", want: "{\n  a: 1,\n  b: 2,\n}\n"},
	{name: "multiline list", in: "[\n1\n2\n3\n]", want: "[\n  1,\n  2,\n  3,\n]\n"},
	{
		name: "trailing comma never",
		in:   "[\n1,\n2,\n]",
		want: "[\n  1,\n  2\n]\n",
		cfg:  func(c *config.Config) { c.TrailingComma = config.TrailingNever },
	},
	{
		name: "trailing comma never without commas",
		in:   "[\n1\n2\n]",
		want: "[\n  1\n  2\n]\n",
		cfg:  func(c *config.Config) { c.TrailingComma = config.TrailingNever },
	},
	{
		name: "compact brackets",
		in:   "[1, 2]\n{a: 1}\nif true {ls}",
		want: "[1, 2]\n{a: 1}\nif true { ls }\n",
		cfg:  func(c *config.Config) { c.BracketSpacing = config.BracketCompact },
	},
	{name: "closure", in: "{|x, y| $x + $y}", want: "{|x, y| $x + $y }\n"},
	{name: "closure param spacing", in: "{ | a ,b | $a }", want: "{|a, b| $a }\n"},
	{name: "closure in pipeline", in: "ls | each { |it| $it.name }", want: "ls | each {|it| $it.name }\n"},
	{name: "empty regions", in: "{ }\n[ ]\nfoo ( )\n{|x|}", want: "{}\n[]\nfoo ()\n{|x| }\n"},
	{name: "paren", in: "(ls | length)", want: "(ls | length)\n"},
	{
		name: "signature",
		in:   "def greet [name: string, --loud(-l)] {\nprint $name\n}",
		want: "def greet [ name: string, --loud(-l) ] {\n  print $name\n}\n",
	},
	{
		name: "match arms",
		in:   "match $x {\n1 => \"one\"\n_ => \"other\"\n}",
		want: "match $x {\n  1 => \"one\"\n  _ => \"other\"\n}\n",
	},
	{
		name: "pipeline continuation",
		in:   "ls\n| where size > 1kb\n| length",
		want: "ls\n| where size > 1kb\n| length\n",
	},
	{name: "external command", in: "^git   status", want: "^git status\n"},
	{name: "spread", in: "cargo build ...$flags", want: "cargo build ...$flags\n"},
	{name: "optional cell path", in: "$x.a?   | default 0", want: "$x.a? | default 0\n"},
	{name: "interpolation", in: "print $\"hello ($name)\"", want: "print $\"hello ($name)\"\n"},
	{name: "unicode", in: "echo   \"héllo 世界\"", want: "echo \"héllo 世界\"\n"},
	{name: "multiline string", in: "let s = \"line1\n   line2\"", want: "let s = \"line1\n   line2\"\n"},

	// quotes
	{name: "single to double", in: "echo 'hello'", want: "echo \"hello\"\n"},
	{name: "keep inner quote", in: `echo 'say "hi"'`, want: "echo 'say \"hi\"'\n"},
	{name: "keep backslash", in: `echo 'C:\path'`, want: "echo 'C:\\path'\n"},
	{
		name: "double to single",
		in:   `echo "hello" "it's" "a\nb"`,
		want: "echo 'hello' \"it's\" \"a\\nb\"\n",
		cfg:  func(c *config.Config) { c.QuoteStyle = config.QuoteSingle },
	},
	{
		name: "preserve quotes",
		in:   `echo 'a'   "b"`,
		want: "echo 'a' \"b\"\n",
		cfg:  func(c *config.Config) { c.QuoteStyle = config.QuotePreserve },
	},
	{name: "raw and backtick untouched", in: "echo r#'x'# `y`", want: "echo r#'x'# `y`\n"},

	// comments
	{
		name: "comments and blank lines",
		in:   "ls # list files\n\n\n\n# next\necho hi",
		want: "ls # list files\n\n# next\necho hi\n",
	},
	{name: "trailing comment blanks", in: "ls    # c   ", want: "ls # c\n"},
	{
		name: "blank lines at block edges",
		in:   "def f [] {\n\n  ls\n\n}",
		want: "def f [] {\n  ls\n}\n",
	},
	{name: "comment forces multiline", in: "[1, # one\n2]", want: "[\n  1, # one\n  2,\n]\n"},
	{name: "comment after open", in: "{ # config\na: 1\n}", want: "{ # config\n  a: 1,\n}\n"},

	// width
	{
		name: "record over width",
		in:   `let r = {name: "alice", age: 30}`,
		want: "let r = {\n  name: \"alice\",\n  age: 30,\n}\n",
		cfg:  width(20),
	},
	{
		name: "list over width",
		in:   "[1111111, 2222222, 3333333]",
		want: "[\n  1111111,\n  2222222,\n  3333333,\n]\n",
		cfg:  width(20),
	},
	{
		name: "match over width",
		in:   "match $x { 1 => 12345, 2 => 67890, _ => 0 }",
		want: "match $x {\n  1 => 12345,\n  2 => 67890,\n  _ => 0\n}\n",
		cfg:  width(20),
	},
	{
		name: "closure over width",
		in:   "ls | each {|file| $file.name | str upcase}",
		want: "ls | each {|file|\n  $file.name | str upcase\n}\n",
		cfg:  width(20),
	},
	{
		name: "paren over width",
		in:   "let n = (ls | where size > 10 | length)",
		want: "let n = (\n  ls | where size > 10 | length\n)\n",
		cfg:  width(20),
	},
	{
		name: "nested list over width",
		in:   "let r = {a: [1, 2], b: [3, 4, 5, 6, 7]}",
		want: "let r = {\n  a: [ 1, 2 ],\n  b: [\n    3,\n    4,\n    5,\n    6,\n    7,\n  ],\n}\n",
		cfg:  width(20),
	},
	{name: "hex colour value", in: "{color:#fff}", want: "{ color:#fff }\n"},
	{name: "time value", in: "{\n  time: 10:30:00\n}", want: "{\n  time: 10:30:00,\n}\n"},
	{name: "colon chain", in: "{\n  a: 1 b:2:\n}", want: "{\n  a: 1,\n  b:2:,\n}\n"},
	{
		name: "flags in long list",
		in:   "let args = [--release --locked --all-features --workspace --no-default-features --target x86_64-unknown-linux-gnu]",
		want: "let args = [\n  --release,\n  --locked,\n  --all-features,\n  --workspace,\n" +
			"  --no-default-features,\n  --target,\n  x86_64-unknown-linux-gnu,\n]\n",
	},
	{name: "flag value in record", in: "{\n  a: --x\n}", want: "{\n  a: --x,\n}\n"},
	{
		name: "external command in list over width",
		in:   "[^git status foo-bar-baz]",
		want: "[\n  ^git,\n  status,\n  foo-bar-baz,\n]\n",
		cfg:  width(20),
	},
	{
		name: "external command in block",
		in:   "if true {\nls\n| ^git status\n}",
		want: "if true {\n  ls\n  | ^git status\n}\n",
	},
	{
		name: "external command in closure over width",
		in:   "ls | each {|f| ^git add $f.name}",
		want: "ls | each {|f|\n  ^git add $f.name\n}\n",
		cfg:  width(20),
	},
}

func TestSource(t *testing.T) {
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SourceString(tc.in, tc.config())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIdempotent(t *testing.T) {
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.config()
			once, err := SourceString(tc.in, cfg)
			require.NoError(t, err)
			twice, err := SourceString(once, cfg)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestLiteralsSurvive(t *testing.T) {
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Source([]byte(tc.in), tc.config())
			require.NoError(t, err)
			require.NoError(t, testkit.SameLiterals([]byte(tc.in), out))
		})
	}
}

func TestCommentsSurvive(t *testing.T) {
	for _, tc := range cases {
		in := DebugTokens([]byte(tc.in))
		cfg := tc.config()
		out, err := Source([]byte(tc.in), cfg)
		require.NoError(t, err, tc.name)
		var before, after []string
		for _, tok := range in {
			if tok.Kind.String() == "Comment" {
				before = append(before, strings.TrimRight(tok.Text, " \t"))
			}
		}
		for _, tok := range DebugTokens(out) {
			if tok.Kind.String() == "Comment" {
				after = append(after, tok.Text)
			}
		}
		assert.Equal(t, before, after, tc.name)
	}
}

func TestWidthRespected(t *testing.T) {
	for _, tc := range cases {
		cfg := tc.config()
		if cfg.MaxWidth != 20 {
			continue
		}
		out, err := SourceString(tc.in, cfg)
		require.NoError(t, err)
		for _, line := range strings.Split(out, "\n") {
			// строку без inline-региона сократить нечем
			if !holdsInlineRegion(line) {
				continue
			}
			assert.LessOrEqual(t, runewidth.StringWidth(line), cfg.MaxWidth, "%s: %q", tc.name, line)
		}
	}
}

// holdsInlineRegion reports a line that opens and closes a region itself.
func holdsInlineRegion(line string) bool {
	open := strings.IndexAny(line, "{[(")
	return open >= 0 && strings.ContainsAny(line[open:], "}])")
}

func TestOutputEndsWithSingleNewline(t *testing.T) {
	for _, in := range []string{"ls\n\n\n", "ls   ", "# c\n\n", "{\n}\n\n"} {
		out, err := SourceString(in, config.Default())
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(out, "\n"))
		assert.False(t, strings.HasSuffix(out, "\n\n"), "%q -> %q", in, out)
		for _, line := range strings.Split(out, "\n") {
			assert.Equal(t, strings.TrimRight(line, " \t"), line)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		in      string
		code    diag.Code
		line    uint32
		col     uint32
		message string
		hint    string
	}{
		{"if true {", diag.SynUnclosedDelimiter, 1, 9, "unclosed delimiter `{`", "add a matching `}` to close it"},
		{"echo \"abc", diag.LexUnterminatedString, 1, 6, "unterminated string", "add a closing `\"` to end the string"},
		{"ls\nls }", diag.SynUnexpectedDelimiter, 2, 4, "unexpected closing delimiter `}`", ""},
		{"(ls]", diag.SynMismatchedDelimiter, 1, 4, "mismatched closing delimiter", ""},
		{"# ünï\n{ \"abc", diag.LexUnterminatedString, 2, 3, "unterminated string", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := SourceString(tt.in, config.Default())
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.col, se.Column)
			assert.Contains(t, se.Message, tt.message)
			if tt.hint != "" {
				assert.Equal(t, tt.hint, se.Hint)
			}
		})
	}
}

func TestSyntaxErrorRendering(t *testing.T) {
	_, err := SourceString("if true {", config.Default())
	require.Error(t, err)
	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "1:9: unclosed delimiter `{`"), msg)
	assert.Contains(t, msg, " 1 | if true {")
	assert.Contains(t, msg, "   |         ^")
	assert.Contains(t, msg, "= help: add a matching `}` to close it")
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.IndentWidth = 0
	_, err := SourceString("ls", cfg)
	var ce *config.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "indent_width", ce.Field)

	cfg = config.Default()
	cfg.MaxWidth = 19
	_, err = SourceString("ls", cfg)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "max_width", ce.Field)
}

func TestDebugTokensKeepsBrokenInput(t *testing.T) {
	toks := DebugTokens([]byte("ls {"))
	require.Len(t, toks, 3)
	assert.Equal(t, "EOF", toks[2].Kind.String())
}

func TestFixtures(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*.nu"))
	require.NoError(t, err)
	require.NotEmpty(t, inputs)
	for _, in := range inputs {
		if strings.HasSuffix(in, ".expected.nu") {
			continue
		}
		t.Run(filepath.Base(in), func(t *testing.T) {
			src, err := os.ReadFile(in)
			require.NoError(t, err)
			want, err := os.ReadFile(strings.TrimSuffix(in, ".nu") + ".expected.nu")
			require.NoError(t, err)

			got, err := Source(src, config.Default())
			require.NoError(t, err)
			assert.Equal(t, string(want), string(got))

			again, err := Source(got, config.Default())
			require.NoError(t, err)
			assert.Equal(t, string(got), string(again))
		})
	}
}
