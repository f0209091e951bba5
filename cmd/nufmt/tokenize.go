package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"nufmt/internal/diagfmt"
	"nufmt/internal/format"
	"nufmt/internal/source"
)

func newTokenizeCmd(_ *rootOptions) *cobra.Command {
	var outFormat string
	cmd := &cobra.Command{
		Use:    "tokenize [flags] file.nu",
		Short:  "Dump the lexer tokens of a Nushell file",
		Long:   `Tokenize prints every token with its span, flags and the gap before it. Use "-" for stdin.`,
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return dumpTokens(cmd.InOrStdin(), cmd.OutOrStdout(), stdinName, outFormat)
			}
			// #nosec G304 -- path is provided by the user
			f, err := os.Open(args[0])
			if err != nil {
				return &exitStatus{code: exitError, err: err}
			}
			defer f.Close()
			return dumpTokens(f, cmd.OutOrStdout(), args[0], outFormat)
		},
	}
	cmd.Flags().StringVar(&outFormat, "format", string(diagfmt.TokensPretty), "output format (pretty|json)")
	return cmd
}

// dumpTokens lexes everything from r and prints the tokens. Syntax errors are
// ignored so that broken input can be inspected.
func dumpTokens(r io.Reader, w io.Writer, name, outFormat string) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return &exitStatus{code: exitError, err: fmt.Errorf("read %s: %w", name, err)}
	}
	file := source.Virtual(name, src)
	toks := format.DebugTokens(src)
	if err := diagfmt.FormatTokens(w, toks, file, diagfmt.TokenFormat(outFormat)); err != nil {
		return &exitStatus{code: exitError, err: err}
	}
	return nil
}
