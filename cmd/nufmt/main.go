package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"nufmt/internal/prof"
	"nufmt/internal/version"
)

// Коды выхода.
const (
	exitOK      = 0
	exitChanged = 1 // --check нашёл неотформатированные файлы, init отказался перезаписать
	exitError   = 2
)

// exitStatus carries a non-zero exit code through cobra. err, when set, has
// not been printed yet.
type exitStatus struct {
	code int
	err  error
}

func (e *exitStatus) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitStatus) Unwrap() error { return e.err }

func exitWith(code int) error { return &exitStatus{code: code} }

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var st *exitStatus
	if errors.As(err, &st) {
		if st.err != nil {
			fmt.Fprintf(stderr, "error: %v\n", st.err)
		}
		return st.code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitError
}

// newRootCmd builds the command tree. Flags live in a fresh rootOptions per
// call so tests can run commands side by side.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "nufmt [flags] [patterns...]",
		Short: "A code formatter for Nushell",
		Long: `nufmt formats Nushell scripts in place.

Patterns containing *, ? or [ are expanded as globs (** crosses directories),
directories are searched recursively for .nu files, other arguments are taken
as file paths. Settings come from --config or the nearest .nufmt.toml /
.nufmt.yaml in the current directory or its parents.`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, opts, args)
		},
	}

	f := root.Flags()
	f.BoolVar(&opts.check, "check", false, "check if files are formatted without modifying them")
	f.BoolVar(&opts.stdin, "stdin", false, "read from stdin, write to stdout")
	f.IntVarP(&opts.jobs, "jobs", "j", 0, "parallel workers (default: number of CPUs)")
	f.BoolVar(&opts.cache, "cache", false, "skip files recorded as already formatted")
	f.StringVar(&opts.ui, "ui", string(uiModeOff), "progress view (auto|on|off)")
	f.BoolVar(&opts.debugTokens, "debug-tokens", false, "show lexer tokens of stdin instead of formatting")
	_ = f.MarkHidden("debug-tokens")

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to config file (default: discovered .nufmt.toml)")
	pf.StringVar(&opts.color, "color", string(colorAuto), "when to use colored output (auto|always|never)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	pf.BoolVar(&opts.timings, "timings", false, "print phase timings to stderr")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress per-file and summary lines")
	pf.StringVar(&opts.prof.CPU, "cpu-profile", "", "write a CPU profile to file")
	pf.StringVar(&opts.prof.Mem, "mem-profile", "", "write a heap profile to file")
	pf.StringVar(&opts.prof.Trace, "trace-profile", "", "write a runtime trace to file")
	for _, name := range []string{"cpu-profile", "mem-profile", "trace-profile"} {
		_ = pf.MarkHidden(name)
	}

	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newVersionCmd(opts))
	root.AddCommand(newTokenizeCmd(opts))
	return root
}

// rootOptions holds every flag value of one invocation.
type rootOptions struct {
	check       bool
	stdin       bool
	jobs        int
	cache       bool
	ui          string
	debugTokens bool

	configPath string
	color      string
	logLevel   string
	timings    bool
	quiet      bool
	prof       prof.Options
}
