package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"nufmt/internal/config"
	"nufmt/internal/driver"
	"nufmt/internal/logging"
	"nufmt/internal/observ"
	"nufmt/internal/prof"
)

const stdinName = "<stdin>"

func runFormat(cmd *cobra.Command, opts *rootOptions, args []string) error {
	session, err := newSession(cmd, opts)
	if err != nil {
		return err
	}
	defer session.finish()

	if opts.debugTokens {
		return dumpTokens(cmd.InOrStdin(), cmd.OutOrStdout(), stdinName, "pretty")
	}
	if !opts.stdin && len(args) == 0 {
		_ = cmd.Help()
		return exitWith(exitError)
	}
	if opts.stdin && len(args) > 0 {
		return &exitStatus{code: exitError, err: errors.New("--stdin does not take file patterns")}
	}

	cfg, err := session.loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.stdin {
		return session.formatStdin(cmd, cfg)
	}
	return session.formatFiles(cmd, cfg, args)
}

// session bundles what every formatting path needs: the logger-carrying
// context, the reporter and the optional timer.
type session struct {
	ctx   context.Context
	opts  *rootOptions
	rep   *reporter
	timer *observ.Timer
	prof  *prof.Session
}

func newSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	mode, err := readColorMode(opts.color)
	if err != nil {
		return nil, &exitStatus{code: exitError, err: err}
	}
	stderr := cmd.ErrOrStderr()
	logger := logging.NewWriter(stderr, opts.logLevel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s := &session{
		ctx:  logging.WithLogger(ctx, logger),
		opts: opts,
		rep: &reporter{
			w:     stderr,
			color: mode.enabled(stderr),
			quiet: opts.quiet,
			check: opts.check,
		},
	}
	if opts.timings {
		s.timer = observ.NewTimer()
	}
	if opts.prof.Enabled() {
		if s.prof, err = prof.Start(opts.prof); err != nil {
			return nil, &exitStatus{code: exitError, err: err}
		}
	}
	return s, nil
}

func (s *session) finish() {
	if err := s.prof.Stop(); err != nil {
		logging.FromContext(s.ctx).Warn("profiling", logging.FieldError, err)
	}
	if s.timer != nil {
		s.timer.WriteSummary(s.rep.w)
	}
}

// track runs fn as a timed phase when --timings is on.
func (s *session) track(name string, fn func() (string, error)) error {
	if s.timer == nil {
		_, err := fn()
		return err
	}
	return s.timer.Track(name, fn)
}

func (s *session) loadConfig(explicit string) (config.Config, error) {
	var cfg config.Config
	err := s.track("config", func() (string, error) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		c, path, err := config.Resolve(explicit, wd)
		if err != nil {
			return "", err
		}
		cfg = c
		if path == "" {
			logging.FromContext(s.ctx).Debug("no config file, using defaults")
			return "defaults", nil
		}
		logging.FromContext(s.ctx).Debug("config loaded", logging.FieldConfig, path)
		return path, nil
	})
	if err != nil {
		return config.Config{}, &exitStatus{code: exitError, err: err}
	}
	return cfg, nil
}

func (s *session) formatStdin(cmd *cobra.Command, cfg config.Config) error {
	var before, after []byte
	err := s.track("format", func() (string, error) {
		var err error
		before, after, err = driver.FormatStream(cmd.InOrStdin(), cfg)
		return "", err
	})
	if err != nil {
		s.rep.failure(stdinName, err)
		return exitWith(exitError)
	}

	if !s.opts.check {
		if _, err := cmd.OutOrStdout().Write(after); err != nil {
			return &exitStatus{code: exitError, err: err}
		}
		return nil
	}
	diff, err := driver.UnifiedDiff(stdinName, before, after)
	if err != nil {
		return &exitStatus{code: exitError, err: err}
	}
	if diff == "" {
		return nil
	}
	s.rep.diff(diff)
	return exitWith(exitChanged)
}

func (s *session) formatFiles(cmd *cobra.Command, cfg config.Config, patterns []string) error {
	var files []string
	err := s.track("discover", func() (string, error) {
		var err error
		files, err = driver.ExpandPatterns(s.ctx, patterns)
		return fmt.Sprintf("%d files", len(files)), err
	})
	if err != nil {
		return &exitStatus{code: exitError, err: err}
	}
	logging.FromContext(s.ctx).Debug("discovered", logging.FieldFiles, len(files))

	dopts := driver.Options{Config: cfg, Check: s.opts.check, Jobs: s.opts.jobs}
	if s.opts.cache {
		cache, err := driver.OpenDiskCache("nufmt")
		if err != nil {
			logging.FromContext(s.ctx).Warn("cache disabled", logging.FieldError, err)
		} else {
			logging.FromContext(s.ctx).Debug("cache", logging.FieldCache, cache.Dir())
			dopts.Cache = cache
		}
	}

	mode, err := readUIMode(s.opts.ui)
	if err != nil {
		return &exitStatus{code: exitError, err: err}
	}
	useUI := !s.opts.quiet && shouldUseTUI(mode, cmd.OutOrStdout())

	var results []driver.FileResult
	err = s.track("format", func() (string, error) {
		var err error
		if useUI {
			results, err = runFormatWithUI(s.ctx, cmd.OutOrStdout(), files, dopts)
		} else {
			results, err = driver.FormatPaths(s.ctx, files, dopts)
		}
		sum := driver.Summarize(results)
		return fmt.Sprintf("%d changed, %d failed", sum.Changed, sum.Failed), err
	})
	if err != nil {
		var ce *config.ConfigError
		if errors.As(err, &ce) {
			return &exitStatus{code: exitError, err: err}
		}
		// отмена: печатаем то, что успели
		logging.FromContext(s.ctx).Warn("interrupted", logging.FieldError, err)
		results = slices.DeleteFunc(results, func(r driver.FileResult) bool { return r.Path == "" })
	}

	for _, res := range results {
		if useUI && res.Outcome == driver.OutcomeChanged && res.Diff == "" {
			continue
		}
		s.rep.file(res)
	}
	sum := driver.Summarize(results)
	s.rep.summary(sum)

	code := sum.ExitCode(s.opts.check)
	if err != nil && code == exitOK {
		code = exitError
	}
	if code != exitOK {
		return exitWith(code)
	}
	return nil
}
