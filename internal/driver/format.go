package driver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"nufmt/internal/config"
	"nufmt/internal/format"
	"nufmt/internal/logging"
)

// Options configures a batch run.
type Options struct {
	Config   config.Config
	Check    bool // never write; produce diffs
	Jobs     int  // <= 0 means GOMAXPROCS
	Cache    *DiskCache
	Progress ProgressSink
}

// Outcome is the per-file result kind.
type Outcome int

const (
	OutcomeUnchanged Outcome = iota
	OutcomeChanged           // formatted, or would be in check mode
	OutcomeCached            // skipped: recorded as formatted under this config
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeChanged:
		return "changed"
	case OutcomeCached:
		return "cached"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// FileResult captures the result of formatting a single file.
type FileResult struct {
	Path    string
	Outcome Outcome
	Err     error  // read, syntax or write failure
	Diff    string // check mode only, for changed files
	Elapsed time.Duration
}

// FormatPaths formats files in parallel. Results keep the order of files. A
// failing file never aborts its siblings; the returned error is only set when
// ctx is cancelled or the config is invalid. Cancellation is observed between
// files.
func FormatPaths(ctx context.Context, files []string, opts Options) ([]FileResult, error) {
	if _, err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	logging.FromContext(ctx).Debug("formatting", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(ctx context.Context, path string, opts Options) FileResult {
	start := time.Now()
	log := logging.FromContext(ctx)
	res := FileResult{Path: path}
	fail := func(stage Stage, err error) FileResult {
		res.Outcome = OutcomeFailed
		res.Err = err
		res.Elapsed = time.Since(start)
		log.Debug("failed", logging.FieldPath, path, logging.FieldError, err)
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: res.Elapsed})
		return res
	}
	done := func(o Outcome) FileResult {
		res.Outcome = o
		res.Elapsed = time.Since(start)
		log.Debug("done", logging.FieldPath, path, logging.FieldChanged, o == OutcomeChanged, logging.FieldElapsed, res.Elapsed)
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusDone, Outcome: o, Elapsed: res.Elapsed})
		return res
	}

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	// #nosec G304 -- paths come from the user's patterns
	src, err := os.ReadFile(path)
	if err != nil {
		return fail(StageRead, err)
	}

	fp := Fingerprint(opts.Config)
	if _, hit, err := opts.Cache.Get(CacheKey(fp, src), fp); err != nil {
		log.Warn("cache read failed", logging.FieldPath, path, logging.FieldError, err)
	} else if hit {
		return done(OutcomeCached)
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	out, err := format.Source(src, opts.Config)
	if err != nil {
		return fail(StageFormat, err)
	}
	changed := !bytes.Equal(src, out)

	switch {
	case opts.Check && changed:
		diff, err := UnifiedDiff(path, src, out)
		if err != nil {
			return fail(StageFormat, err)
		}
		res.Diff = diff
		return done(OutcomeChanged)
	case changed:
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		if err := writeAtomic(path, out); err != nil {
			return fail(StageWrite, err)
		}
	}

	if err := opts.Cache.Put(CacheKey(fp, out), CacheEntry{Fingerprint: fp, Path: path, Size: len(out)}); err != nil {
		log.Warn("cache write failed", logging.FieldPath, path, logging.FieldError, err)
	}
	if changed {
		return done(OutcomeChanged)
	}
	return done(OutcomeUnchanged)
}

// FormatStream formats everything read from r and returns the input next to
// the output.
func FormatStream(r io.Reader, cfg config.Config) (before, after []byte, err error) {
	before, err = io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read stdin: %w", err)
	}
	after, err = format.Source(before, cfg)
	if err != nil {
		return before, nil, err
	}
	return before, after, nil
}
