package driver

import (
	"fmt"
	"strings"
)

// Summary aggregates a batch.
type Summary struct {
	Total     int
	Changed   int
	Unchanged int // cached files included
	Cached    int
	Failed    int
}

// Summarize counts results by outcome.
func Summarize(results []FileResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Outcome {
		case OutcomeChanged:
			s.Changed++
		case OutcomeCached:
			s.Cached++
			s.Unchanged++
		case OutcomeFailed:
			s.Failed++
		default:
			s.Unchanged++
		}
	}
	return s
}

// Clean reports a batch with nothing changed and nothing failed.
func (s Summary) Clean() bool { return s.Changed == 0 && s.Failed == 0 }

// ExitCode maps the batch onto the CLI contract: 2 when any file failed, 1
// when check mode found unformatted files, 0 otherwise.
func (s Summary) ExitCode(check bool) int {
	switch {
	case s.Failed > 0:
		return 2
	case check && s.Changed > 0:
		return 1
	default:
		return 0
	}
}

// Line renders the summary sentence without its marker.
func (s Summary) Line(check bool) string {
	word := "files"
	if s.Total == 1 {
		word = "file"
	}
	if s.Clean() {
		if check {
			return fmt.Sprintf("All %d %s formatted correctly", s.Total, word)
		}
		return fmt.Sprintf("All %d %s already formatted", s.Total, word)
	}
	var parts []string
	if s.Changed > 0 {
		if check {
			parts = append(parts, fmt.Sprintf("%d would be reformatted", s.Changed))
		} else {
			parts = append(parts, fmt.Sprintf("%d formatted", s.Changed))
		}
	}
	if s.Unchanged > 0 {
		if check {
			parts = append(parts, fmt.Sprintf("%d already formatted", s.Unchanged))
		} else {
			parts = append(parts, fmt.Sprintf("%d unchanged", s.Unchanged))
		}
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	return fmt.Sprintf("%d %s: %s", s.Total, word, strings.Join(parts, ", "))
}
