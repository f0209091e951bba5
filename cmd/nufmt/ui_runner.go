package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"nufmt/internal/driver"
	"nufmt/internal/logging"
	"nufmt/internal/ui"
)

type batchOutcome struct {
	results []driver.FileResult
	err     error
}

// runFormatWithUI runs the batch in the background and renders its events
// until the batch closes the channel.
func runFormatWithUI(ctx context.Context, out io.Writer, files []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, files, optsCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("nufmt", opts.Check, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	if uiErr != nil {
		logging.FromContext(ctx).Warn("progress view failed", logging.FieldError, uiErr)
	}
	// после выхода из UI канал всё равно нужно дочитать, иначе воркеры встанут
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	return outcome.results, outcome.err
}
