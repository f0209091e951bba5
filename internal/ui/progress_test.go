package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nufmt/internal/driver"
)

func feed(m *progressModel, evs ...driver.Event) {
	for _, ev := range evs {
		m.Update(eventMsg(ev))
	}
}

func TestProgressModelTracksOutcomes(t *testing.T) {
	files := []string{"a.nu", "b.nu", "c.nu"}
	m := NewProgressModel("nufmt", true, files, nil).(*progressModel)

	feed(m,
		driver.Event{File: "a.nu", Stage: driver.StageFormat, Status: driver.StatusWorking},
		driver.Event{File: "a.nu", Status: driver.StatusDone, Outcome: driver.OutcomeChanged},
		driver.Event{File: "b.nu", Status: driver.StatusError, Err: errors.New("boom")},
		driver.Event{File: "c.nu", Status: driver.StatusDone, Outcome: driver.OutcomeCached},
		driver.Event{File: "unknown.nu", Status: driver.StatusDone},
	)

	assert.Equal(t, "reformatted", m.items[0].status)
	assert.Equal(t, "error", m.items[1].status)
	assert.Equal(t, "cached", m.items[2].status)
	assert.Equal(t, 3, m.settled)

	_, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	view := m.View()
	assert.Contains(t, view, "done: nufmt 3/3")
	assert.Contains(t, view, "reformatted")
}

func TestProgressModelLimitsRows(t *testing.T) {
	files := make([]string, 30)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.nu", i)
	}
	m := NewProgressModel("nufmt", false, files, nil).(*progressModel)
	feed(m, driver.Event{File: "f29.nu", Status: driver.StatusError})

	view := m.View()
	assert.Contains(t, view, "f29.nu")
	assert.Contains(t, view, "more")
	assert.Less(t, strings.Count(view, "\n"), 30)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "formatted", statusLabel(driver.Event{Status: driver.StatusDone, Outcome: driver.OutcomeChanged}, false))
	assert.Equal(t, "unchanged", statusLabel(driver.Event{Status: driver.StatusDone}, false))
	assert.Equal(t, "writing", statusLabel(driver.Event{Status: driver.StatusWorking, Stage: driver.StageWrite}, false))
	assert.Equal(t, "", statusLabel(driver.Event{Status: driver.StatusWorking}, false))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	// многоточие входит в ширину
	assert.Equal(t, 10, runewidth.StringWidth(truncate(strings.Repeat("x", 40), 10)))
	assert.Equal(t, "世界...", truncate("世界世界世界", 8))
}
