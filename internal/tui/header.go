package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/kerntune/internal/cli"
)

// HeaderModel renders the top bar: title, version and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	threads   int
	width     int
}

// NewHeaderModel creates a header whose timer starts now.
func NewHeaderModel(version string, threads int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		threads:   threads,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "kerntune"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")

	duration := time.Since(h.startTime)
	if !h.endTime.IsZero() {
		duration = h.endTime.Sub(h.startTime)
	}

	row := titleStyle.Render(titleText) +
		pipe + versionStyle.Render(fmt.Sprintf("%d threads", h.threads)) +
		pipe + elapsedStyle.Render("Elapsed: "+cli.FormatExecutionDuration(duration))

	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Render(row)
}
