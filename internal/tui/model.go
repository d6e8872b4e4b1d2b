package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/agbru/kerntune/internal/orchestration"
	"github.com/agbru/kerntune/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	tickInterval   = 500 * time.Millisecond
	historySize    = 64
	minPanelWidth  = 30
	nameColumnSize = 10
)

type kernelStatus int

const (
	statusPending kernelStatus = iota
	statusRunning
	statusDone
	statusFailed
)

// kernelRow is the dashboard view of one kernel.
type kernelRow struct {
	name       string
	status     kernelStatus
	trials     int
	lastScale  int
	last       float64
	bestScale  int
	best       float64
	multiplier int
	maxBatch   int
	err        error
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header HeaderModel
	keymap KeyMap

	kernels []kernelRow
	current int

	// throughput holds the trial rates of the kernel being tuned.
	throughput *RingBuffer
	cpu        *RingBuffer
	mem        *RingBuffer

	width  int
	height int

	ctx    context.Context
	cancel context.CancelFunc
	done   bool
	err    error
}

// NewModel creates a dashboard for a run canceled through cancel.
func NewModel(ctx context.Context, cancel context.CancelFunc, version string, threads int) Model {
	return Model{
		header:     NewHeaderModel(version, threads),
		keymap:     DefaultKeyMap(),
		current:    -1,
		throughput: NewRingBuffer(historySize),
		cpu:        NewRingBuffer(historySize),
		mem:        NewRingBuffer(historySize),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(m.width)
		if w := m.panelWidth() - nameColumnSize; w > 0 {
			m.cpu.Resize(w)
			m.mem.Resize(w)
		}
		return m, nil

	case KernelStartedMsg:
		m.startKernel(msg)
		return m, nil

	case TrialMsg:
		if row := m.row(msg.Kernel); row != nil {
			row.trials++
			row.lastScale = msg.Trial.Scale
			row.last = msg.Trial.Throughput
			if msg.Trial.Accepted {
				row.bestScale = msg.Trial.Scale
				row.best = msg.Trial.Throughput
			}
			m.throughput.Push(msg.Trial.Throughput)
		}
		return m, nil

	case KernelFinishedMsg:
		m.finishKernel(msg.Result)
		return m, nil

	case TuningCompleteMsg:
		m.done = true
		m.err = msg.Err
		m.header.SetDone()
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		m.done = true
		m.err = msg.Err
		m.header.SetDone()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startKernel(msg KernelStartedMsg) {
	for len(m.kernels) < msg.Total {
		m.kernels = append(m.kernels, kernelRow{})
	}
	if msg.Index < 0 || msg.Index >= len(m.kernels) {
		return
	}
	m.kernels[msg.Index] = kernelRow{name: msg.Name, status: statusRunning}
	m.current = msg.Index
	m.throughput.Reset()
}

func (m *Model) finishKernel(res orchestration.KernelResult) {
	row := m.row(res.Name)
	if row == nil {
		return
	}
	if res.Err != nil {
		row.status = statusFailed
		row.err = res.Err
		return
	}
	row.status = statusDone
	row.bestScale = res.Outcome.BestScale
	row.best = res.Outcome.BestThroughput
	row.multiplier = res.Outcome.Multiplier
	row.maxBatch = res.Outcome.MaxBatch
}

func (m *Model) row(name string) *kernelRow {
	for i := range m.kernels {
		if m.kernels[i].name == name {
			return &m.kernels[i]
		}
	}
	return nil
}

func (m Model) panelWidth() int {
	return max(m.width-4, minPanelWidth)
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	w := m.panelWidth()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		panelStyle.Width(w).Render(m.kernelsView()),
		panelStyle.Width(w).Render(m.chartsView()),
		m.footerView(),
	)
}

func (m Model) kernelsView() string {
	if len(m.kernels) == 0 {
		return statusPendingStyle.Render("waiting for the first kernel")
	}
	lines := make([]string, 0, len(m.kernels))
	for _, row := range m.kernels {
		name := kernelStyle.Render(fmt.Sprintf("%-*s", nameColumnSize, row.name))
		var status string
		switch row.status {
		case statusPending:
			name = statusPendingStyle.Render(fmt.Sprintf("%-*s", nameColumnSize, "-"))
			status = statusPendingStyle.Render("pending")
		case statusRunning:
			status = statusRunningStyle.Render("tuning") + fmt.Sprintf("  scale %d  %s c/s  (%d trials)",
				row.lastScale, humanize.Comma(int64(row.last)), row.trials)
		case statusDone:
			status = statusDoneStyle.Render(fmt.Sprintf("x%d", row.multiplier)) + fmt.Sprintf("  scale %d  max batch %s  %s c/s",
				row.bestScale, humanize.Comma(int64(row.maxBatch)), humanize.Comma(int64(row.best)))
		case statusFailed:
			status = statusErrorStyle.Render(fmt.Sprintf("failed: %v", row.err))
		}
		lines = append(lines, name+"  "+status)
	}
	return strings.Join(lines, "\n")
}

func (m Model) chartsView() string {
	label := func(s string) string {
		return metricLabelStyle.Render(fmt.Sprintf("%-*s", nameColumnSize, s))
	}
	rates := label("trials") + sparklineStyle.Render(RenderSparkline(PercentOfMax(m.throughput.Slice())))
	if best := m.throughput.Max(); best > 0 {
		rates += "  " + metricValueStyle.Render(humanize.Comma(int64(best))+" c/s")
	}
	cpu := label("cpu") + sparklineStyle.Render(RenderSparkline(m.cpu.Slice())) +
		"  " + metricValueStyle.Render(fmt.Sprintf("%.1f%%", m.cpu.Last()))
	mem := label("mem") + sparklineStyle.Render(RenderSparkline(m.mem.Slice())) +
		"  " + metricValueStyle.Render(fmt.Sprintf("%.1f%%", m.mem.Last()))
	return strings.Join([]string{rates, cpu, mem}, "\n")
}

func (m Model) footerView() string {
	state := statusRunningStyle.Render("tuning")
	switch {
	case m.done && m.err != nil:
		state = statusErrorStyle.Render("stopped: " + m.err.Error())
	case m.done:
		state = statusDoneStyle.Render("done")
	}
	return " " + footerKeyStyle.Render("q") + footerDescStyle.Render(" quit") + "  " + state
}

// TuneFunc runs the tuning session the dashboard watches.
type TuneFunc func(ctx context.Context) (orchestration.Report, error)

// Run shows the dashboard while tune runs in the background. The
// dashboard stays up after tuning until the user quits; quitting early
// cancels the run. It returns the report and error of tune.
func Run(ctx context.Context, r *Reporter, tune TuneFunc, version string, threads int) (orchestration.Report, error) {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(ctx, cancel, version, threads), tea.WithAltScreen())
	r.ref.SetProgram(p)

	type result struct {
		report orchestration.Report
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := tune(ctx)
		r.ref.Send(TuningCompleteMsg{Err: err})
		done <- result{report, err}
	}()

	_, runErr := p.Run()
	cancel()
	res := <-done
	if runErr != nil {
		return res.report, runErr
	}
	return res.report, res.err
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory usage.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
