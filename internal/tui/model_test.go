package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/kerntune/internal/autotune"
	"github.com/agbru/kerntune/internal/orchestration"
)

func newTestModel(t *testing.T) (Model, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	m := NewModel(ctx, cancel, "v1.0.0", 4)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), cancel
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_TuningFlow(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, KernelStartedMsg{Name: "sha256", Index: 0, Total: 2})
	if len(m.kernels) != 2 || m.kernels[0].status != statusRunning || m.kernels[1].status != statusPending {
		t.Fatalf("kernels = %+v", m.kernels)
	}

	m = update(t, m, TrialMsg{Kernel: "sha256", Trial: autotune.Trial{Scale: 1, Throughput: 1000, Accepted: true}})
	m = update(t, m, TrialMsg{Kernel: "sha256", Trial: autotune.Trial{Scale: 2, Throughput: 1020}})
	row := m.kernels[0]
	if row.trials != 2 || row.lastScale != 2 || row.bestScale != 1 || row.best != 1000 {
		t.Errorf("row after trials = %+v", row)
	}
	if m.throughput.Len() != 2 {
		t.Errorf("throughput history = %d, want 2", m.throughput.Len())
	}

	m = update(t, m, KernelFinishedMsg{Result: orchestration.KernelResult{
		Name:    "sha256",
		Outcome: autotune.Outcome{BestScale: 1, BestThroughput: 1000, Multiplier: 4, MaxBatch: 8},
	}})
	if m.kernels[0].status != statusDone || m.kernels[0].multiplier != 4 {
		t.Errorf("row after finish = %+v", m.kernels[0])
	}

	m = update(t, m, KernelStartedMsg{Name: "blake3", Index: 1, Total: 2})
	if m.throughput.Len() != 0 {
		t.Error("throughput history not reset for the next kernel")
	}
	m = update(t, m, KernelFinishedMsg{Result: orchestration.KernelResult{Name: "blake3", Err: errors.New("boom")}})
	if m.kernels[1].status != statusFailed {
		t.Errorf("blake3 status = %v, want failed", m.kernels[1].status)
	}

	m = update(t, m, TuningCompleteMsg{})
	if !m.done {
		t.Error("model not done after TuningCompleteMsg")
	}

	view := m.View()
	for _, want := range []string{"kerntune v1.0.0", "4 threads", "sha256", "x4", "failed: boom", "done"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_TrialForUnknownKernelIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, TrialMsg{Kernel: "ghost", Trial: autotune.Trial{Scale: 1, Throughput: 5}})
	if m.throughput.Len() != 0 || len(m.kernels) != 0 {
		t.Error("trial for an unknown kernel was recorded")
	}
}

func TestModel_QuitCancelsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewModel(ctx, cancel, "dev", 2)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if ctx.Err() == nil {
		t.Error("quit did not cancel the run")
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(ContextCancelledMsg{Err: context.Canceled})
	if !next.(Model).done || cmd == nil {
		t.Error("cancellation should finish the model and quit")
	}
}

func TestModel_SysStatsAndTick(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, SysStatsMsg{CPUPercent: 40, MemPercent: 60})
	if m.cpu.Last() != 40 || m.mem.Last() != 60 {
		t.Errorf("cpu %f mem %f", m.cpu.Last(), m.mem.Last())
	}
	if _, cmd := m.Update(TickMsg{}); cmd == nil {
		t.Error("tick while running should schedule sampling")
	}
	m.done = true
	if _, cmd := m.Update(TickMsg{}); cmd != nil {
		t.Error("tick after done should stop")
	}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := NewModel(context.Background(), nil, "dev", 1)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestReporterWithoutProgram(t *testing.T) {
	r := NewReporter()
	// No program is bound: every call must be a no-op.
	r.KernelStarted("sha256", 0, 1)
	r.ObserveTrial("sha256", autotune.Trial{Scale: 1})
	r.ObserveOutcome(autotune.Outcome{})
	r.KernelFinished(orchestration.KernelResult{Name: "sha256"})
}
