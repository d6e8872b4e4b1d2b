package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/kerntune/internal/autotune"
	"github.com/agbru/kerntune/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the tuning goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
// It is a no-op until a program is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Reporter forwards tuning progress to the dashboard as bubbletea messages.
// Register it with the tuner as an observer and pass it to the session as
// the progress reporter.
type Reporter struct {
	ref *programRef
}

var (
	_ orchestration.ProgressReporter = (*Reporter)(nil)
	_ autotune.Observer              = (*Reporter)(nil)
)

// NewReporter creates a reporter not yet bound to a program.
func NewReporter() *Reporter {
	return &Reporter{ref: &programRef{}}
}

// KernelStarted implements orchestration.ProgressReporter.
func (r *Reporter) KernelStarted(name string, index, total int) {
	r.ref.Send(KernelStartedMsg{Name: name, Index: index, Total: total})
}

// KernelFinished implements orchestration.ProgressReporter.
func (r *Reporter) KernelFinished(res orchestration.KernelResult) {
	r.ref.Send(KernelFinishedMsg{Result: res})
}

// ObserveTrial implements autotune.Observer.
func (r *Reporter) ObserveTrial(kernel string, t autotune.Trial) {
	r.ref.Send(TrialMsg{Kernel: kernel, Trial: t})
}

// ObserveOutcome implements autotune.Observer. Outcomes reach the
// dashboard through KernelFinished.
func (r *Reporter) ObserveOutcome(autotune.Outcome) {}
