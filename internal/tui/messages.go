package tui

import (
	"time"

	"github.com/agbru/kerntune/internal/autotune"
	"github.com/agbru/kerntune/internal/orchestration"
)

// KernelStartedMsg is sent when the tuning of a kernel begins.
type KernelStartedMsg struct {
	Name  string
	Index int
	Total int
}

// TrialMsg carries one measured probe.
type TrialMsg struct {
	Kernel string
	Trial  autotune.Trial
}

// KernelFinishedMsg is sent when a kernel is tuned or failed.
type KernelFinishedMsg struct {
	Result orchestration.KernelResult
}

// TuningCompleteMsg is sent once every kernel has been processed.
type TuningCompleteMsg struct {
	Err error
}

// TickMsg drives the periodic system sampling.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg is sent when the run context is canceled.
type ContextCancelledMsg struct {
	Err error
}
