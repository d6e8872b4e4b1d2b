package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/agbru/kerntune/internal/autotune"
	"github.com/agbru/kerntune/internal/orchestration"
	"github.com/agbru/kerntune/internal/ui"
)

// CLIResultPresenter prints a colorized trial table per kernel followed by
// a summary of the run.
type CLIResultPresenter struct {
	// Trials shows the per-scale trial tables.
	Trials bool
}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentReport implements orchestration.ResultPresenter.
func (p CLIResultPresenter) PresentReport(report orchestration.Report, out io.Writer) error {
	fmt.Fprintf(out, "%sAutotuning%s %d threads, workload %s",
		ui.ColorBold(), ui.ColorReset(), report.Threads, report.Workload)
	if len(report.CPUFeatures) > 0 {
		fmt.Fprintf(out, " (%s)", strings.Join(report.CPUFeatures, " "))
	}
	fmt.Fprintln(out)

	for _, res := range report.Results {
		if p.Trials && res.Err == nil && len(res.Outcome.Trials) > 0 {
			DisplayTrialTable(res.Name, res.Outcome, out)
		}
	}
	DisplaySummaryTable(report.Results, out)
	DisplayRunStats(report, out)
	return nil
}

// DisplayTrialTable writes one row per probed scale. The chosen scale is
// marked "(Optimal)".
func DisplayTrialTable(name string, out autotune.Outcome, w io.Writer) {
	fmt.Fprintf(w, "\n--- %s%s%s: sample salt %s, cost %d ---\n",
		ui.ColorBlue(), name, ui.ColorReset(), out.Sample.Salt.ID, out.Sample.Ceiling)

	rows := make([][4]string, len(out.Trials))
	widths := [4]int{len("Scale"), len("Batch"), len("Throughput"), len("Time")}
	for i, tr := range out.Trials {
		rows[i] = [4]string{
			fmt.Sprintf("%d", tr.Scale),
			humanize.Comma(int64(tr.BatchSize)),
			humanize.Comma(int64(tr.Throughput)) + " c/s",
			FormatExecutionDuration(tr.Duration),
		}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], len(cell))
		}
	}

	fmt.Fprintf(w, "%s   %s   %s   %s\n",
		padRight("Scale", widths[0]), padRight("Batch", widths[1]),
		padRight("Throughput", widths[2]), "Time")
	for i, tr := range out.Trials {
		color, note := ui.ColorCyan(), ""
		switch {
		case tr.Scale == out.BestScale && tr.Accepted:
			color, note = ui.ColorGreen(), "(Optimal)"
		case !tr.Measurable:
			color, note = ui.ColorYellow(), "(unmeasurable)"
		case tr.Accepted:
			color = ui.ColorReset()
		}
		r := rows[i]
		line := fmt.Sprintf("%s   %s   %s   %s",
			padRight(r[0], widths[0]), padRight(r[1], widths[1]),
			padRight(r[2], widths[2]), padRight(r[3], widths[3]))
		if note != "" {
			line += "  " + note
		}
		fmt.Fprintln(w, ui.Paint(color, line))
	}
}

// DisplaySummaryTable writes the outcome of every kernel.
// Uses manual padding so ANSI color codes do not break the alignment.
func DisplaySummaryTable(results []orchestration.KernelResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Summary ---\n")

	maxNameLen := len("Kernel")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
	}
	fmt.Fprintf(out, "%s   %s   %s   %s\n",
		padRight("Kernel", maxNameLen), padRight("Scale", 5), padRight("Max batch", 11), "Status")

	for _, res := range results {
		name := ui.Paint(ui.ColorBlue(), res.Name) + padRight("", maxNameLen-len(res.Name))
		if res.Err != nil {
			fmt.Fprintf(out, "%s   %s   %s   %s\n", name, padRight("-", 5), padRight("-", 11),
				ui.Paint(ui.ColorRed(), fmt.Sprintf("Failure (%v)", res.Err)))
			continue
		}
		o := res.Outcome
		fmt.Fprintf(out, "%s   %s   %s   %s\n", name,
			padRight(fmt.Sprintf("%d", o.BestScale), 5),
			padRight(humanize.Comma(int64(o.MaxBatch)), 11),
			ui.Paint(ui.ColorGreen(), fmt.Sprintf("x%d in %s", o.Multiplier, FormatExecutionDuration(res.Duration))))
	}
}

// DisplayRunStats writes memory, GC and system load observed during the run.
func DisplayRunStats(report orchestration.Report, out io.Writer) {
	fmt.Fprintf(out, "\nRun %s took %s\n", report.RunID, FormatExecutionDuration(report.Elapsed))
	fmt.Fprintf(out, "  Heap in use:    %s\n", humanize.IBytes(report.HeapAlloc))
	fmt.Fprintf(out, "  GC cycles:      %d (%.2fms paused)\n", report.GC.Cycles, float64(report.GC.PauseNs)/1e6)
	fmt.Fprintf(out, "  Allocated:      %s in %s objects\n", humanize.IBytes(report.GC.AllocBytes), humanize.Comma(int64(report.GC.Allocs)))
	if report.System.Samples > 0 {
		fmt.Fprintf(out, "  CPU load:       avg %.1f%%, peak %.1f%%\n", report.System.AvgCPU, report.System.PeakCPU)
		fmt.Fprintf(out, "  Memory peak:    %.1f%%\n", report.System.PeakMem)
	}
}

// padRight pads s with spaces up to length.
func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
