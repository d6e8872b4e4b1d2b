// Package tui implements a live terminal dashboard for a tuning run, built
// on bubbletea. It shows every kernel's progress, the trial throughput of
// the kernel being tuned and system load.
package tui
