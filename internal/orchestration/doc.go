// Package orchestration drives the tuning of one or more kernels and gathers
// the outcomes into a report. It decouples the tuning loop from presentation
// via the ProgressReporter and ResultPresenter interfaces.
package orchestration
