// Package status aggregates per-file scan outcomes into the process exit
// code (spec.md §4.9, §8), grounded on original_source/grep.c's main():
// 0 when at least one match was found and nothing went wrong, 1 when the
// search ran cleanly but found nothing, 2 when any file-level error was
// seen (open/read/stat) or a fatal error aborted the run outright.
package status

import "github.com/snonux/pgrep/internal/scanerr"

const (
	ExitMatch   = 0
	ExitNoMatch = 1
	ExitError   = 2
)

// Aggregator accumulates outcomes across every file of one invocation.
type Aggregator struct {
	quiet      bool // -s/--no-messages: suppress open/read error reporting, not the exit code itself
	anyMatch   bool
	anyError   bool
	anyFatal   bool
}

// New builds an Aggregator. quiet mirrors -s: it silences per-file error
// messages at the call site, but per POSIX grep still reports exit 2 for
// them, so Aggregator tracks errors regardless of quiet.
func New(quiet bool) *Aggregator {
	return &Aggregator{quiet: quiet}
}

// RecordMatch marks that at least one line matched somewhere in the run.
func (a *Aggregator) RecordMatch() {
	a.anyMatch = true
}

// RecordError records a per-file error (open/read/stat/close), which
// forces exit 2 even if other files matched, matching grep.c's
// errseen flag.
func (a *Aggregator) RecordError(err error) {
	if err == nil {
		return
	}
	if scanerr.Fatal(err) {
		a.anyFatal = true
	}
	a.anyError = true
}

// Quiet reports whether per-file error messages should be suppressed
// (-s), independent of the exit code Code() still computes for them.
func (a *Aggregator) Quiet() bool { return a.quiet }

// Fatal reports whether a fatal error was recorded, meaning the caller
// should stop dispatching further work immediately rather than letting
// the run drain to completion.
func (a *Aggregator) Fatal() bool { return a.anyFatal }

// Code computes the final process exit status.
func (a *Aggregator) Code() int {
	if a.anyError {
		return ExitError
	}
	if a.anyMatch {
		return ExitMatch
	}
	return ExitNoMatch
}
