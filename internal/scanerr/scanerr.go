// Package scanerr defines the error taxonomy shared by every stage of the
// scanning pipeline: option parsing, pattern compilation, per-file I/O and
// output. Each sentinel maps to one of the exit-status categories the
// dispatcher must aggregate (see internal/status).
package scanerr

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per taxonomy entry.
var (
	ErrInvalidOption   = errors.New("invalid option")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidPattern  = errors.New("invalid pattern")
	ErrFileOpen        = errors.New("unable to open file")
	ErrFileRead        = errors.New("read error")
	ErrFileStat        = errors.New("stat error")
	ErrClose           = errors.New("close error")
	ErrWrite           = errors.New("write error")
	ErrCountOverflow   = errors.New("input is too large to count")
)

// Wrap adds context to err while preserving it for errors.Is/errors.As.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Fatal reports whether err must abort the whole process (exit 2 immediately)
// as opposed to being a suppressible per-file error that leaves sibling files
// unaffected.
func Fatal(err error) bool {
	return errors.Is(err, ErrWrite) || errors.Is(err, ErrCountOverflow) ||
		errors.Is(err, ErrInvalidOption) || errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidPattern)
}

// PerFile reports whether err belongs to the per-file, suppressible class
// (open/read/stat/close) that marks the run as "error seen" without
// aborting sibling files (spec.md §7 propagation policy).
func PerFile(err error) bool {
	return errors.Is(err, ErrFileOpen) || errors.Is(err, ErrFileRead) ||
		errors.Is(err, ErrFileStat) || errors.Is(err, ErrClose)
}
