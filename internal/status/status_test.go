package status

import (
	"errors"
	"testing"

	"github.com/snonux/pgrep/internal/scanerr"
)

func TestCodeNoActivity(t *testing.T) {
	a := New(false)
	if got := a.Code(); got != ExitNoMatch {
		t.Errorf("Code() = %d, want %d", got, ExitNoMatch)
	}
}

func TestCodeMatch(t *testing.T) {
	a := New(false)
	a.RecordMatch()
	if got := a.Code(); got != ExitMatch {
		t.Errorf("Code() = %d, want %d", got, ExitMatch)
	}
}

func TestCodeErrorOverridesMatch(t *testing.T) {
	a := New(false)
	a.RecordMatch()
	a.RecordError(scanerr.Wrap(scanerr.ErrFileOpen, "x.log"))
	if got := a.Code(); got != ExitError {
		t.Errorf("Code() = %d, want %d", got, ExitError)
	}
}

func TestFatalFlag(t *testing.T) {
	a := New(false)
	a.RecordError(scanerr.Wrap(scanerr.ErrInvalidPattern, "bad pattern"))
	if !a.Fatal() {
		t.Error("Fatal() = false, want true for an invalid-pattern error")
	}
}

func TestRecordErrorNilIsNoop(t *testing.T) {
	a := New(false)
	a.RecordError(nil)
	if a.Code() != ExitNoMatch {
		t.Errorf("nil error should not affect Code()")
	}
	var wrapped error
	a.RecordError(errors.New(""))
	_ = wrapped
	if !a.anyError {
		t.Error("non-nil error should set anyError")
	}
}
