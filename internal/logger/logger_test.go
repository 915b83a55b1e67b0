package logger

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"
)

func TestLogSuppressedWhenQuiet(t *testing.T) {
	mode = Mode{Quiet: true}
	hostname = "host"
	stdoutBufCh = make(chan string, 1)

	if got := Info("should not appear"); got != "" {
		t.Errorf("Info() under Quiet = %q, want empty", got)
	}
	select {
	case <-stdoutBufCh:
		t.Error("expected no line queued while quiet")
	default:
	}
}

func TestErrorAlwaysLogsWhenQuiet(t *testing.T) {
	mode = Mode{Quiet: true}
	hostname = "host"
	stdoutBufCh = make(chan string, 1)

	msg := Error("disk full")
	if !strings.Contains(msg, "disk full") {
		t.Errorf("Error() = %q, want it to contain the message", msg)
	}
	select {
	case line := <-stdoutBufCh:
		if !strings.Contains(line, tag) || !strings.Contains(line, "ERROR") {
			t.Errorf("queued line = %q, want tag+ERROR", line)
		}
	default:
		t.Error("expected a line queued for an error even while quiet")
	}
}

func TestDebugSuppressedUnlessEnabled(t *testing.T) {
	mode = Mode{Debug: false}
	if got := Debug("detail"); got != "" {
		t.Errorf("Debug() with Debug=false = %q, want empty", got)
	}

	mode = Mode{Debug: true}
	hostname = "host"
	stdoutBufCh = make(chan string, 1)
	if got := Debug("detail"); got == "" {
		t.Error("Debug() with Debug=true returned empty")
	}
}

func TestFlushDrainsQueuedLines(t *testing.T) {
	var sb strings.Builder
	stdoutWriter = bufio.NewWriter(&sb)
	stdoutBufCh = make(chan string, 2)
	stdoutBufCh <- "one\n"
	stdoutBufCh <- "two\n"

	Flush()

	if got := sb.String(); got != "one\ntwo\n" {
		t.Errorf("Flush() wrote %q, want %q", got, "one\ntwo\n")
	}
}

func TestStartDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	Start(ctx, Mode{Quiet: true})
	cancel()
	time.Sleep(10 * time.Millisecond)
}
