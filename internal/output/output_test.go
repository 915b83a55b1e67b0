package output

import (
	"bytes"
	"testing"

	"github.com/snonux/pgrep/internal/color"
	"github.com/snonux/pgrep/internal/regex"
)

func newPlainFormatter(buf *bytes.Buffer, opt Options) *Formatter {
	opt.Colors = color.Default()
	opt.Eol = '\n'
	return New(buf, opt)
}

func TestPrintLineBasic(t *testing.T) {
	var buf bytes.Buffer
	f := newPlainFormatter(&buf, Options{})
	f.ResetFile("file.txt", 0)

	line := []byte("hello world\n")
	var be regex.Backend
	f.PrintLine(be, nil, line, 0, len(line), SepSelected, true, false)
	f.Flush()

	if got, want := buf.String(), "hello world\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintLineWithFilenameAndLineNumber(t *testing.T) {
	var buf bytes.Buffer
	f := newPlainFormatter(&buf, Options{ShowFilename: true, ShowLineNumber: true, AlignTabs: false})
	f.ResetFile("a.log", 0)

	line := []byte("first\n")
	var be regex.Backend
	f.PrintLine(be, nil, line, 0, len(line), SepSelected, true, false)
	f.Flush()

	if got, want := buf.String(), "a.log:1:first\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintLineSuppressedOnEncodingError(t *testing.T) {
	var buf bytes.Buffer
	f := newPlainFormatter(&buf, Options{})
	f.ResetFile("bin.dat", 0)

	var be regex.Backend
	f.PrintLine(be, nil, []byte("\xff\xfe\n"), 0, 3, SepSelected, false, true)
	f.Flush()

	if buf.Len() != 0 {
		t.Errorf("expected suppressed output, got %q", buf.String())
	}
	if !f.EncodingErrorSeen() {
		t.Error("expected EncodingErrorSeen() == true")
	}
}

func TestPrintCountWithFilename(t *testing.T) {
	var buf bytes.Buffer
	f := newPlainFormatter(&buf, Options{ShowFilename: true})
	f.PrintCount("x.txt", 3)
	f.Flush()
	if got, want := buf.String(), "x.txt:3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintGroupSeparator(t *testing.T) {
	var buf bytes.Buffer
	f := newPlainFormatter(&buf, Options{GroupSeparator: "--"})
	f.PrintGroupSeparator()
	f.Flush()
	if got, want := buf.String(), "--\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintBinaryMatch(t *testing.T) {
	var buf bytes.Buffer
	f := newPlainFormatter(&buf, Options{})
	f.PrintBinaryMatch("blob.bin")
	f.Flush()
	if got, want := buf.String(), "Binary file blob.bin matches\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
