// Package output formats matched (and context) lines for display (spec.md
// §4.6), grounded on original_source/grep.c's print_line_head/
// print_line_middle/print_line_tail/prline quartet. Like the C original it
// writes ASCII base-10 offsets by hand instead of reaching for a width
// formatter, so tab-alignment padding stays exact regardless of platform
// integer widths.
package output

import (
	"bufio"
	"io"
	"strconv"

	"github.com/snonux/pgrep/internal/color"
	"github.com/snonux/pgrep/internal/matcher"
)

// Separator characters for selected vs. rejected (context) lines, grep.c's
// SEP_CHAR_SELECTED/SEP_CHAR_REJECTED.
const (
	SepSelected = ':'
	SepRejected = '-'
)

// Options configures a Formatter for one invocation; all of it maps
// directly onto spec.md §8's output-control flags.
type Options struct {
	ShowFilename   bool // -H, or multiple file operands
	ShowLineNumber bool // -n
	ShowByteOffset bool // -b
	OnlyMatching   bool // -o
	AlignTabs      bool // -T/--initial-tab; default off
	NullAfterName  bool // -Z: NUL instead of sep after filename
	Invert         bool // -v, needed to pick selected vs context colors
	LineBuffered   bool // --line-buffered
	GroupSeparator string
	Colors         color.Capabilities
	Colorize       bool
	Eol            byte
}

// Formatter writes formatted output for one grep invocation. It is not
// safe for concurrent use by multiple goroutines; callers serialize access
// the way grep.c's lock_output/unlock_output do around prtext/prpending
// (spec.md §4.8 "serialized output").
type Formatter struct {
	opt     Options
	w       *bufio.Writer
	wrapper *color.Wrapper

	filename    string
	lineNum     int64
	lastNlPos int64 // absolute stream offset counted up to so far
	byteBase  int64 // absolute stream offset of buf[0] for the current file
	encErrSeen bool
}

// New builds a Formatter writing to w.
func New(w io.Writer, opt Options) *Formatter {
	return &Formatter{
		w:       bufio.NewWriter(w),
		opt:     opt,
		wrapper: color.NewWrapper(opt.Colors),
	}
}

// ResetFile begins a new file: name is what -H/-l print, base is the
// absolute byte offset the file's buffer logically starts at (normally 0).
func (f *Formatter) ResetFile(name string, base int64) {
	f.filename = name
	f.lineNum = 0
	f.lastNlPos = base
	f.byteBase = base
}

// Advance counts eol bytes in buf[from:to] into the running line number,
// the way grep.c's nlscan walks skipped regions so line numbers stay
// correct even for lines that are never printed.
func (f *Formatter) Advance(buf []byte, from, to int) {
	if counted := int(f.lastNlPos - f.byteBase); from < counted {
		from = counted
	}
	for i := from; i < to; i++ {
		if buf[i] == f.opt.Eol {
			f.lineNum++
		}
	}
	if to > from {
		f.lastNlPos = f.byteBase + int64(to)
	}
}

// Flush flushes any buffered output.
func (f *Formatter) Flush() error { return f.w.Flush() }

func (f *Formatter) printSep(sep byte) {
	if f.opt.Colorize && f.opt.Colors.Sep != "" {
		f.w.WriteString(f.wrapper.Wrap(f.opt.Colors.Sep, string(sep)))
	} else {
		f.w.WriteByte(sep)
	}
}

// printOffset writes pos in ASCII base 10, left-padded with spaces to
// minWidth when AlignTabs is set, matching grep.c's print_offset (which
// deliberately avoids printf for a uintmax_t that may exceed `long`).
func (f *Formatter) printOffset(pos int64, minWidth int, colorCode string) {
	s := strconv.FormatInt(pos, 10)
	if f.opt.AlignTabs {
		for pad := minWidth - len(s); pad > 0; pad-- {
			f.w.WriteByte(' ')
		}
	}
	if f.opt.Colorize && colorCode != "" {
		f.w.WriteString(f.wrapper.Wrap(colorCode, s))
	} else {
		f.w.WriteString(s)
	}
}

// printLineHead writes the filename/line-number/byte-offset prefix for a
// line spanning buf[beg:lim] (lim exclusive of nothing special; lim-1 is
// eol in the non-final-line case). Returns false when the line must be
// suppressed for an encoding error (spec.md §4.3/§4.6 "binary lines are
// suppressed individually unless -a").
func (f *Formatter) printLineHead(buf []byte, beg, lim int, sep byte, textMode, hasEncodingError bool) bool {
	if !textMode && hasEncodingError {
		f.encErrSeen = true
		return false
	}

	pendingSep := false

	if f.opt.ShowFilename {
		if f.opt.Colorize && f.opt.Colors.Filename != "" {
			f.w.WriteString(f.wrapper.Wrap(f.opt.Colors.Filename, f.filename))
		} else {
			f.w.WriteString(f.filename)
		}
		if f.opt.NullAfterName {
			f.w.WriteByte(0)
		} else {
			pendingSep = true
		}
	}

	if f.opt.ShowLineNumber {
		if f.lastNlPos < f.byteBase+int64(lim) {
			f.Advance(buf, 0, lim)
		}
		if pendingSep {
			f.printSep(sep)
		}
		f.printOffset(f.lineNum, 4, f.opt.Colors.LineNum)
		pendingSep = true
	}

	if f.opt.ShowByteOffset {
		pos := f.byteBase + int64(beg)
		if pendingSep {
			f.printSep(sep)
		}
		f.printOffset(pos, 6, f.opt.Colors.ByteNum)
		pendingSep = true
	}

	if pendingSep {
		if f.opt.AlignTabs {
			f.w.WriteString("\t\b")
		}
		f.printSep(sep)
	}
	return true
}

// printLineMiddle re-invokes be.Execute over the single line buf[beg:lim)
// to highlight each match, mirroring print_line_middle. It returns the
// offset up to which it has written plain+colored text (matching the C
// function's returned cursor).
func (f *Formatter) printLineMiddle(be matcher.Backend, h matcher.Handle, buf []byte, beg, lim int, lineColor, matchColor string) int {
	cur := beg
	mid := -1

	for cur < lim {
		off, size, found := be.Execute(h, buf[beg:lim], cur-beg, f.opt.Eol)
		if !found {
			break
		}
		b := beg + off
		if b == lim {
			break
		}
		if size == 0 {
			size = 1
			if mid < 0 {
				mid = cur
			}
			cur = b + size
			continue
		}

		if f.opt.OnlyMatching {
			sep := byte(SepSelected)
			if f.opt.Invert {
				sep = SepRejected
			}
			if !f.printLineHead(buf, b, lim, sep, true, false) {
				return -1
			}
		} else {
			writeFrom := cur
			if mid >= 0 {
				writeFrom = mid
				mid = -1
			}
			if lineColor != "" {
				f.w.WriteString(f.wrapper.Start(lineColor))
			}
			f.w.Write(buf[writeFrom:b])
			if lineColor != "" {
				f.w.WriteString(f.wrapper.End(lineColor))
			}
		}

		if matchColor != "" {
			f.w.WriteString(f.wrapper.Start(matchColor))
		}
		f.w.Write(buf[b : b+size])
		if matchColor != "" {
			f.w.WriteString(f.wrapper.End(matchColor))
		}
		if f.opt.OnlyMatching {
			f.w.WriteByte(f.opt.Eol)
		}
		cur = b + size
	}

	if f.opt.OnlyMatching {
		return lim
	}
	if mid >= 0 {
		return mid
	}
	return cur
}

// printLineTail writes whatever of buf[beg:lim) remains after
// printLineMiddle, stripping a trailing eol (and a CR immediately before
// it) from the colorized span, matching print_line_tail.
func (f *Formatter) printLineTail(buf []byte, beg, lim int, lineColor string) int {
	eolSize := 0
	if lim > beg && buf[lim-1] == f.opt.Eol {
		eolSize = 1
	}
	if lim-eolSize > beg && eolSize == 1 && buf[lim-2] == '\r' {
		eolSize++
	}
	tailSize := lim - eolSize - beg
	if tailSize > 0 {
		if lineColor != "" {
			f.w.WriteString(f.wrapper.Start(lineColor))
		}
		f.w.Write(buf[beg : beg+tailSize])
		beg += tailSize
		if lineColor != "" {
			f.w.WriteString(f.wrapper.End(lineColor))
		}
	}
	return beg
}

// PrintLine prints one whole line buf[beg:lim) with separator sep
// (SepSelected for a matching/inverted-selected line, SepRejected for
// context), matching prline. be/h are used only to re-locate matches for
// highlighting when color or -o is active.
func (f *Formatter) PrintLine(be matcher.Backend, h matcher.Handle, buf []byte, beg, lim int, sep byte, textMode, hasEncodingError bool) {
	if !f.opt.OnlyMatching {
		if !f.printLineHead(buf, beg, lim, sep, textMode, hasEncodingError) {
			return
		}
	} else if !textMode && hasEncodingError {
		f.encErrSeen = true
		return
	}

	matching := (sep == SepSelected) != f.opt.Invert

	var lineColor, matchColor string
	if f.opt.Colorize {
		if sep == SepSelected {
			lineColor = f.opt.Colors.SelectedLine
		} else {
			lineColor = f.opt.Colors.ContextLine
		}
		if sep == SepSelected {
			matchColor = f.opt.Colors.SelectedMatch
		} else {
			matchColor = f.opt.Colors.ContextMatch
		}
	}

	cur := beg
	if (f.opt.OnlyMatching && matching) || (f.opt.Colorize && (lineColor != "" || matchColor != "")) {
		if matching && (f.opt.OnlyMatching || matchColor != "") {
			cur = f.printLineMiddle(be, h, buf, beg, lim, lineColor, matchColor)
			if cur < 0 {
				return
			}
		}
		if !f.opt.OnlyMatching && lineColor != "" {
			cur = f.printLineTail(buf, cur, lim, lineColor)
		}
	}

	if !f.opt.OnlyMatching && lim > cur {
		f.w.Write(buf[cur:lim])
	}

	if f.opt.LineBuffered {
		f.w.Flush()
	}
}

// PrintGroupSeparator writes the "--" block separator grep prints between
// non-adjacent context blocks (spec.md §4.5/§4.6).
func (f *Formatter) PrintGroupSeparator() {
	if f.opt.GroupSeparator == "" {
		return
	}
	if f.opt.Colorize && f.opt.Colors.Sep != "" {
		f.w.WriteString(f.wrapper.Wrap(f.opt.Colors.Sep, f.opt.GroupSeparator))
	} else {
		f.w.WriteString(f.opt.GroupSeparator)
	}
	f.w.WriteByte('\n')
}

// PrintBinaryMatch writes the "Binary file FILE matches" summary line
// (spec.md §4.6, §8), used in place of per-line output when the file was
// detected as binary and binary_files isn't "text".
func (f *Formatter) PrintBinaryMatch(filename string) {
	f.w.WriteString("Binary file ")
	f.w.WriteString(filename)
	f.w.WriteString(" matches\n")
}

// PrintCount writes the -c summary line: "FILE:N" or just "N" for a single
// unnamed operand.
func (f *Formatter) PrintCount(filename string, n int64) {
	if f.opt.ShowFilename {
		f.w.WriteString(filename)
		if f.opt.NullAfterName {
			f.w.WriteByte(0)
		} else {
			f.printSep(SepSelected)
		}
	}
	f.w.WriteString(strconv.FormatInt(n, 10))
	f.w.WriteByte('\n')
}

// PrintFilenameOnly writes a bare filename line for -l/-L.
func (f *Formatter) PrintFilenameOnly(filename string) {
	f.w.WriteString(filename)
	if f.opt.NullAfterName {
		f.w.WriteByte(0)
	} else {
		f.w.WriteByte('\n')
	}
}

// EncodingErrorSeen reports whether any line in the current file was
// suppressed for an encoding error (spec.md §4.3). internal/scan passes
// textMode=true and no encoding-error flag to PrintLine and does not call
// this method, so a scan never suppresses a line for an encoding error and
// never falls back to "Binary file matches" on that ground.
func (f *Formatter) EncodingErrorSeen() bool { return f.encErrSeen }

// ResetEncodingError clears the per-file encoding-error flag.
func (f *Formatter) ResetEncodingError() { f.encErrSeen = false }
