// Package scan drives the per-file search loop (spec.md §4.4), grounded on
// original_source/grep.c's grep()/grepbuf() pair: refill the streaming
// buffer, carve off a whole-lines window bounded by the last eol byte,
// hand that window to the matcher, and track the leading/trailing residue
// that must carry over into the next refill.
package scan

import (
	"bytes"

	"github.com/snonux/pgrep/internal/iobuf"
	"github.com/snonux/pgrep/internal/linectx"
	"github.com/snonux/pgrep/internal/matcher"
	"github.com/snonux/pgrep/internal/output"
)

// BinaryMode mirrors grep.c's binary_files enum (spec.md §4.3, §8 "-a/-I").
type BinaryMode int

const (
	BinaryAsBinary     BinaryMode = iota // default: print "Binary file ... matches" and stop
	BinaryAsText                         // -a/--text: treat binary content as ordinary lines
	BinaryWithoutMatch                   // -I: a binary file never matches
)

// unlimited is the outleft sentinel for "no --max-count given", matching
// grep.c's max_count defaulting to INTMAX_MAX rather than to some in-band
// zero value.
const unlimited = -1

// Options configures one file's scan (spec.md §4.4, §4.9's max-count/exit
// interactions).
type Options struct {
	MaxCount    int64 // <= 0 means unlimited, --max-count
	Invert      bool  // -v
	Binary      BinaryMode
	Quiet       bool // -q/-c/-l/-L suppress per-line output but still count
	DoneOnMatch bool // -q/-l/-L: stop scanning after the first match
	Eol         byte
}

// Result summarizes one file's scan (spec.md §4.9's exit-status inputs).
type Result struct {
	LinesMatched  int64
	BinaryMatched bool
}

// File scans one already-opened input through to EOF, writing output via
// fmtr (unless opt.Quiet). The Result counts the selected lines (printed,
// or only counted under opt.Quiet) and whether the file was detected as
// binary, mirroring grep()'s return value and its "Binary file ... matches"
// fallback summary.
func File(buf *iobuf.Buffer, be matcher.Backend, h matcher.Handle, tr *linectx.Tracker, fmtr *output.Formatter, opt Options) (Result, error) {
	tr.ResetForFile()
	fmtr.ResetEncodingError()

	outleft := opt.MaxCount
	if outleft <= 0 {
		outleft = unlimited
	}

	var result Result
	residue := 0
	save := 0
	binaryChecked := false

	ok, err := buf.Fill(save)
	if err != nil {
		return result, err
	}
	if !ok && len(buf.Bytes()) == 0 {
		return result, nil
	}

	for {
		data := buf.Bytes()

		if !binaryChecked && opt.Eol != 0 && opt.Binary != BinaryAsText {
			binaryChecked = true
			if iobuf.HasNulByte(data) {
				if opt.Binary == BinaryWithoutMatch {
					return result, nil
				}
				result.BinaryMatched = true
				// Mirrors grep.c: once a file is known binary, stop after
				// the first match and suppress per-line output, printing
				// only the "Binary file ... matches" summary instead.
				opt.Quiet = true
				opt.DoneOnMatch = true
			}
		}

		beg := save
		if beg == len(data) {
			// No more data to scan except for a possible residue tail,
			// same as grep()'s "beg == buflim -> break".
			break
		}

		iobuf.ZapNuls(data[beg:], opt.Eol)

		lim := lineBoundary(data, beg, opt.Eol)
		if lim == beg {
			lim = beg - residue
		}
		beg -= residue
		residue = len(data) - lim

		if beg < lim {
			if outleft != 0 {
				n := scanBuffer(be, h, tr, fmtr, data, beg, lim, opt, &outleft)
				result.LinesMatched += n
			}
			if tr.Pending > 0 {
				flushPending(be, h, tr, fmtr, data, lim, opt)
			}
			if (outleft == 0 && tr.Pending == 0) ||
				(opt.DoneOnMatch && result.LinesMatched > 0) {
				break
			}
		}

		leadBeg := linectx.LeadingContextStart(data, opt.Eol, 0, lim, tr.Before)
		tr.AdjacentCheck(leadBeg)

		save = residue + (lim - leadBeg)
		fmtr.Advance(data, 0, lim)

		more, err := buf.Fill(save)
		if err != nil {
			return result, err
		}
		if !more {
			break
		}
	}

	if residue > 0 {
		data := buf.Bytes()
		tailBeg := len(data) - save
		if tailBeg < 0 {
			tailBeg = 0
		}
		if outleft != 0 {
			n := scanBuffer(be, h, tr, fmtr, data, tailBeg, len(data), opt, &outleft)
			result.LinesMatched += n
		}
		if tr.Pending > 0 {
			flushPending(be, h, tr, fmtr, data, len(data), opt)
		}
	}

	return result, nil
}

// lineBoundary returns the offset just past the last eol byte in
// data[beg:], i.e. the end of the last whole line available, matching
// grep()'s memrchr-based residue computation.
func lineBoundary(data []byte, beg int, eol byte) int {
	idx := bytes.LastIndexByte(data[beg:], eol)
	if idx < 0 {
		return beg
	}
	return beg + idx + 1
}

// decrement consumes one unit of outleft, leaving the unlimited sentinel
// untouched.
func decrement(outleft *int64) {
	if *outleft > 0 {
		*outleft--
	}
}

// scanBuffer matches repeatedly within data[beg:lim), mirroring grepbuf:
// out_invert turns "no match" into "the rest of the buffer is one
// context-free selected span", and each found span is immediately printed
// through fmtr/tr. outleft is decremented as lines are emitted under
// --max-count and stops the loop once it reaches zero.
func scanBuffer(be matcher.Backend, h matcher.Handle, tr *linectx.Tracker, fmtr *output.Formatter, data []byte, beg, lim int, opt Options, outleft *int64) int64 {
	var n int64
	p := beg
	for p < lim {
		off, size, found := be.Execute(h, data[:lim], p, opt.Eol)

		var b, endp int
		if !found {
			if !opt.Invert {
				break
			}
			b, size = lim, 0
		} else {
			b = off
		}
		endp = b + size

		if !opt.Invert && b == lim {
			break
		}

		if opt.Invert {
			if p < b {
				// Each selected line of the block uses one unit of outleft,
				// so cut the block short once the budget is spent.
				end := b
				if *outleft > 0 {
					end = p
					for i := int64(0); i < *outleft && end < b; i++ {
						end = nextLine(data, end, b, opt.Eol)
					}
				}
				k := emit(be, h, tr, fmtr, data, p, end, opt)
				n += k
				if *outleft > 0 {
					*outleft -= k
				}
			}
		} else {
			n += emit(be, h, tr, fmtr, data, b, endp, opt)
			decrement(outleft)
		}

		if *outleft == 0 || opt.DoneOnMatch {
			break
		}
		p = endp
		if p <= b && size == 0 {
			p++
		}
	}
	return n
}

// emit prints the block data[beg:lim) as a series of (context then
// selected) lines, mirroring prtext: leading context first, then the
// block itself, recording tracker state for the next call.
func emit(be matcher.Backend, h matcher.Handle, tr *linectx.Tracker, fmtr *output.Formatter, data []byte, beg, lim int, opt Options) int64 {
	if tr.Pending > 0 {
		flushPending(be, h, tr, fmtr, data, beg, opt)
	}

	p := beg
	if !opt.Quiet {
		bp := tr.LastOut
		for i := 0; i < tr.Before && p > bp; i++ {
			p--
			for p > bp && data[p-1] != opt.Eol {
				p--
			}
		}
		if tr.NeedsSeparator(p) {
			fmtr.PrintGroupSeparator()
		}
		for p < beg {
			next := nextLine(data, p, beg, opt.Eol)
			fmtr.PrintLine(be, h, data, p, next, output.SepRejected, true, false)
			p = next
		}
	}

	var n int64
	if opt.Invert {
		for p < lim {
			next := nextLine(data, p, lim, opt.Eol)
			if !opt.Quiet {
				fmtr.PrintLine(be, h, data, p, next, output.SepSelected, true, false)
			}
			p = next
			n++
		}
	} else {
		if !opt.Quiet {
			fmtr.PrintLine(be, h, data, beg, lim, output.SepSelected, true, false)
		}
		n = 1
		p = lim
	}

	tr.RecordOutput(p, opt.Quiet)
	return n
}

// nextLine returns the offset just past the next eol byte in data[p:end),
// or end if none remains (an unterminated final line).
func nextLine(data []byte, p, end int, eol byte) int {
	idx := bytes.IndexByte(data[p:end], eol)
	if idx < 0 {
		return end
	}
	return p + idx + 1
}

// flushPending prints up to tr.Pending trailing-context lines ending
// before lim, mirroring prpending; a pending line that itself matches
// (and so will be re-printed as a selected line shortly) cancels the rest
// of the pending budget instead of being printed twice.
func flushPending(be matcher.Backend, h matcher.Handle, tr *linectx.Tracker, fmtr *output.Formatter, data []byte, lim int, opt Options) {
	if tr.LastOut >= lim {
		return
	}
	for tr.Pending > 0 && tr.LastOut < lim {
		next := nextLine(data, tr.LastOut, lim, opt.Eol)
		tr.Pending--
		_, _, found := be.Execute(h, data[tr.LastOut:next], 0, opt.Eol)
		stillContext := found == opt.Invert
		if !stillContext {
			tr.Pending = 0
			break
		}
		if !opt.Quiet {
			fmtr.PrintLine(be, h, data, tr.LastOut, next, output.SepRejected, true, false)
		}
		tr.LastOut = next
	}
}
