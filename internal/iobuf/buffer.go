// Package iobuf implements the streaming input buffer (spec.md §4.2) and the
// binary/encoding probe (spec.md §4.3) that sit between an open file
// descriptor and the scan loop. It is grounded on original_source/grep.c's
// reset/fillbuf pair: a page-aligned buffer carrying one byte of slop before
// its logical start (a sentinel equal to the eol byte, so backward line
// searches never run off the front) and growing geometrically, capped by
// the file's remaining size when that is known.
package iobuf

import (
	"errors"
	"io"
	"os"
)

// pageSize is the alignment grep.c's reset/fillbuf use; unlike the C
// original we don't query the platform page size, since Go's allocator
// doesn't need the buffer page-aligned for mmap/asan reasons, only for the
// sentinel-byte arithmetic to stay simple. 4096 matches every common page
// size and keeps growth bounded the same way INITIAL_BUFSIZE does.
const pageSize = 4096

// initialSize mirrors grep.c's INITIAL_BUFSIZE.
const initialSize = 32 * 1024

// Buffer is a growable, reusable read window over a single input source.
// bufbeg[-1] always holds the eol byte (the sentinel reset/fillbuf
// maintain), so callers that walk backward looking for a line start never
// need a separate bounds check for the buffer's logical beginning.
type Buffer struct {
	data []byte // full backing array; data[0] is the sentinel slot
	beg  int    // index of bufbeg within data
	lim  int    // index of buflim within data (exclusive)
	eol  byte

	src      io.Reader
	size     int64 // total source size if known, else -1 (spec.md "usable_st_size")
	consumed int64 // bytes handed to src.Read so far

	skipNuls bool // HasNulByte + SEEK_DATA optimization, spec.md §4.2/§4.3
	holeSkip HoleSkipper
	fd       uintptr
	seekable bool
}

// BindFD records the file descriptor Fill should pass to the HoleSkipper
// when an all-zero chunk suggests a sparse-file hole. Callers that can't
// seek (pipes, stdin, decompressed streams) simply never call this, and
// Fill falls back to reading the zeros a chunk at a time.
func (b *Buffer) BindFD(fd uintptr) {
	b.fd = fd
	b.seekable = true
}

// HoleSkipper abstracts SEEK_DATA/SEEK_HOLE sparse-file skipping (spec.md
// §4.2 "sparse-file optimization") so Buffer itself has no platform
// dependency; internal/iobuf/hole_linux.go supplies the real
// golang.org/x/sys/unix-backed implementation, and a no-op stands in
// elsewhere.
type HoleSkipper interface {
	// SeekNextData advances past a hole starting at offset, returning the
	// offset of the next data region, or ok=false if unsupported/failed.
	SeekNextData(fd uintptr, offset int64) (next int64, ok bool)
}

// New builds a Buffer reading from src. size is the source's st_size if
// known and the source is a regular file (enables both the growth-capping
// heuristic and sparse-file skipping); pass -1 when unknown (pipes, stdin).
func New(src io.Reader, size int64, eol byte, skipNuls bool, holes HoleSkipper) *Buffer {
	data := make([]byte, alignedAlloc(initialSize))
	b := &Buffer{
		data:     data,
		eol:      eol,
		src:      src,
		size:     size,
		skipNuls: skipNuls,
		holeSkip: holes,
	}
	b.reset()
	return b
}

func alignedAlloc(n int) int {
	// room for: 1 sentinel byte + n usable bytes + pageSize alignment slack
	// + one machine word of trailing slop that Execute's whole-line
	// widening and the encoding probe may read into (they never use it).
	return 1 + n + pageSize + 8
}

// reset places bufbeg/buflim at the aligned start of the buffer and plants
// the leading sentinel, as grep.c's reset() does for a freshly opened file.
func (b *Buffer) reset() {
	start := alignUp(1, pageSize)
	if start >= len(b.data) {
		start = 1
	}
	b.beg = start
	b.lim = start
	b.data[b.beg-1] = b.eol
}

func alignUp(v, align int) int {
	if v%align == 0 {
		return v
	}
	return v + (align - v%align)
}

// Reset rebinds the Buffer to a new source for the next file in the work
// queue, reusing its backing array (spec.md §4.2 "reused across files").
func (b *Buffer) Reset(src io.Reader, size int64) {
	b.src = src
	b.size = size
	b.consumed = 0
	b.reset()
}

// Bytes returns the current logical window [bufbeg, buflim).
func (b *Buffer) Bytes() []byte {
	return b.data[b.beg:b.lim]
}

// Sentinel returns the byte immediately before the logical window, which
// Fill guarantees equals the eol byte.
func (b *Buffer) Sentinel() byte {
	return b.data[b.beg-1]
}

// Fill reads more data into the buffer, retaining the last save bytes of
// the current window (the as-yet-unprocessed residue the scan loop passes
// back in, spec.md §4.4 "residue"). It mirrors grep.c's fillbuf: grow only
// when the tail room left is smaller than one page, and when growing, cap
// the new size at the source's remaining length if that's known and
// larger than what's already needed. Returns false with err set on a read
// error; returns false with a nil error at EOF (nothing new was read), in
// which case Bytes() holds only the save bytes.
func (b *Buffer) Fill(save int) (ok bool, err error) {
	savedOff := b.lim - save

	var readBuf int
	if len(b.data)-pageSize-8-b.lim >= 0 && len(b.data)-b.lim >= pageSize {
		readBuf = b.lim
		b.beg = b.lim - save
	} else {
		minSize := save + pageSize
		newSize := len(b.data) - pageSize - 8
		if newSize < 1 {
			newSize = initialSize
		}
		for newSize < minSize {
			newSize *= 2
		}
		if b.size >= 0 {
			toBeRead := b.size - b.consumed
			if toBeRead >= 0 {
				maxSize := int64(save) + toBeRead
				if maxSize >= int64(minSize) && maxSize < int64(newSize) {
					newSize = int(maxSize)
				}
			}
		}

		newAlloc := alignedAlloc(newSize)
		newData := b.data
		if newAlloc > len(b.data) {
			newData = make([]byte, newAlloc)
		}
		dst := alignUp(1+save, pageSize)
		if dst+save > len(newData) {
			dst = 1 + save
		}
		copy(newData[dst-save:], b.data[savedOff:savedOff+save])
		newData[dst-save-1] = b.eol
		b.beg = dst - save
		readBuf = dst
		b.data = newData
	}

	readSize := len(b.data) - 8 - readBuf
	readSize -= readSize % pageSize
	if readSize <= 0 {
		readSize = len(b.data) - readBuf
	}

	var n int
	for {
		var rerr error
		n, rerr = io.ReadFull(b.src, b.data[readBuf:readBuf+readSize])
		if n > 0 {
			b.consumed += int64(n)
		}
		if rerr != nil && !errors.Is(rerr, io.EOF) && !errors.Is(rerr, io.ErrUnexpectedEOF) {
			return false, rerr
		}

		if n == 0 || !b.skipNuls || !b.seekable || !allZeros(b.data[readBuf:readBuf+n]) {
			break
		}
		// The chunk just read is entirely zero: rather than hand it to
		// the scan loop as one very long line, try to seek past the hole
		// it likely came from and read the real data beyond it (grep.c's
		// fillbuf loop around lseek(SEEK_DATA)).
		next, ok := b.holeSkip.SeekNextData(b.fd, b.consumed)
		if !ok {
			break
		}
		b.consumed = next
	}

	b.lim = readBuf + n
	// Clear the trailing word so code that peeks one word past buflim
	// (whole-line widening, the encoding probe) never reads stale bytes.
	for i := 0; i < 8 && b.lim+i < len(b.data); i++ {
		b.data[b.lim+i] = 0
	}
	return n > 0, nil
}

func allZeros(buf []byte) bool {
	for _, c := range buf {
		if c != 0 {
			return false
		}
	}
	return true
}

// AtEOF reports whether the underlying source has been fully consumed, to
// the extent its size is known; pipes/stdin (size < 0) rely on Fill's own
// n == 0 signal instead.
func (b *Buffer) AtEOF() bool {
	return b.size >= 0 && b.consumed >= b.size
}

// noopHoles is used when no platform-specific hole skipper is wired in.
type noopHoles struct{}

func (noopHoles) SeekNextData(uintptr, int64) (int64, bool) { return 0, false }

// NoHoleSkipper is the default HoleSkipper for sources that aren't seekable
// regular files (pipes, stdin, decompressed streams).
var NoHoleSkipper HoleSkipper = noopHoles{}

// fileSize returns f's size and -1 for non-regular files, mirroring
// grep.c's usable_st_size guard around the growth-capping heuristic.
func fileSize(f *os.File) int64 {
	fi, err := f.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		return -1
	}
	return fi.Size()
}
