package iobuf

import (
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"
)

// Source pairs an open file with what Buffer needs to know about it: its
// size (or -1), and whether the underlying fd can be lseek'd for
// sparse-file skipping. Opening and closing files is a work-item concern
// (internal/walk, internal/queue); Source only wraps an already-open one.
type Source struct {
	file *os.File
	r    io.Reader
	size int64
}

// Open wraps f for streaming. When name ends in ".zst" the returned Source
// transparently decompresses via github.com/DataDog/zstd (the teacher's
// own dependency, carried into the one component that can exercise it),
// in the spirit of zgrep/zstdgrep layered under the same streaming-buffer
// abstraction (spec.md §4.2, SPEC_FULL.md §11/§12). A decompressed stream
// has no reliable size and isn't seekable, so sparse-file skipping is
// disabled for it.
func Open(name string, f *os.File) *Source {
	if strings.HasSuffix(name, ".zst") {
		return &Source{file: f, r: zstd.NewReader(f), size: -1}
	}
	return &Source{file: f, r: f, size: fileSize(f)}
}

func (s *Source) holeSkipper() HoleSkipper {
	if s.size < 0 {
		return NoHoleSkipper
	}
	return NewHoleSkipper()
}

// Close releases the underlying file (and, for a .zst source, the
// decompressor).
func (s *Source) Close() error {
	if rc, ok := s.r.(io.Closer); ok && rc != io.Closer(s.file) {
		rc.Close()
	}
	return s.file.Close()
}
