package iobuf

import "sync"

// bufferPool recycles Buffer backing arrays across files the same way the
// teacher's internal/io/pool package recycles bytes.Buffer and scanner
// byte slices: a worker goroutine processes one file at a time, so a
// pooled Buffer avoids a fresh page-aligned allocation per work item.
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, alignedAlloc(initialSize))
	},
}

// Acquire returns a Buffer over s, reusing a pooled backing array when one
// is available instead of allocating a fresh one.
func Acquire(s *Source, eol byte, skipNuls bool) *Buffer {
	data := bufferPool.Get().([]byte)
	b := &Buffer{data: data, eol: eol, src: s.r, size: s.size, skipNuls: skipNuls, holeSkip: s.holeSkipper()}
	if s.size >= 0 {
		b.BindFD(s.file.Fd())
	}
	b.reset()
	return b
}

// Release returns b's backing array to the pool. b must not be used again
// afterward.
func Release(b *Buffer) {
	bufferPool.Put(b.data)
}
