//go:build !linux

package iobuf

// NewHoleSkipper returns NoHoleSkipper on platforms without SEEK_DATA,
// same as grep.c's "lame substitutes" fallback when SEEK_DATA == SEEK_SET.
func NewHoleSkipper() HoleSkipper { return NoHoleSkipper }
