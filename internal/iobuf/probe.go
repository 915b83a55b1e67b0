package iobuf

import "unicode/utf8"

// HasNulByte reports whether buf contains a NUL byte, the binary-file
// signal grep.c's buf_has_nulls tests via a sentinel-plus-strlen trick.
// A plain byte loop is the Go equivalent of that trick: both are single
// linear scans, and the loop needs no sentinel byte of its own.
func HasNulByte(buf []byte) bool {
	for _, c := range buf {
		if c == 0 {
			return true
		}
	}
	return false
}

// HasEncodingError reports whether buf contains a byte sequence that is
// not valid UTF-8, the role grep.c's buf_has_encoding_errors plays via its
// unibyte-mask skip_easy_bytes loop plus mbrlen. Go's utf8.Valid walks the
// same ground in one pass without needing a hand-rolled word-parallel
// skip: the standard library's UTF-8 validator already is the "suitable
// third-party-grade" tool for this, so no external library is warranted
// here.
func HasEncodingError(buf []byte) bool {
	return !utf8.Valid(buf)
}
