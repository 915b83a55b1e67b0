package iobuf

// ZapNuls replaces every NUL byte in buf with eol, so a long run of zero
// bytes in binary input is never mistaken for one enormous line. Grounded
// on grep.c's zap_nuls, which does the same rewrite in place before the
// scan loop sees the buffer (spec.md §4.2 "NUL-zapping").
func ZapNuls(buf []byte, eol byte) {
	if eol == 0 {
		return
	}
	for i, c := range buf {
		if c == 0 {
			buf[i] = eol
		}
	}
}
