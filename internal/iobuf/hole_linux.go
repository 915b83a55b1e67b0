//go:build linux

package iobuf

import "golang.org/x/sys/unix"

// unixHoles implements HoleSkipper with SEEK_DATA/SEEK_HOLE, letting Fill
// jump over sparse-file holes instead of reading (and NUL-zapping) them a
// page at a time, mirroring grep.c's fillbuf loop around lseek(SEEK_DATA).
type unixHoles struct{}

// NewHoleSkipper returns the platform hole skipper for regular files.
func NewHoleSkipper() HoleSkipper { return unixHoles{} }

func (unixHoles) SeekNextData(fd uintptr, offset int64) (int64, bool) {
	next, err := unix.Seek(int(fd), offset, unix.SEEK_DATA)
	if err != nil {
		return 0, false
	}
	return next, true
}
