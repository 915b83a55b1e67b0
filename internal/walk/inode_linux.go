//go:build linux

package walk

import (
	"io/fs"
	"syscall"
)

// deviceInode extracts the (device, inode) pair grep.c's cycle detection
// keys off of.
func deviceInode(info fs.FileInfo) (dev, ino uint64, ok bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return uint64(st.Dev), st.Ino, true
}
