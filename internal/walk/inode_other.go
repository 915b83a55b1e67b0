//go:build !linux

package walk

import "io/fs"

// deviceInode has no portable implementation outside syscall.Stat_t
// platforms; Walker.visited then never deduplicates, same as grep.c
// without a dev/inode source falling back to unconditional descent.
func deviceInode(fs.FileInfo) (dev, ino uint64, ok bool) {
	return 0, 0, false
}
