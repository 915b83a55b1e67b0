//go:build linux

package queue

import "golang.org/x/sys/unix"

// Capacity returns half of RLIMIT_NOFILE, grep.c's own max_queued_files
// heuristic (leaving the other half of the descriptor budget for files
// workers currently have open plus stdio/sockets). Returns a conservative
// default when the limit can't be read.
func Capacity() (int, error) {
	var rlim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rlim); err != nil {
		return defaultCapacity, ErrQueueCapacity
	}
	cap := int(rlim.Cur / 2)
	if cap < 1 {
		cap = 1
	}
	return cap, nil
}
