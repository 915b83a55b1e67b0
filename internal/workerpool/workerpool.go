// Package workerpool runs a fixed number of goroutines pulling from an
// internal/queue.Queue and scanning each file (spec.md §4.7/§4.8, §5).
// Grounded on original_source/grep.c's worker_thread_func: each worker
// owns its own streaming buffer and (when the compiled pattern isn't
// reentrant) its own compiled-pattern handle, and all workers share one
// serialized output sink the way grep.c's recursive output mutex does.
package workerpool

import (
	"os"
	"sync"

	"github.com/snonux/pgrep/internal/iobuf"
	"github.com/snonux/pgrep/internal/linectx"
	"github.com/snonux/pgrep/internal/matcher"
	"github.com/snonux/pgrep/internal/output"
	"github.com/snonux/pgrep/internal/queue"
	"github.com/snonux/pgrep/internal/scan"
	"github.com/snonux/pgrep/internal/scanerr"
)

// FileResult is what one worker reports back for one Item.
type FileResult struct {
	Path    string
	Scan    scan.Result
	Err     error
	Skipped bool // directory/device skipped per walk/scan Options, not an error
}

// Pool runs N workers consuming from a shared queue.
type Pool struct {
	n        int
	be       matcher.Backend
	pattern  []byte
	handle   matcher.Handle // pre-compiled; reused directly when be.Reentrant()
	scanOpt  scan.Options
	before   int
	after    int
	fmtr     *output.Formatter
	outMu    *sync.Mutex
	skipNuls bool
	eol      byte
}

// New builds a Pool. handle must already be compiled from pattern (the
// caller validates the pattern once, eagerly, before any file is opened —
// spec.md §7 "InvalidPattern diagnosed before any file is opened"); when
// be.Reentrant() every worker reuses handle directly, and only otherwise
// does each worker compile its own (spec.md §4.7 "Pattern handle").
//
// fmtr must already be safe to call only while outMu is held; Pool takes
// that mutex around every PrintLine-producing scan.File call, mirroring
// grep.c's lock_output/unlock_output pair (here widened to cover the whole
// per-file scan rather than per-line, which is sufficient since files are
// scanned one at a time per worker and interleaving only happens at file
// granularity — spec.md §4.8 requires output to never interleave within
// one file, not global strict file-completion ordering).
func New(n int, be matcher.Backend, pattern []byte, handle matcher.Handle, scanOpt scan.Options, before, after int, fmtr *output.Formatter, outMu *sync.Mutex, skipNuls bool, eol byte) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{n: n, be: be, pattern: pattern, handle: handle, scanOpt: scanOpt, before: before, after: after, fmtr: fmtr, outMu: outMu, skipNuls: skipNuls, eol: eol}
}

// Run drains q, calling onResult for each file (from any worker goroutine
// — onResult must be safe for concurrent use, or must itself serialize,
// e.g. by sending down a channel). Run blocks until q is drained and
// Finish has been called on it.
func (p *Pool) Run(q *queue.Queue, onResult func(FileResult)) {
	var wg sync.WaitGroup
	wg.Add(p.n)
	for i := 0; i < p.n; i++ {
		go func() {
			defer wg.Done()
			p.worker(q, onResult)
		}()
	}
	wg.Wait()
}

func (p *Pool) worker(q *queue.Queue, onResult func(FileResult)) {
	h, err := p.workerHandle()
	if err != nil {
		return
	}
	tr := linectx.New(p.before, p.after)

	for {
		item, ok := q.Dequeue()
		if !ok {
			return
		}
		onResult(p.scanOne(item, h, tr))
	}
}

// workerHandle returns the Handle this worker should use: the shared
// pre-compiled one when the backend is reentrant, or a fresh compile from
// the same pattern source otherwise.
func (p *Pool) workerHandle() (matcher.Handle, error) {
	if p.be.Reentrant() {
		return p.handle, nil
	}
	return p.be.Compile(p.pattern)
}

func (p *Pool) scanOne(item queue.Item, h matcher.Handle, tr *linectx.Tracker) FileResult {
	var f *os.File
	var err error
	name := item.Path
	if item.IsStdin {
		f = os.Stdin
		name = "(standard input)"
	} else {
		f, err = os.Open(item.Path)
		if err != nil {
			return FileResult{Path: item.Path, Err: scanerr.Wrap(err, item.Path)}
		}
		defer f.Close()
	}

	src := iobuf.Open(name, f)
	buf := iobuf.Acquire(src, p.eol, p.skipNuls)
	defer iobuf.Release(buf)

	p.outMu.Lock()
	p.fmtr.ResetFile(name, 0)
	result, serr := scan.File(buf, p.be, h, tr, p.fmtr, p.scanOpt)
	p.fmtr.Flush()
	p.outMu.Unlock()

	if serr != nil {
		return FileResult{Path: item.Path, Err: scanerr.Wrap(serr, item.Path)}
	}
	return FileResult{Path: item.Path, Scan: result}
}
