package workerpool

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/snonux/pgrep/internal/color"
	"github.com/snonux/pgrep/internal/output"
	"github.com/snonux/pgrep/internal/queue"
	"github.com/snonux/pgrep/internal/regex"
	"github.com/snonux/pgrep/internal/scan"
)

func TestPoolThreadsAfterContextIntoTracker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.log")
	content := "a\nb\nMATCH\nc\nd\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var be regex.Backend
	h, err := be.Compile([]byte("MATCH"))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	var outMu sync.Mutex
	fmtr := output.New(&out, output.Options{Colors: color.Default(), Eol: '\n'})

	pool := New(1, be, []byte("MATCH"), h, scan.Options{Eol: '\n'}, 1, 1, fmtr, &outMu, false, '\n')

	q := queue.New(4)
	q.Enqueue(queue.Item{Path: path})
	q.Finish()

	var results []FileResult
	pool.Run(q, func(res FileResult) { results = append(results, res) })
	fmtr.Flush()

	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %+v", results)
	}
	want := "b\nMATCH\nc\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q (after-context line %q missing)", out.String(), want, "c")
	}
}
