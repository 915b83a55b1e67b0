package walk

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "hi")

	w := New(Options{})
	var found []string
	if err := w.Discover(path, func(p string) error { found = append(found, p); return nil }); err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0] != path {
		t.Errorf("found = %v, want [%s]", found, path)
	}
}

func TestDiscoverRecurseExcludesAndIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.go"), "")
	writeFile(t, filepath.Join(dir, "skip.txt"), "")
	writeFile(t, filepath.Join(dir, "vendor", "dep.go"), "")

	w := New(Options{Dir: DirRecurse, Include: []string{"*.go"}, ExcludeDir: []string{"vendor"}})
	var found []string
	if err := w.Discover(dir, func(p string) error { found = append(found, p); return nil }); err != nil {
		t.Fatal(err)
	}
	sort.Strings(found)
	want := []string{filepath.Join(dir, "keep.go")}
	if len(found) != len(want) || found[0] != want[0] {
		t.Errorf("found = %v, want %v", found, want)
	}
}

func TestDiscoverDirSkip(t *testing.T) {
	dir := t.TempDir()
	w := New(Options{Dir: DirSkip})
	var found []string
	if err := w.Discover(dir, func(p string) error { found = append(found, p); return nil }); err != nil {
		t.Fatal(err)
	}
	if len(found) != 0 {
		t.Errorf("expected DirSkip to emit nothing, got %v", found)
	}
}
