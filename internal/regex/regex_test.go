package regex

import (
	"testing"

	"github.com/snonux/pgrep/internal/matcher"
)

func TestIsLiteralPattern(t *testing.T) {
	tests := []struct {
		pattern string
		literal bool
	}{
		{"hello", true},
		{"hello world", true},
		{"hel.o", false},
		{"a+b", false},
		{"[abc]", false},
		{"foo|bar", false},
		{"^anchored$", false},
	}
	for _, tt := range tests {
		r, err := Compile(tt.pattern)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tt.pattern, err)
		}
		if r.IsLiteral() != tt.literal {
			t.Errorf("Compile(%q).IsLiteral() = %v, want %v", tt.pattern, r.IsLiteral(), tt.literal)
		}
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	if _, err := Compile("a("); err == nil {
		t.Fatal("expected error for unbalanced paren")
	}
}

func TestBackendExecuteWholeLineWidening(t *testing.T) {
	var be Backend
	h, err := be.Compile([]byte("fox"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	buf := []byte("the cat sat\nthe quick fox jumped\nthe dog slept\n")
	off, length, found := be.Execute(h, buf, matcher.NoStart, '\n')
	if !found {
		t.Fatal("expected a match")
	}
	got := string(buf[off : off+length])
	want := "the quick fox jumped\n"
	if got != want {
		t.Errorf("Execute widened to %q, want %q", got, want)
	}
}

func TestBackendExecuteUnterminatedFinalLine(t *testing.T) {
	var be Backend
	h, _ := be.Compile([]byte("dog"))
	buf := []byte("the cat sat\nthe dog slept")
	off, length, found := be.Execute(h, buf, matcher.NoStart, '\n')
	if !found {
		t.Fatal("expected a match")
	}
	if got, want := string(buf[off:off+length]), "the dog slept"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBackendExecuteNullData(t *testing.T) {
	var be Backend
	h, _ := be.Compile([]byte("b"))
	buf := []byte("aaa\x00bbb\x00ccc\x00")
	off, length, found := be.Execute(h, buf, matcher.NoStart, 0)
	if !found {
		t.Fatal("expected a match")
	}
	if got, want := string(buf[off:off+length]), "bbb\x00"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBackendExecuteNoMatch(t *testing.T) {
	var be Backend
	h, _ := be.Compile([]byte("zzz"))
	buf := []byte("the cat sat\n")
	if _, _, found := be.Execute(h, buf, matcher.NoStart, '\n'); found {
		t.Error("expected no match")
	}
}

func TestBackendExecuteStartOffsetSkipsEarlierMatch(t *testing.T) {
	var be Backend
	h, _ := be.Compile([]byte("cat"))
	buf := []byte("cat one\ncat two\n")
	off, length, found := be.Execute(h, buf, 8, '\n')
	if !found {
		t.Fatal("expected a match")
	}
	if got, want := string(buf[off:off+length]), "cat two\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBackendReentrant(t *testing.T) {
	var be Backend
	if !be.Reentrant() {
		t.Error("regex.Backend should report Reentrant() == true")
	}
}
