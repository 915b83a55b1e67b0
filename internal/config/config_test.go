package config

import (
	"testing"

	"github.com/snonux/pgrep/internal/color"
	"github.com/snonux/pgrep/internal/scan"
	"github.com/snonux/pgrep/internal/walk"
)

func TestSetupBasicPattern(t *testing.T) {
	a := &Args{Operands: []string{"foo", "a.log"}}
	r, err := Setup(a, color.Default(), false)
	if err != nil {
		t.Fatal(err)
	}
	if string(r.Pattern) != "foo" {
		t.Errorf("Pattern = %q, want %q", r.Pattern, "foo")
	}
	if len(r.Operands) != 1 || r.Operands[0] != "a.log" {
		t.Errorf("Operands = %v, want [a.log]", r.Operands)
	}
	if r.Eol != '\n' {
		t.Errorf("Eol = %q, want newline", r.Eol)
	}
}

func TestSetupNoPatternIsError(t *testing.T) {
	a := &Args{}
	if _, err := Setup(a, color.Default(), false); err == nil {
		t.Error("expected an error for a missing pattern")
	}
}

func TestSetupNegativeMaxCountIsError(t *testing.T) {
	a := &Args{Operands: []string{"foo"}, MaxCount: -1}
	if _, err := Setup(a, color.Default(), false); err == nil {
		t.Error("expected an error for a negative --max-count")
	}
}

func TestSetupNullData(t *testing.T) {
	a := &Args{Operands: []string{"foo"}, NullData: true}
	r, err := Setup(a, color.Default(), false)
	if err != nil {
		t.Fatal(err)
	}
	if r.Eol != 0 {
		t.Errorf("Eol = %v, want 0 under -z", r.Eol)
	}
	if r.ScanOpt.Eol != 0 || r.OutputOpt.Eol != 0 {
		t.Error("derived Eol did not propagate to ScanOpt/OutputOpt")
	}
}

func TestSetupQuietImpliesDoneOnMatch(t *testing.T) {
	a := &Args{Operands: []string{"foo"}, Quiet: true}
	r, err := Setup(a, color.Default(), false)
	if err != nil {
		t.Fatal(err)
	}
	if !r.ScanOpt.Quiet || !r.ScanOpt.DoneOnMatch {
		t.Error("-q should set both Quiet and DoneOnMatch")
	}
}

func TestSetupCountDoesNotStopEarly(t *testing.T) {
	a := &Args{Operands: []string{"foo"}, Count: true}
	r, err := Setup(a, color.Default(), false)
	if err != nil {
		t.Fatal(err)
	}
	if !r.ScanOpt.Quiet {
		t.Error("-c should suppress per-line output")
	}
	if r.ScanOpt.DoneOnMatch {
		t.Error("-c should keep scanning to completion, unlike -q/-l/-L")
	}
}

func TestSetupRecursiveDefaultsToSkipSymlinks(t *testing.T) {
	a := &Args{Operands: []string{"foo"}, Recursive: true}
	r, err := Setup(a, color.Default(), false)
	if err != nil {
		t.Fatal(err)
	}
	if r.WalkOpt.Dir != walk.DirRecurse || r.WalkOpt.Symlinks != walk.SkipSymlinks {
		t.Errorf("WalkOpt = %+v, want DirRecurse/SkipSymlinks", r.WalkOpt)
	}
}

func TestSetupTextOverridesBinaryMode(t *testing.T) {
	a := &Args{Operands: []string{"foo"}, Text: true}
	r, err := Setup(a, color.Default(), false)
	if err != nil {
		t.Fatal(err)
	}
	if r.ScanOpt.Binary != scan.BinaryAsText {
		t.Errorf("Binary = %v, want BinaryAsText", r.ScanOpt.Binary)
	}
}

func TestSetupShowFilenameForMultipleOperands(t *testing.T) {
	a := &Args{Operands: []string{"foo", "a.log", "b.log"}}
	r, err := Setup(a, color.Default(), false)
	if err != nil {
		t.Fatal(err)
	}
	if !r.OutputOpt.ShowFilename {
		t.Error("ShowFilename should be true for multiple file operands")
	}
}
