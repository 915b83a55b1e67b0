package linectx

import "testing"

func TestLeadingContextStartWalksWholeLines(t *testing.T) {
	buf := []byte("one\ntwo\nthree\nfour\n")
	matchStart := 14 // start of "four"
	got := LeadingContextStart(buf, '\n', 0, matchStart, 2)
	want := 8 // start of "two"
	if got != want {
		t.Errorf("LeadingContextStart = %d (%q), want %d (%q)", got, buf[got:], want, buf[want:])
	}
}

func TestLeadingContextStartStopsAtBufBeg(t *testing.T) {
	buf := []byte("one\ntwo\n")
	got := LeadingContextStart(buf, '\n', 0, 4, 5)
	if got != 0 {
		t.Errorf("LeadingContextStart = %d, want 0 (clamped at bufBeg)", got)
	}
}

func TestNeedsSeparator(t *testing.T) {
	tr := New(2, 2)
	if tr.NeedsSeparator(0) {
		t.Error("separator should never fire before any output")
	}
	tr.RecordOutput(10, false)
	if !tr.NeedsSeparator(20) {
		t.Error("expected separator: used, context configured, non-adjacent")
	}
	if tr.NeedsSeparator(10) {
		t.Error("adjacent block should not need a separator")
	}
}

func TestNeedsSeparatorNoContextConfigured(t *testing.T) {
	tr := New(0, 0)
	tr.RecordOutput(10, false)
	if tr.NeedsSeparator(99) {
		t.Error("no -A/-B/-C means no group separator regardless of adjacency")
	}
}

func TestRecordOutputQuietSuppressesPending(t *testing.T) {
	tr := New(0, 3)
	tr.RecordOutput(5, true)
	if tr.Pending != 0 {
		t.Errorf("Pending = %d, want 0 under quiet mode", tr.Pending)
	}
}

func TestRecordOutputArmsPending(t *testing.T) {
	tr := New(0, 3)
	tr.RecordOutput(5, false)
	if tr.Pending != 3 {
		t.Errorf("Pending = %d, want 3", tr.Pending)
	}
}

func TestAdjacentCheckClearsLastOut(t *testing.T) {
	tr := New(1, 1)
	tr.LastOut = 10
	tr.AdjacentCheck(4)
	if tr.LastOut != 0 {
		t.Errorf("LastOut = %d, want 0 after a non-adjacent leading-context walk", tr.LastOut)
	}
}

func TestResetForFileClearsPendingAndLastOutOnly(t *testing.T) {
	tr := New(1, 1)
	tr.RecordOutput(5, false)
	tr.ResetForFile()
	if tr.Pending != 0 || tr.LastOut != 0 {
		t.Errorf("ResetForFile left state: %+v", tr)
	}
	if !tr.used {
		t.Error("ResetForFile should not clear `used` (it spans the whole run)")
	}
}
