package config

import "testing"

func TestResolveThreadsDefault(t *testing.T) {
	a := &Args{}
	if got := a.ResolveThreads(); got != 1 {
		t.Errorf("ResolveThreads() with Threads=0 = %d, want 1", got)
	}
}

func TestResolveThreadsExplicit(t *testing.T) {
	a := &Args{Threads: 4}
	if got := a.ResolveThreads(); got != 4 {
		t.Errorf("ResolveThreads() with Threads=4 = %d, want 4", got)
	}
}

func TestResolveThreadsCPUCount(t *testing.T) {
	a := &Args{Threads: -1}
	if got := a.ResolveThreads(); got < 1 {
		t.Errorf("ResolveThreads() with Threads=-1 = %d, want >= 1", got)
	}
}
