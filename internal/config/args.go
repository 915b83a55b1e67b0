// Package config resolves the command line, GREP_OPTIONS/GREP_COLORS
// environment variables and built-in defaults into the concrete option
// structs the scanning engine's packages consume (spec.md §6 "argument
// parsing" as an external collaborator; SPEC_FULL.md §10.2/10.3).
//
// Grounded on the teacher's internal/config/{args.go,config.go}:
// the same "one struct captures every flag, one Setup resolves
// derived fields" shape, generalized from dtail's client/server split
// to this engine's scan/output/walk/workerpool split.
package config

import "runtime"

// Directories mirrors grep.c's directories enum (spec.md §7 "I/O-on-directory").
type Directories string

const (
	DirRead    Directories = "read"
	DirSkip    Directories = "skip"
	DirRecurse Directories = "recurse"
)

// Devices mirrors grep.c's devices enum.
type Devices string

const (
	DevRead Devices = "read"
	DevSkip Devices = "skip"
)

// Args captures every flag named in spec.md §6/§8, before any
// derivation. cmd/pgrep binds cobra flags directly onto this struct's
// fields.
type Args struct {
	Patterns    []string // -e PATTERN, may repeat; first positional arg if empty
	PatternFile string   // -f FILE

	// Context (spec.md §4.5).
	After   int // -A
	Before  int // -B
	Context int // -C, and the accumulated -0..-9 digit flags

	// Match semantics.
	IgnoreCase bool // -i (no -y alias is bound)
	Invert     bool // -v
	WordRegexp bool // -w
	LineRegexp bool // -x

	// Pattern syntax selectors. The engine's one shipped back-end is Go's
	// regexp (spec.md §4.1 leaves basic/extended/fixed/Perl back-ends out
	// of scope), so these do not select a different compiler: -G and -E
	// have no effect, and -F quotes each pattern's metacharacters in
	// resolvePattern. They are not checked for mutual exclusivity.
	BasicRegexp    bool // -G (default)
	ExtendedRegexp bool // -E
	FixedStrings   bool // -F

	// Output control (spec.md §4.6).
	Count             bool // -c
	FilesWithMatches  bool // -l
	FilesWithoutMatch bool // -L
	LineNumber        bool // -n
	ByteOffset        bool // -b
	OnlyMatching      bool // -o
	WithFilename      bool // -H
	NoFilename        bool // -h
	NullData          bool // -z
	NullAfterName     bool // -Z
	InitialTab        bool // -T
	LineBuffered      bool
	GroupSeparator    string
	Color             string // auto|always|never
	NoColor           bool

	// Quiet/error handling (spec.md §7/§4.9).
	Quiet       bool // -q
	NoMessages  bool // -s
	MaxCount    int64 // -m, 0 means unlimited

	// Binary handling (spec.md §4.3).
	Text               bool // -a
	BinaryWithoutMatch bool // -I

	// Traversal (SPEC_FULL.md §12).
	Recursive       bool // -r
	RecursiveFollow bool // -R
	Directories     Directories
	Devices         Devices
	Include         []string
	Exclude         []string
	ExcludeDir      []string

	// Concurrency.
	Threads int // -M[N], 0 means "decide at Setup time"

	// Operands: the pattern (when Patterns/PatternFile unset, it is the
	// first element) and zero or more file/directory paths, or none for
	// stdin.
	Operands []string
}

// ResolveThreads returns the worker count: an explicit -M N, or the
// online CPU count when -M was given with no argument (Threads < 0 is
// that sentinel), or 1 when -M wasn't given at all (Threads == 0).
func (a *Args) ResolveThreads() int {
	switch {
	case a.Threads > 0:
		return a.Threads
	case a.Threads < 0:
		n := runtime.NumCPU()
		if n < 1 {
			n = 1
		}
		return n
	default:
		return 1
	}
}
