// Package matcher defines the polymorphic contract (spec.md §4.1) between
// the scanning engine and any compiled pattern back-end. The engine itself
// depends only on this interface; regex compilation back-ends are external
// collaborators (spec.md §1) that plug into it. internal/regex supplies the
// one back-end this repository ships (Go's regexp plus a literal-string
// fast path); basic/extended/fixed/Perl back-ends named in spec.md §4.1
// remain out of scope, same as spec.md itself scopes them.
package matcher

// Handle is an opaque compiled-pattern handle produced by Backend.Compile.
// Whether a given handle may be shared across goroutines is a property of
// the concrete Backend: see Backend.Reentrant.
type Handle any

// NoStart is the "unset" start hint: begin scanning at the beginning of the
// supplied range (spec.md §4.1).
const NoStart = -1

// Backend is the compile/execute pair every pattern back-end must provide.
type Backend interface {
	// Compile turns pattern into a Handle, or fails with a pattern error.
	Compile(pattern []byte) (Handle, error)

	// Execute searches buf[start:] (or the whole of buf when start is
	// NoStart) for the next matching line. It returns the byte offset and
	// length of that line within buf (the length includes the line's eol
	// byte, except for a final unterminated line), and whether anything
	// matched at all. buf may be read up to one machine word past its
	// logical length; callers guarantee that slop exists (spec.md §4.1).
	Execute(h Handle, buf []byte, start int, eol byte) (offset, length int, found bool)

	// Reentrant reports whether a single Handle may be called from
	// multiple goroutines concurrently. When false, callers must compile
	// one Handle per worker from the same pattern source (spec.md §3,
	// §4.7 "Pattern handle").
	Reentrant() bool
}
