// Package regex is the one matcher.Backend this repository ships: Go's
// regexp package, with a literal-string fast path for patterns that carry
// no metacharacters at all. Grounded on the teacher's own internal/regex
// package, which carried exactly this optimization (isLiteralPattern,
// literalBytes) for the same reason: a large share of real-world grep
// invocations search for a plain substring, and bytes.Index avoids the
// regexp engine entirely for those.
package regex

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/snonux/pgrep/internal/matcher"
)

// Regex is a compiled pattern handle. The Go regexp.Regexp it wraps is safe
// for concurrent use, so Backend.Reentrant is true and workers may share one
// compiled Regex (spec.md §4.7).
type Regex struct {
	pattern      string
	re           *regexp.Regexp
	isLiteral    bool
	literalBytes []byte
}

// metaChars are the ASCII regex metacharacters; a pattern containing none
// of them can be searched with bytes.Index instead of regexp.FindIndex.
const metaChars = `.+*?^$[]{}()|\`

func isLiteralPattern(pattern string) bool {
	return !bytes.ContainsAny([]byte(pattern), metaChars)
}

// Compile builds a Regex from its source string.
func Compile(pattern string) (*Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	r := &Regex{pattern: pattern, re: re}
	if isLiteralPattern(pattern) {
		r.isLiteral = true
		r.literalBytes = []byte(pattern)
	}
	return r, nil
}

// Pattern returns the original, uncompiled pattern string.
func (r *Regex) Pattern() string { return r.pattern }

// IsLiteral reports whether Execute will take the bytes.Index fast path.
func (r *Regex) IsLiteral() bool { return r.isLiteral }

// findRaw returns the offset and length of the first match at or after
// start, or found=false. It never widens to line boundaries; Backend.Execute
// does that.
func (r *Regex) findRaw(buf []byte, start int) (offset, length int, found bool) {
	if start < 0 || start > len(buf) {
		start = 0
	}
	if r.isLiteral {
		idx := bytes.Index(buf[start:], r.literalBytes)
		if idx < 0 {
			return 0, 0, false
		}
		return start + idx, len(r.literalBytes), true
	}
	loc := r.re.FindIndex(buf[start:])
	if loc == nil {
		return 0, 0, false
	}
	return start + loc[0], loc[1] - loc[0], true
}

// Backend adapts Regex to matcher.Backend.
type Backend struct{}

// Compile implements matcher.Backend.
func (Backend) Compile(pattern []byte) (matcher.Handle, error) {
	return Compile(string(pattern))
}

// Reentrant implements matcher.Backend: Go's regexp.Regexp is safe for
// concurrent use by multiple goroutines, so one compiled Regex may be
// shared read-only by every worker (spec.md §4.7, §5).
func (Backend) Reentrant() bool { return true }

// Execute implements matcher.Backend. It locates the first raw match at or
// after start and widens it to the enclosing whole line: backward to the
// byte after the previous eol (or buf[0]), forward through the next eol
// (inclusive), or to len(buf) if the line is not eol-terminated. This
// matches the whole-line contract spec.md §4.1 requires of "whole-line"
// matchers. When buf holds exactly one line (as when internal/output
// re-invokes Execute to locate matches for highlighting) the result is
// that whole line, not the matched substring.
func (Backend) Execute(h matcher.Handle, buf []byte, start int, eol byte) (offset, length int, found bool) {
	r, ok := h.(*Regex)
	if !ok || r == nil {
		return 0, 0, false
	}
	if start == matcher.NoStart {
		start = 0
	}
	matchOff, matchLen, ok := r.findRaw(buf, start)
	if !ok {
		return 0, 0, false
	}

	lineStart := matchOff
	for lineStart > 0 && buf[lineStart-1] != eol {
		lineStart--
	}

	lineEnd := matchOff + matchLen
	for lineEnd < len(buf) && (lineEnd == 0 || buf[lineEnd-1] != eol) {
		lineEnd++
	}

	return lineStart, lineEnd - lineStart, true
}
