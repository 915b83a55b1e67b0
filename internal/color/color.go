// Package color implements the ANSI SGR wrapping and GREP_COLORS/GREP_COLOR
// environment parsing described in spec.md §6. Wrapping is done by a
// Wrapper value built from a resolved Capabilities set (there is no
// package-level on/off switch; callers decide whether to wrap at all)
// rather than by a terminal-styling library: SGR codes here are a small, fixed vocabulary
// dictated by the wire format in spec.md, not a general styling concern.
package color

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// sgrStart/sgrEnd mirror grep.c's sgr_start/sgr_end pair; "ne" (no
// erase-to-end-of-line) switches both to the shorter form.
const (
	sgrStartDefault = "\x1b[%sm\x1b[K"
	sgrEndDefault   = "\x1b[m\x1b[K"
	sgrStartNoEL    = "\x1b[%sm"
	sgrEndNoEL      = "\x1b[m"
)

// Capabilities holds the resolved set of color assignments a Formatter
// needs, mirroring grep.c's color_dict variables one for one.
type Capabilities struct {
	SelectedMatch string
	ContextMatch  string
	Filename      string
	LineNum       string
	ByteNum       string
	Sep           string
	SelectedLine  string
	ContextLine   string
	ReverseVideo  bool
	NoEL          bool
}

// Default returns the documented GREP_COLORS defaults (spec.md §6 table).
func Default() Capabilities {
	return Capabilities{
		SelectedMatch: "01;31",
		ContextMatch:  "01;31",
		Filename:      "35",
		LineNum:       "32",
		ByteNum:       "32",
		Sep:           "36",
		SelectedLine:  "",
		ContextLine:   "",
	}
}

// ShouldColorize resolves the three-state --color flag ("auto", "always",
// "never") against whether fd looks like a terminal, the same decision
// grep.c's isatty-backed color_option makes implicitly through --color=auto
// being the default.
func ShouldColorize(mode string, fd *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(fd.Fd()))
	}
}

// Wrapper renders SGR start/end sequences for a resolved Capabilities set.
type Wrapper struct {
	caps     Capabilities
	sgrStart string
	sgrEnd   string
}

// NewWrapper builds a Wrapper, applying "rv" (swap selected/context line
// colors) and "ne" (short SGR form) the way grep.c's color_cap_rv_fct and
// color_cap_ne_fct do at parse time.
func NewWrapper(caps Capabilities) *Wrapper {
	w := &Wrapper{caps: caps, sgrStart: sgrStartDefault, sgrEnd: sgrEndDefault}
	if caps.NoEL {
		w.sgrStart = sgrStartNoEL
		w.sgrEnd = sgrEndNoEL
	}
	if caps.ReverseVideo {
		w.caps.SelectedLine, w.caps.ContextLine = w.caps.ContextLine, w.caps.SelectedLine
	}
	return w
}

// Caps returns the resolved capability set (post rv/ne adjustment).
func (w *Wrapper) Caps() Capabilities {
	return w.caps
}

// Wrap surrounds text with the SGR sequence for code, or returns text
// unchanged when code is empty (grep.c's pr_sgr_start/pr_sgr_end no-op on
// an empty capability string).
func (w *Wrapper) Wrap(code, text string) string {
	if code == "" {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text) + 16)
	sb.WriteString(strings.Replace(w.sgrStart, "%s", code, 1))
	sb.WriteString(text)
	sb.WriteString(w.sgrEnd)
	return sb.String()
}

// Start returns just the opening SGR sequence for code (used when the tail
// of a colorized region is written incrementally, as in print_line_middle).
func (w *Wrapper) Start(code string) string {
	if code == "" {
		return ""
	}
	return strings.Replace(w.sgrStart, "%s", code, 1)
}

// End returns the closing SGR sequence, paired with Start.
func (w *Wrapper) End(code string) string {
	if code == "" {
		return ""
	}
	return w.sgrEnd
}
