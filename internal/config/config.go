package config

import (
	"regexp"

	"github.com/snonux/pgrep/internal/color"
	"github.com/snonux/pgrep/internal/output"
	"github.com/snonux/pgrep/internal/scan"
	"github.com/snonux/pgrep/internal/scanerr"
	"github.com/snonux/pgrep/internal/walk"
)

// Resolved is the derived, ready-to-use configuration built from Args plus
// environment and default resolution (spec.md §6; SPEC_FULL.md §10.2),
// mirroring the teacher's Setup/transformConfig split: Args is what the
// user typed, Resolved is what every downstream package actually consumes.
type Resolved struct {
	Pattern  []byte
	Operands []string // file/dir paths; empty means read stdin

	Eol      byte
	SkipNuls bool

	ScanOpt   scan.Options
	OutputOpt output.Options
	WalkOpt   walk.Options

	Workers     int
	StatusQuiet bool // -s, passed to status.New so error messages are still counted but not printed
	NoMessages  bool // -s
}

// Setup resolves a.'s fields plus the environment into a Resolved
// configuration, or an InvalidOption/InvalidArgument error (spec.md §7).
func Setup(a *Args, colorCaps color.Capabilities, colorize bool) (*Resolved, error) {
	pattern, err := resolvePattern(a)
	if err != nil {
		return nil, err
	}

	if a.MaxCount < 0 {
		return nil, scanerr.Wrap(scanerr.ErrInvalidArgument, "--max-count must not be negative")
	}

	eol := byte('\n')
	if a.NullData {
		eol = 0
	}

	quiet := a.Quiet || a.Count || a.FilesWithMatches || a.FilesWithoutMatch
	doneOnMatch := a.Quiet || a.FilesWithMatches || a.FilesWithoutMatch

	binary := scan.BinaryAsBinary
	switch {
	case a.Text:
		binary = scan.BinaryAsText
	case a.BinaryWithoutMatch:
		binary = scan.BinaryWithoutMatch
	}

	showFilename := a.WithFilename || (len(a.Operands) > 1 && !a.NoFilename)

	groupSep := a.GroupSeparator
	if groupSep == "" {
		groupSep = "--"
	}

	walkDir := walk.DirRead
	switch a.Directories {
	case DirSkip:
		walkDir = walk.DirSkip
	case DirRecurse:
		walkDir = walk.DirRecurse
	}
	if a.Recursive || a.RecursiveFollow {
		walkDir = walk.DirRecurse
	}
	symlinks := walk.SkipSymlinks
	if a.RecursiveFollow {
		symlinks = walk.FollowSymlinks
	}

	r := &Resolved{
		Pattern:    pattern,
		Operands:   a.Operands,
		Eol:        eol,
		SkipNuls:   true,
		StatusQuiet: a.NoMessages,
		NoMessages: a.NoMessages,
		Workers:    a.ResolveThreads(),
		ScanOpt: scan.Options{
			MaxCount:    a.MaxCount,
			Invert:      a.Invert,
			Binary:      binary,
			Quiet:       quiet,
			DoneOnMatch: doneOnMatch,
			Eol:         eol,
		},
		OutputOpt: output.Options{
			ShowFilename:   showFilename,
			ShowLineNumber: a.LineNumber,
			ShowByteOffset: a.ByteOffset,
			OnlyMatching:   a.OnlyMatching,
			AlignTabs:      a.InitialTab,
			NullAfterName:  a.NullAfterName,
			Invert:         a.Invert,
			LineBuffered:   a.LineBuffered,
			GroupSeparator: groupSep,
			Colors:         colorCaps,
			Colorize:       colorize && !a.NoColor,
			Eol:            eol,
		},
		WalkOpt: walk.Options{
			Dir:        walkDir,
			Symlinks:   symlinks,
			Include:    a.Include,
			Exclude:    a.Exclude,
			ExcludeDir: a.ExcludeDir,
		},
	}
	return r, nil
}

// resolvePattern assembles the final pattern bytes from -e/positional
// arguments, consuming the leading positional operand as the pattern when
// no -e/-f was given (spec.md §4.1's compile input), then applies
// -F/-w/-x/-i the way grep.c's own pattern preprocessing does: by
// transforming the pattern text itself rather than the matcher, since the
// one back-end this repository ships (internal/regex) wraps Go's regexp
// with no separate knobs for these (spec.md §4.1 leaves back-end variety
// out of scope).
func resolvePattern(a *Args) ([]byte, error) {
	quote := func(p string) string {
		if a.FixedStrings {
			return regexp.QuoteMeta(p)
		}
		return p
	}

	var pattern string
	switch {
	case len(a.Patterns) > 0:
		pattern = quote(a.Patterns[0])
		for _, p := range a.Patterns[1:] {
			pattern += "|" + quote(p)
		}
	case len(a.Operands) > 0:
		pattern = quote(a.Operands[0])
		a.Operands = a.Operands[1:]
	default:
		return nil, scanerr.Wrap(scanerr.ErrInvalidArgument, "no pattern given")
	}

	if a.WordRegexp {
		pattern = `\b(?:` + pattern + `)\b`
	}
	if a.LineRegexp {
		pattern = `(?m)^(?:` + pattern + `)$`
	}
	if a.IgnoreCase {
		pattern = `(?i)` + pattern
	}
	return []byte(pattern), nil
}
