package config

import (
	"os"
	"strings"

	"github.com/snonux/pgrep/internal/color"
	"github.com/snonux/pgrep/internal/logger"
)

// PrependGrepOptions splits GREP_OPTIONS (space-separated, backslash
// escapes whitespace) and prepends it to argv, matching grep.c's
// historical GREP_OPTIONS handling and its deprecation warning
// (spec.md §6). Called once before flag parsing in cmd/pgrep.
func PrependGrepOptions(argv []string, lookup func(string) (string, bool)) []string {
	raw, ok := lookup("GREP_OPTIONS")
	if !ok || raw == "" {
		return argv
	}
	logger.Warn("GREP_OPTIONS is deprecated; please use an alias or script instead")
	extra := splitGrepOptions(raw)
	out := make([]string, 0, len(extra)+len(argv))
	out = append(out, extra...)
	out = append(out, argv...)
	return out
}

// splitGrepOptions splits raw on whitespace, treating a backslash as an
// escape for the following character (so "\\ " embeds a literal space
// in one token), the documented GREP_OPTIONS quoting rule.
func splitGrepOptions(raw string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	escaped := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			cur.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == ' ' || c == '\t':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}

// ResolveColors reads GREP_COLORS/GREP_COLOR from the process
// environment via internal/color.ResolveEnv.
func ResolveColors() color.Capabilities {
	return color.ResolveEnv(func(k string) (string, bool) { return os.LookupEnv(k) })
}
