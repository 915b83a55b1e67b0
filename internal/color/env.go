package color

import "strings"

// colorCap mirrors grep.c's struct color_cap / color_dict table: a name,
// the field it writes into, and an optional side effect function run right
// after the value is stored.
type colorCap struct {
	name string
	set  func(caps *Capabilities, val string)
	fct  func(caps *Capabilities)
}

var colorDict = []colorCap{
	{"mt", func(c *Capabilities, v string) { c.SelectedMatch = v }, func(c *Capabilities) { c.ContextMatch = c.SelectedMatch }},
	{"ms", func(c *Capabilities, v string) { c.SelectedMatch = v }, nil},
	{"mc", func(c *Capabilities, v string) { c.ContextMatch = v }, nil},
	{"fn", func(c *Capabilities, v string) { c.Filename = v }, nil},
	{"ln", func(c *Capabilities, v string) { c.LineNum = v }, nil},
	{"bn", func(c *Capabilities, v string) { c.ByteNum = v }, nil},
	{"se", func(c *Capabilities, v string) { c.Sep = v }, nil},
	{"sl", func(c *Capabilities, v string) { c.SelectedLine = v }, nil},
	{"cx", func(c *Capabilities, v string) { c.ContextLine = v }, nil},
	{"rv", nil, func(c *Capabilities) { c.ReverseVideo = true }},
	{"ne", nil, func(c *Capabilities) { c.NoEL = true }},
}

// ParseGrepColors implements grep.c's parse_grep_colors exactly, including
// its tolerance for malformed entries (spec.md §9 Open Question (b)): valid
// "key=value" pairs seen before a malformed one are applied; the first
// malformed entry silently ends parsing (no error is returned — that is
// the documented, preserved behavior, not an oversight).
func ParseGrepColors(raw string) Capabilities {
	caps := Default()
	if raw == "" {
		return caps
	}

	name := ""
	val := ""
	haveVal := false

	flush := func() {
		if name == "" {
			return
		}
		for _, cap := range colorDict {
			if cap.name != name {
				continue
			}
			if haveVal && cap.set != nil {
				cap.set(&caps, val)
			}
			if cap.fct != nil {
				cap.fct(&caps)
			}
			return
		}
	}

	i := 0
	for i <= len(raw) {
		atEnd := i == len(raw)
		var ch byte
		if !atEnd {
			ch = raw[i]
		}
		switch {
		case atEnd || ch == ':':
			flush()
			if atEnd {
				return caps
			}
			name, val, haveVal = "", "", false
			i++
		case ch == '=':
			if haveVal {
				// A second '=' in one field is malformed: stop (grep.c
				// returns immediately without applying this or later entries).
				return caps
			}
			haveVal = true
			i++
		case !haveVal:
			name += string(ch)
			i++
		case ch == ';' || (ch >= '0' && ch <= '9'):
			val += string(ch)
			i++
		default:
			// Any other byte in a value is malformed: abort parsing, as
			// grep.c does ("protect the terminal from being sent crap").
			return caps
		}
	}
	return caps
}

// ParseGrepColor implements the legacy single-value GREP_COLOR variable,
// used only when GREP_COLORS is unset (spec.md §6). It sets both the
// selected- and context-match colors, matching grep.c's handling.
func ParseGrepColor(raw string) Capabilities {
	caps := Default()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return caps
	}
	caps.SelectedMatch = raw
	caps.ContextMatch = raw
	return caps
}

// ResolveEnv reads GREP_COLORS (preferred) or GREP_COLOR (legacy fallback)
// from the process environment and returns the resolved capability set.
func ResolveEnv(lookup func(string) (string, bool)) Capabilities {
	if v, ok := lookup("GREP_COLORS"); ok {
		return ParseGrepColors(v)
	}
	if v, ok := lookup("GREP_COLOR"); ok {
		return ParseGrepColor(v)
	}
	return Default()
}
