package rule

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/regexbuilder/engine"
)

// fragment renders r without its quantifier.
//
// atom reports whether a quantifier may follow the fragment directly;
// otherwise the fragment is wrapped in a non-capturing group first.
// anchor reports a zero-width assertion, which never takes a quantifier.
func fragment(r Rule) (frag string, atom, anchor bool) {
	switch r.Type {
	case Word:
		return `\w`, true, false
	case Any:
		return `.`, true, false
	case Digit:
		return `\d`, true, false
	case Whitespace:
		return `\s`, true, false
	case Start:
		return `^`, false, true
	case End:
		return `$`, false, true
	case Literal:
		return engine.QuoteMeta(r.Value), utf8.RuneCountInString(r.Value) == 1, false
	case Range:
		if r.Value == "" {
			return "", false, false
		}
		return "[" + escapeClass(r.Value) + "]", true, false
	case Excluded:
		if r.Value == "" {
			return "", false, false
		}
		return "[^" + escapeClass(r.Value) + "]", true, false
	case Pattern:
		if r.Value == "" {
			return "", false, false
		}
		// Always grouped: an alternation in the value must not leak into
		// neighbouring rules.
		return "(?:" + r.Value + ")", true, false
	}
	return "", false, false
}

// needsProbe reports whether the fragment of t carries user syntax that the
// engine may reject on its own.
func needsProbe(t Type) bool {
	return t == Range || t == Excluded || t == Pattern
}

// escapeClass escapes the characters that would end or negate a character
// class early. Backslash escapes such as \d and \. are kept so they can be
// used inside ranges.
func escapeClass(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	escaped := false
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '[' || c == ']':
			b.WriteByte('\\')
		case c == '^' && i == 0:
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// display renders the conventional /source/flags form. An empty source is
// shown as (?:) and unescaped slashes are escaped so the delimiters stay
// unambiguous.
func display(source, flags string) string {
	if source == "" {
		return "/(?:)/" + flags
	}
	var b strings.Builder
	b.Grow(len(source) + len(flags) + 4)
	b.WriteByte('/')
	escaped := false
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '/':
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('/')
	b.WriteString(flags)
	return b.String()
}
