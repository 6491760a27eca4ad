package engine

import (
	"regexp"
	"regexp/syntax"

	"github.com/coregx/coregex"
)

type coregexMatcher struct {
	re *coregex.Regex
}

// compileCoregex compiles expr on coregex. An expression using a flag the
// linked coregex build answers differently from regexp runs on regexp; the
// syntax of both is the same, so only the matcher changes.
func compileCoregex(source string, flags Flags) (Matcher, error) {
	expr := flags.Prefix() + source
	if needsFallback(expr) {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &Error{
				Kind:    CompileFailed,
				Message: "coregex: cannot compile `" + expr + "`",
				Cause:   err,
			}
		}
		return re, nil
	}

	re, err := coregex.Compile(expr)
	if err != nil {
		return nil, &Error{
			Kind:    CompileFailed,
			Message: "coregex: cannot compile `" + expr + "`",
			Cause:   err,
		}
	}
	return &coregexMatcher{re: re}, nil
}

func (m *coregexMatcher) MatchString(s string) bool {
	return m.re.MatchString(s)
}

func (m *coregexMatcher) String() string {
	return m.re.String()
}

// QuoteMeta escapes every metacharacter in s.
// The result is valid literal syntax for both backends.
func QuoteMeta(s string) string {
	return coregex.QuoteMeta(s)
}

// flagSupport records whether coregex agrees with regexp on each inline
// flag. It is measured once against subjects that exercise case folding,
// line anchors and dot-all.
type flagSupport struct {
	ignoreCase bool
	multiline  bool
	dotAll     bool
}

var coregexFlags = flagSupport{
	ignoreCase: agrees(`(?i)hello`, "HeLLo world", "HELLO", "say hello", "help") &&
		agrees(`(?i)^hello`, "HELLO", "x HELLO") &&
		agrees(`(?im)^hello`, "x\nHeLLo", "xHeLLo"),
	multiline: agrees(`(?m)^hello`, "x\nhello", "xhello") &&
		agrees(`(?m)^b$`, "a\nb\nc", "ab"),
	dotAll: agrees(`(?s)a.b`, "a\nb", "ab", "axb"),
}

// agrees reports whether coregex and regexp give the same answer for expr
// on every subject.
func agrees(expr string, subjects ...string) bool {
	re, err := coregex.Compile(expr)
	if err != nil {
		return false
	}
	std := regexp.MustCompile(expr)
	for _, s := range subjects {
		if re.MatchString(s) != std.MatchString(s) {
			return false
		}
	}
	return true
}

// needsFallback reports whether expr uses a flag coregexFlags marks as
// unsupported, wherever the flag was set: as a prefix or inside a group.
// Expressions that do not parse are left to coregex to report.
func needsFallback(expr string) bool {
	if coregexFlags.ignoreCase && coregexFlags.multiline && coregexFlags.dotAll {
		return false
	}
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return false
	}
	return coregexFlags.uses(re)
}

func (f flagSupport) uses(re *syntax.Regexp) bool {
	switch {
	case !f.ignoreCase && re.Flags&syntax.FoldCase != 0:
		return true
	case !f.multiline && (re.Op == syntax.OpBeginLine || re.Op == syntax.OpEndLine):
		return true
	case !f.dotAll && re.Op == syntax.OpAnyChar:
		return true
	}
	for _, sub := range re.Sub {
		if f.uses(sub) {
			return true
		}
	}
	return false
}
