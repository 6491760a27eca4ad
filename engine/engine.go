// Package engine runs compiled builder patterns against test subjects.
//
// Two backends are available behind the Matcher interface:
//   - Coregex (default): RE2 syntax, linear time, no backtracking. An
//     expression using an inline flag the linked coregex build answers
//     differently from regexp is run on regexp instead
//   - Regexp2: ECMAScript mode of github.com/dlclark/regexp2, for users who
//     want browser-like semantics of \w, \d and anchors
//
// The rule compiler only emits syntax both backends understand, so the
// choice affects performance and edge cases, not the accepted rule set.
//
// Basic usage:
//
//	m, err := engine.Compile(engine.Coregex, `\d+`, engine.Flags{IgnoreCase: true})
//	if err != nil {
//	    return err
//	}
//	m.MatchString("abc 123") // true
package engine

import (
	"fmt"
	"strings"
)

// Kind names a matcher backend.
type Kind string

const (
	// Coregex runs patterns on github.com/coregx/coregex.
	Coregex Kind = "coregex"

	// Regexp2 runs patterns on github.com/dlclark/regexp2 in ECMAScript mode.
	Regexp2 Kind = "regexp2"
)

// Kinds returns every registered backend in display order.
func Kinds() []Kind {
	return []Kind{Coregex, Regexp2}
}

// Valid reports whether k names a registered backend.
func (k Kind) Valid() bool {
	return k == Coregex || k == Regexp2
}

// Flags are the pattern-wide options a backend honours.
// The global flag has no meaning for a single boolean search and is not
// represented.
type Flags struct {
	IgnoreCase bool // i
	Multiline  bool // m
	DotAll     bool // s
}

// Prefix returns the inline-flag form, e.g. "(?im)", or "" when no flag
// is set.
func (f Flags) Prefix() string {
	if !f.IgnoreCase && !f.Multiline && !f.DotAll {
		return ""
	}
	var b strings.Builder
	b.WriteString("(?")
	if f.IgnoreCase {
		b.WriteByte('i')
	}
	if f.Multiline {
		b.WriteByte('m')
	}
	if f.DotAll {
		b.WriteByte('s')
	}
	b.WriteByte(')')
	return b.String()
}

// Matcher reports whether a compiled pattern occurs anywhere in a subject.
type Matcher interface {
	// MatchString reports whether the pattern matches somewhere in s.
	MatchString(s string) bool

	// String returns the expression the backend compiled, flags included.
	String() string
}

// Compile compiles source with flags on the backend named by kind.
// It does not consult any cache.
func Compile(kind Kind, source string, flags Flags) (Matcher, error) {
	cfg := DefaultConfig()
	cfg.Kind = kind
	return compile(cfg, source, flags)
}

func compile(cfg Config, source string, flags Flags) (Matcher, error) {
	switch cfg.Kind {
	case Coregex:
		return compileCoregex(source, flags)
	case Regexp2:
		return compileRegexp2(source, flags, cfg.MatchTimeout)
	default:
		return nil, &Error{
			Kind:    UnknownEngine,
			Message: fmt.Sprintf("unknown engine %q", cfg.Kind),
		}
	}
}

// Never is a Matcher that reports no match for every subject.
// It stands in for a pattern no backend could compile.
type Never struct {
	Expr string
}

// MatchString always returns false.
func (Never) MatchString(string) bool { return false }

// String returns the expression that failed to compile.
func (n Never) String() string { return n.Expr }
