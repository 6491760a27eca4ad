package rule

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coregx/regexbuilder/engine"
)

// Compiled is the result of compiling rules and options.
//
// A Compiled value is immutable and safe to share between goroutines.
type Compiled struct {
	// Source is the concatenation of every rule fragment, without flags.
	Source string

	// Flags holds the values of the active options, in option order.
	Flags string

	// Pattern is the display form, e.g. /\w{1,2}/gi.
	Pattern string

	// Issues lists every rule that did not contribute as written.
	Issues []Issue

	// Err is set when the concatenated pattern could not be compiled. The
	// matcher then reports no match for every subject.
	Err error

	flags   engine.Flags
	matcher engine.Matcher
}

// MatchString reports whether the pattern occurs anywhere in s.
func (c Compiled) MatchString(s string) bool {
	if c.matcher == nil {
		return false
	}
	return c.matcher.MatchString(s)
}

// Matcher returns the executable matcher.
func (c Compiled) Matcher() engine.Matcher {
	if c.matcher == nil {
		return engine.Never{Expr: c.Expr()}
	}
	return c.matcher
}

// Expr returns the engine form of the pattern with inline flags,
// e.g. (?i)\w{1,2}.
func (c Compiled) Expr() string {
	return c.flags.Prefix() + c.Source
}

// EngineFlags returns the flags the matcher was compiled with.
func (c Compiled) EngineFlags() engine.Flags {
	return c.flags
}

// Valid reports whether every rule compiled as written.
func (c Compiled) Valid() bool {
	return len(c.Issues) == 0 && c.Err == nil
}

// IssuesFor returns the issues reported for one rule.
func (c Compiled) IssuesFor(ruleID int) []Issue {
	var out []Issue
	for _, is := range c.Issues {
		if is.RuleID == ruleID {
			out = append(out, is)
		}
	}
	return out
}

// Compiler turns rules into patterns on a configured engine.
// It is safe for concurrent use.
type Compiler struct {
	engine *engine.Engine
	logger zerolog.Logger
}

// NewCompiler creates a Compiler running on e.
func NewCompiler(e *engine.Engine, logger zerolog.Logger) *Compiler {
	return &Compiler{engine: e, logger: logger}
}

// Engine returns the engine the compiler runs on.
func (c *Compiler) Engine() *engine.Engine {
	return c.engine
}

var defaultCompiler = NewCompiler(engine.MustNew(engine.DefaultConfig()), zerolog.Nop())

// Compile compiles rules and options on the default coregex engine.
func Compile(rules []Rule, options []Option) Compiled {
	return defaultCompiler.Compile(rules, options)
}

// Compile compiles rules in order with the active options.
//
// It never fails: rules that cannot be rendered become empty fragments and
// are listed in Compiled.Issues.
func (c *Compiler) Compile(rules []Rule, options []Option) Compiled {
	out := Compiled{}
	out.Flags, out.flags = collectFlags(options)

	var src strings.Builder
	for _, r := range rules {
		piece, issue := c.render(r)
		if issue != nil {
			out.Issues = append(out.Issues, *issue)
			c.logger.Debug().
				Int("rule", r.Identifier).
				Str("kind", issue.Kind.String()).
				Err(issue).
				Msg("rule degraded")
		}
		src.WriteString(piece)
	}
	out.Source = src.String()
	out.Pattern = display(out.Source, out.Flags)

	m, err := c.compileSafe(out.Source, out.flags)
	if err != nil {
		out.Err = err
		out.Issues = append(out.Issues, Issue{
			Kind:    InvalidPattern,
			Message: "pattern rejected by engine",
			Cause:   err,
		})
		out.matcher = engine.Never{Expr: out.Expr()}
		c.logger.Debug().Err(err).Str("expr", out.Expr()).Msg("pattern rejected")
		return out
	}
	out.matcher = m
	return out
}

// render returns the fragment of r including its quantifier. A returned
// issue with a non-empty piece means the rule rendered partially (the
// quantifier was dropped).
func (c *Compiler) render(r Rule) (string, *Issue) {
	if issue := checkType(r); issue != nil {
		return "", issue
	}

	frag, atom, anchor := fragment(r)
	quant, issue := quantifier(r)
	if issue != nil {
		return "", issue
	}

	if quant != "" && (anchor || frag == "") {
		return frag, &Issue{
			RuleID:  r.Identifier,
			Kind:    IgnoredRepeat,
			Message: fmt.Sprintf("repeat bounds ignored on %s rule", r.Type),
			Cause:   ErrNotRepeatable,
		}
	}
	if quant != "" && !atom {
		frag = "(?:" + frag + ")"
	}
	piece := frag + quant

	if needsProbe(r.Type) && piece != "" {
		if _, err := c.compileSafe(piece, engine.Flags{}); err != nil {
			return "", &Issue{
				RuleID:  r.Identifier,
				Kind:    InvalidFragment,
				Message: fmt.Sprintf("%s value %q rejected by engine", r.Type, r.Value),
				Cause:   err,
			}
		}
	}
	return piece, nil
}

// compileSafe compiles on the engine and turns a panic into an error.
func (c *Compiler) compileSafe(source string, flags engine.Flags) (m engine.Matcher, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("engine panic: %v", r)
		}
	}()
	return c.engine.Compile(source, flags)
}

// collectFlags returns the active option values in order and the engine
// flags they map to. Values without an engine meaning (g) are kept for
// display only.
func collectFlags(options []Option) (string, engine.Flags) {
	var b strings.Builder
	var f engine.Flags
	for _, o := range options {
		if !o.Active {
			continue
		}
		b.WriteString(o.Value)
		switch o.Value {
		case "i":
			f.IgnoreCase = true
		case "m":
			f.Multiline = true
		case "s":
			f.DotAll = true
		}
	}
	return b.String(), f
}
