package state

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/coregx/regexbuilder/engine"
	"github.com/coregx/regexbuilder/rule"
)

// Reducer applies actions to snapshots using a configured rule compiler.
//
// A Reducer holds no application state; it is safe to share.
type Reducer struct {
	compiler *rule.Compiler
	logger   zerolog.Logger
}

// NewReducer creates a Reducer compiling with c.
func NewReducer(c *rule.Compiler, logger zerolog.Logger) *Reducer {
	return &Reducer{compiler: c, logger: logger}
}

var defaultReducer = NewReducer(
	rule.NewCompiler(engine.MustNew(engine.DefaultConfig()), zerolog.Nop()),
	zerolog.Nop(),
)

// Reduce applies a to s with the default reducer.
func Reduce(s AppState, a Action) AppState {
	return defaultReducer.Reduce(s, a)
}

// Compile compiles the builder of s with the default reducer's compiler.
func Compile(s AppState) rule.Compiled {
	return defaultReducer.Compile(s)
}

// Compile compiles the builder rules and options of s.
func (r *Reducer) Compile(s AppState) rule.Compiled {
	return r.compiler.Compile(s.Builder.Rules, s.Builder.Options)
}

// Reduce returns the snapshot that follows s after a.
//
// The zero AppState stands for "no state yet" and is replaced by the
// initial snapshot first. A malformed action, a lookup miss and an unknown
// action all leave the data unchanged. A pointer to an action reduces like
// the action itself; a nil pointer is a nil action. Derived fields are
// recomputed in every case. s is never modified.
func (r *Reducer) Reduce(s AppState, a Action) (out AppState) {
	if isZero(s) {
		s = initial()
	}
	a = concrete(a)
	kind := KindOf(a)

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().
				Str("action", kind).
				Interface("panic", p).
				Msg("reducer panicked, keeping previous data")
			out = r.derive(s.clone())
		}
	}()

	next := s.clone()
	if err := Validate(a); err != nil {
		r.logger.Warn().Err(err).Str("action", kind).Msg("ignoring malformed action")
	} else {
		next = r.apply(next, a)
	}
	return r.derive(next)
}

// apply performs the action-specific transform on a private copy.
func (r *Reducer) apply(s AppState, a Action) AppState {
	switch a := a.(type) {
	case nil:
		// recompute only

	case Load:
		if !sameOptionNames(s.Builder.Options, a.Options) {
			r.logger.Warn().Str("action", a.Kind()).Msg("ignoring load with a different option set")
			return s
		}
		s.Builder.Options = slices.Clone(a.Options)
		s.Builder.Rules = nonNil(slices.Clone(a.Rules))
		s.Builder.NextIdentifier = a.NextIdentifier
		s.Tester.Tests = nonNil(slices.Clone(a.Tests))
		s.Tester.NextIdentifier = maxTestID(a.Tests)

	case ResetRules:
		for i := range s.Builder.Options {
			s.Builder.Options[i].Active = false
		}
		s.Builder.Rules = []rule.Rule{}

	case OptionChange:
		for i := range s.Builder.Options {
			if s.Builder.Options[i].Name == a.Name {
				s.Builder.Options[i].Active = !s.Builder.Options[i].Active
			}
		}

	case RemoveRule:
		s.Builder.Rules = slices.DeleteFunc(s.Builder.Rules, func(x rule.Rule) bool {
			return x.Identifier == a.Identifier
		})

	case AddRule:
		typ := s.Builder.DefaultType
		if typ == "" {
			typ = rule.DefaultType
		}
		s.Builder.NextIdentifier++
		s.Builder.Rules = append(s.Builder.Rules, rule.Rule{
			Identifier: s.Builder.NextIdentifier,
			Type:       typ,
		})

	case ChangeRule:
		for i := range s.Builder.Rules {
			x := &s.Builder.Rules[i]
			if x.Identifier != a.Identifier {
				continue
			}
			x.Type = a.Type
			x.Value = a.Value
			if a.RepeatMin != nil {
				x.RepeatMin = *a.RepeatMin
			}
			if a.RepeatMax != nil {
				x.RepeatMax = *a.RepeatMax
			}
		}

	case AddTest:
		s.Tester.NextIdentifier = max(s.Tester.NextIdentifier, maxTestID(s.Tester.Tests)) + 1
		s.Tester.Tests = append(s.Tester.Tests, Test{
			Identifier: s.Tester.NextIdentifier,
			MustMatch:  true,
		})

	case RemoveTest:
		s.Tester.Tests = slices.DeleteFunc(s.Tester.Tests, func(x Test) bool {
			return x.Identifier == a.Identifier
		})

	case ChangeTest:
		for i := range s.Tester.Tests {
			x := &s.Tester.Tests[i]
			if x.Identifier == a.Identifier {
				x.Subject = a.Subject
				x.MustMatch = a.MustMatch
			}
		}

	case ResetTests:
		s.Tester.Tests = []Test{}

	default:
		r.logger.Debug().Str("action", a.Kind()).Msg("unrecognized action")
	}
	return s
}

// derive recomputes Regex, Issues and every Test.Match of s in place.
// s must be a private copy.
func (r *Reducer) derive(s AppState) AppState {
	c := r.Compile(s)
	s.Regex = c.Pattern
	s.Issues = c.Issues
	for i := range s.Tester.Tests {
		s.Tester.Tests[i].Match = c.MatchString(s.Tester.Tests[i].Subject)
	}
	r.logger.Debug().
		Str("regex", s.Regex).
		Int("rules", len(s.Builder.Rules)).
		Int("tests", len(s.Tester.Tests)).
		Int("issues", len(s.Issues)).
		Msg("state derived")
	return s
}

func isZero(s AppState) bool {
	return s.Builder.Options == nil &&
		s.Builder.Rules == nil &&
		s.Builder.NextIdentifier == 0 &&
		s.Builder.DefaultType == "" &&
		s.Tester.Tests == nil &&
		s.Tester.NextIdentifier == 0
}

// sameOptionNames reports whether next keeps the option set of cur. An empty
// current set accepts anything.
func sameOptionNames(cur, next []rule.Option) bool {
	if len(cur) == 0 {
		return true
	}
	return slices.EqualFunc(cur, next, func(a, b rule.Option) bool {
		return a.Name == b.Name
	})
}

func maxTestID(tests []Test) int {
	n := 0
	for _, t := range tests {
		n = max(n, t.Identifier)
	}
	return n
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
