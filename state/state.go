// Package state holds the builder/tester application state and the reducer
// that moves it from one snapshot to the next.
//
// The reducer is a pure function of (state, action): it never modifies its
// input, and every returned snapshot carries freshly derived fields. The
// compiled pattern (Regex), the per-rule Issues and every Test.Match are
// recomputed on each call, whatever the action was, so they are never stale
// relative to the rules, options and subjects of the same snapshot.
//
//	s := state.Default()
//	s = state.Reduce(s, state.AddRule{})
//	s = state.Reduce(s, state.ChangeRule{Identifier: 1, Type: rule.Digit, Value: ""})
//	s = state.Reduce(s, state.AddTest{})
//	s = state.Reduce(s, state.ChangeTest{Identifier: 1, Subject: "a1", MustMatch: true})
//	s.Tester.Tests[0].Match // true
package state

import (
	"slices"

	"github.com/coregx/regexbuilder/rule"
)

// Test is one sample subject in the tester.
type Test struct {
	Identifier int    `yaml:"identifier" mapstructure:"identifier" validate:"gt=0"`
	Subject    string `yaml:"subject" mapstructure:"subject"`
	MustMatch  bool   `yaml:"must_match" mapstructure:"must_match"`

	// Match is derived: whether the current pattern matches Subject.
	Match bool `yaml:"match" mapstructure:"-"`
}

// Passing reports whether the test outcome agrees with the expectation.
func (t Test) Passing() bool {
	return t.Match == t.MustMatch
}

// BuilderState is the rule list and its options.
type BuilderState struct {
	Options        []rule.Option `yaml:"options"`
	Rules          []rule.Rule   `yaml:"rules"`
	NextIdentifier int           `yaml:"next_identifier"`
	DefaultType    rule.Type     `yaml:"default_type"`
}

// TesterState is the list of sample subjects.
type TesterState struct {
	Tests          []Test `yaml:"tests"`
	NextIdentifier int    `yaml:"next_identifier"`
}

// AppState is one immutable snapshot of the application.
//
// Regex and Issues are derived from Builder; Test.Match is derived from
// Builder and the test subject. Navigation belongs to the presentation
// layer and is carried through untouched.
type AppState struct {
	Builder    BuilderState `yaml:"builder"`
	Tester     TesterState  `yaml:"tester"`
	Regex      string       `yaml:"regex"`
	Issues     []rule.Issue `yaml:"issues,omitempty"`
	Navigation []string     `yaml:"navigation,omitempty"`
}

// Default returns the initial snapshot: default options all inactive, no
// rules, no tests, derived fields computed.
func Default() AppState {
	return Reduce(initial(), nil)
}

func initial() AppState {
	return AppState{
		Builder: BuilderState{
			Options:     rule.DefaultOptions(),
			Rules:       []rule.Rule{},
			DefaultType: rule.DefaultType,
		},
		Tester: TesterState{
			Tests: []Test{},
		},
		Navigation: []string{"builder", "tester", "loader"},
	}
}

// Option returns the option called name.
func (s AppState) Option(name string) (rule.Option, bool) {
	for _, o := range s.Builder.Options {
		if o.Name == name {
			return o, true
		}
	}
	return rule.Option{}, false
}

// Rule returns the rule with the given identifier.
func (s AppState) Rule(id int) (rule.Rule, bool) {
	for _, r := range s.Builder.Rules {
		if r.Identifier == id {
			return r, true
		}
	}
	return rule.Rule{}, false
}

// Test returns the test with the given identifier.
func (s AppState) Test(id int) (Test, bool) {
	for _, t := range s.Tester.Tests {
		if t.Identifier == id {
			return t, true
		}
	}
	return Test{}, false
}

// Failing returns the tests whose outcome disagrees with their expectation.
func (s AppState) Failing() []Test {
	var out []Test
	for _, t := range s.Tester.Tests {
		if !t.Passing() {
			out = append(out, t)
		}
	}
	return out
}

// clone copies every slice of s so the copy can be changed freely.
func (s AppState) clone() AppState {
	out := s
	out.Builder.Options = slices.Clone(s.Builder.Options)
	out.Builder.Rules = slices.Clone(s.Builder.Rules)
	out.Tester.Tests = slices.Clone(s.Tester.Tests)
	out.Issues = slices.Clone(s.Issues)
	out.Navigation = slices.Clone(s.Navigation)
	return out
}
