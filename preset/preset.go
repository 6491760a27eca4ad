// Package preset provides ready-made builder states that can be loaded into
// the reducer, such as URL and email validation.
//
// Presets are static data. Each call returns fresh slices, so a caller may
// modify a bundle without affecting later calls.
//
//	s := state.Reduce(state.Default(), preset.LoadURLValidation())
//	s.Regex // /^https{0,1}:\/\/.../i
package preset

import (
	"slices"
	"sort"

	"github.com/coregx/regexbuilder/rule"
	"github.com/coregx/regexbuilder/state"
)

// Bundle is a complete set of options, rules and tests.
type Bundle struct {
	Name           string        `yaml:"name"`
	Description    string        `yaml:"description"`
	Options        []rule.Option `yaml:"options"`
	Rules          []rule.Rule   `yaml:"rules"`
	NextIdentifier int           `yaml:"next_identifier"`
	Tests          []state.Test  `yaml:"tests"`
}

// Names of the built-in bundles.
const (
	NameURLValidation   = "url"
	NameEmailValidation = "email"
)

var registry = map[string]func() Bundle{
	NameURLValidation:   URLValidation,
	NameEmailValidation: EmailValidation,
}

// LoadAction wraps b into a Load action.
func LoadAction(b Bundle) state.Load {
	return state.Load{
		Options:        slices.Clone(b.Options),
		Rules:          slices.Clone(b.Rules),
		NextIdentifier: b.NextIdentifier,
		Tests:          slices.Clone(b.Tests),
	}
}

// LoadURLValidation returns the Load action of URLValidation.
func LoadURLValidation() state.Load {
	return LoadAction(URLValidation())
}

// LoadEmailValidation returns the Load action of EmailValidation.
func LoadEmailValidation() state.Load {
	return LoadAction(EmailValidation())
}

// Lookup returns the bundle called name.
func Lookup(name string) (Bundle, bool) {
	fn, ok := registry[name]
	if !ok {
		return Bundle{}, false
	}
	return fn(), true
}

// Names returns the names of every bundle, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every bundle, sorted by name.
func All() []Bundle {
	names := Names()
	out := make([]Bundle, len(names))
	for i, name := range names {
		out[i] = registry[name]()
	}
	return out
}

func options(active ...string) []rule.Option {
	opts := rule.DefaultOptions()
	for i := range opts {
		opts[i].Active = slices.Contains(active, opts[i].Name)
	}
	return opts
}

// URLValidation matches http and https URLs with a dotted host and an
// optional path, case-insensitively.
func URLValidation() Bundle {
	return Bundle{
		Name:        NameURLValidation,
		Description: "http(s) URL with a dotted host and optional path",
		Options:     options(rule.OptionInsensitive),
		Rules: []rule.Rule{
			{Identifier: 1, Type: rule.Start},
			{Identifier: 2, Type: rule.Literal, Value: "http"},
			{Identifier: 3, Type: rule.Literal, Value: "s", RepeatMax: "1"},
			{Identifier: 4, Type: rule.Literal, Value: "://"},
			{Identifier: 5, Type: rule.Range, Value: "a-z0-9-", RepeatMin: "1"},
			{Identifier: 6, Type: rule.Pattern, Value: `\.[a-z0-9-]+`, RepeatMin: "1"},
			{Identifier: 7, Type: rule.Pattern, Value: `/\S*`, RepeatMax: "1"},
			{Identifier: 8, Type: rule.End},
		},
		NextIdentifier: 8,
		Tests: []state.Test{
			{Identifier: 1, Subject: "http://example.com", MustMatch: true},
			{Identifier: 2, Subject: "https://www.example.org/path?q=1", MustMatch: true},
			{Identifier: 3, Subject: "https://sub.domain.co.uk/", MustMatch: true},
			{Identifier: 4, Subject: "HTTPS://EXAMPLE.COM", MustMatch: true},
			{Identifier: 5, Subject: "not a url", MustMatch: false},
			{Identifier: 6, Subject: "ftp://example.com", MustMatch: false},
			{Identifier: 7, Subject: "http://localhost", MustMatch: false},
			{Identifier: 8, Subject: "http://exa mple.com", MustMatch: false},
		},
	}
}

// EmailValidation matches a local part, an @ and a dotted domain ending in
// a top-level domain of at least two letters.
func EmailValidation() Bundle {
	return Bundle{
		Name:        NameEmailValidation,
		Description: "email address with a dotted domain",
		Options:     options(),
		Rules: []rule.Rule{
			{Identifier: 1, Type: rule.Start},
			{Identifier: 2, Type: rule.Range, Value: "a-zA-Z0-9._%+-", RepeatMin: "1"},
			{Identifier: 3, Type: rule.Literal, Value: "@"},
			{Identifier: 4, Type: rule.Range, Value: "a-zA-Z0-9-", RepeatMin: "1"},
			{Identifier: 5, Type: rule.Pattern, Value: `\.[a-zA-Z0-9-]+`, RepeatMin: "0"},
			{Identifier: 6, Type: rule.Literal, Value: "."},
			{Identifier: 7, Type: rule.Range, Value: "a-zA-Z", RepeatMin: "2"},
			{Identifier: 8, Type: rule.End},
		},
		NextIdentifier: 8,
		Tests: []state.Test{
			{Identifier: 1, Subject: "john.doe@example.com", MustMatch: true},
			{Identifier: 2, Subject: "jane+tag@mail.example.co.uk", MustMatch: true},
			{Identifier: 3, Subject: "user@localhost", MustMatch: false},
			{Identifier: 4, Subject: "@example.com", MustMatch: false},
			{Identifier: 5, Subject: "john@example.c", MustMatch: false},
			{Identifier: 6, Subject: "john doe@example.com", MustMatch: false},
			{Identifier: 7, Subject: "not an email", MustMatch: false},
		},
	}
}
