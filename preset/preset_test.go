package preset

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/regexbuilder/engine"
	"github.com/coregx/regexbuilder/rule"
	"github.com/coregx/regexbuilder/state"
)

func TestBundlesCompileClean(t *testing.T) {
	for _, b := range All() {
		t.Run(b.Name, func(t *testing.T) {
			c := rule.Compile(b.Rules, b.Options)
			assert.True(t, c.Valid(), "issues: %v", c.Issues)
			require.NoError(t, state.Validate(LoadAction(b)))
		})
	}
}

func TestBundleTestsPass(t *testing.T) {
	for _, kind := range engine.Kinds() {
		cfg := engine.DefaultConfig()
		cfg.Kind = kind
		r := state.NewReducer(rule.NewCompiler(engine.MustNew(cfg), zerolog.Nop()), zerolog.Nop())

		for _, b := range All() {
			t.Run(string(kind)+"/"+b.Name, func(t *testing.T) {
				s := r.Reduce(state.Default(), LoadAction(b))

				require.Len(t, s.Builder.Rules, len(b.Rules), "load rejected")
				for _, test := range s.Tester.Tests {
					assert.True(t, test.Passing(), "test %d %q: match=%v", test.Identifier, test.Subject, test.Match)
				}
			})
		}
	}
}

func TestURLValidation(t *testing.T) {
	s := state.Reduce(state.Default(), LoadURLValidation())

	assert.Equal(t, `/^https{0,1}:\/\/[a-z0-9-]{1,}(?:\.[a-z0-9-]+){1,}(?:\/\S*){0,1}$/i`, s.Regex)
	assert.Len(t, s.Builder.Options, len(rule.DefaultOptions()))
	assert.Equal(t, 8, s.Builder.NextIdentifier)

	c := state.Compile(s)
	assert.True(t, c.MatchString("https://go.dev/doc/"))
	assert.False(t, c.MatchString("not a url"))
}

func TestEmailValidation(t *testing.T) {
	s := state.Reduce(state.Default(), LoadEmailValidation())

	assert.Equal(t, `/^[a-zA-Z0-9._%+-]{1,}@[a-zA-Z0-9-]{1,}(?:\.[a-zA-Z0-9-]+){0,}\.[a-zA-Z]{2,}$/`, s.Regex)
	assert.Len(t, s.Builder.Options, len(rule.DefaultOptions()))

	c := state.Compile(s)
	assert.True(t, c.MatchString("gopher@golang.org"))
	assert.False(t, c.MatchString("not an email"))
}

func TestLoadThenAddRule(t *testing.T) {
	s := state.Reduce(state.Default(), LoadURLValidation())
	s = state.Reduce(s, state.AddRule{})

	_, ok := s.Rule(9)
	assert.True(t, ok)

	s = state.Reduce(s, state.AddTest{})
	_, ok = s.Test(9)
	assert.True(t, ok)
}

func TestBundlesAreFresh(t *testing.T) {
	b := URLValidation()
	b.Rules[0].Type = rule.Digit
	b.Options[0].Active = true

	again := URLValidation()
	assert.Equal(t, rule.Start, again.Rules[0].Type)
	assert.False(t, again.Options[0].Active)

	l := LoadAction(again)
	l.Rules[1].Value = "ftp"
	assert.Equal(t, "http", again.Rules[1].Value)
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{NameEmailValidation, NameURLValidation}, Names())

	b, ok := Lookup(NameEmailValidation)
	require.True(t, ok)
	assert.Equal(t, NameEmailValidation, b.Name)

	_, ok = Lookup("phone")
	assert.False(t, ok)

	all := All()
	require.Len(t, all, 2)
	assert.Equal(t, NameEmailValidation, all[0].Name)
	assert.Equal(t, NameURLValidation, all[1].Name)
}
