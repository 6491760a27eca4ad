package state

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/regexbuilder/engine"
	"github.com/coregx/regexbuilder/rule"
)

// fixture returns a state holding two rules and three tests.
func fixture(t *testing.T) AppState {
	t.Helper()
	s := Reduce(Default(), Load{
		Options: rule.DefaultOptions(),
		Rules: []rule.Rule{
			{Identifier: 1, Type: rule.Literal, Value: "id-"},
			{Identifier: 2, Type: rule.Digit, RepeatMin: "2", RepeatMax: "4"},
		},
		NextIdentifier: 2,
		Tests: []Test{
			{Identifier: 1, Subject: "id-42", MustMatch: true},
			{Identifier: 2, Subject: "ID-42", MustMatch: false},
			{Identifier: 3, Subject: "id-4", MustMatch: false},
		},
	})
	require.Len(t, s.Builder.Rules, 2, "fixture load rejected")
	return s
}

// assertDerived checks that every derived field agrees with a fresh compile.
func assertDerived(t *testing.T, s AppState) {
	t.Helper()
	c := Compile(s)
	assert.Equal(t, c.Pattern, s.Regex, "regex is stale")
	assert.Equal(t, c.Issues, s.Issues, "issues are stale")
	for _, test := range s.Tester.Tests {
		assert.Equal(t, c.MatchString(test.Subject), test.Match,
			"match of test %d (%q) is stale", test.Identifier, test.Subject)
	}
}

func allActions() []Action {
	return []Action{
		nil,
		Load{Options: rule.DefaultOptions(), NextIdentifier: 0},
		ResetRules{},
		OptionChange{Name: rule.OptionInsensitive},
		RemoveRule{Identifier: 1},
		AddRule{},
		ChangeRule{Identifier: 2, Type: rule.Word, Value: "", RepeatMin: Bound("1")},
		AddTest{},
		RemoveTest{Identifier: 2},
		ChangeTest{Identifier: 1, Subject: "x", MustMatch: false},
		ResetTests{},
		Unknown{Name: "SOMETHING_ELSE"},
		ChangeRule{Identifier: 0, Type: rule.Word},
	}
}

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, rule.DefaultOptions(), s.Builder.Options)
	assert.Empty(t, s.Builder.Rules)
	assert.NotNil(t, s.Builder.Rules)
	assert.Equal(t, 0, s.Builder.NextIdentifier)
	assert.Equal(t, rule.DefaultType, s.Builder.DefaultType)
	assert.Empty(t, s.Tester.Tests)
	assert.Equal(t, "/(?:)/", s.Regex)
	assert.Empty(t, s.Issues)
	assert.Equal(t, []string{"builder", "tester", "loader"}, s.Navigation)
}

func TestReduceDoesNotModifyInput(t *testing.T) {
	for _, a := range allActions() {
		t.Run(KindOf(a), func(t *testing.T) {
			s := fixture(t)
			before := s.clone()

			_ = Reduce(s, a)

			assert.Equal(t, before, s)
		})
	}
}

func TestReduceDerivesFreshFields(t *testing.T) {
	s := fixture(t)
	assertDerived(t, s)

	for _, a := range allActions() {
		s = Reduce(s, a)
		assertDerived(t, s)
	}
}

func TestReduceDeterministic(t *testing.T) {
	for _, a := range allActions() {
		t.Run(KindOf(a), func(t *testing.T) {
			s := fixture(t)
			assert.Equal(t, Reduce(s, a), Reduce(s, a))
		})
	}
}

func TestFixtureMatches(t *testing.T) {
	s := fixture(t)

	assert.Equal(t, `/id-\d{2,4}/`, s.Regex)
	assert.Empty(t, s.Failing())
	test, ok := s.Test(1)
	require.True(t, ok)
	assert.True(t, test.Match)
}

func TestAddRuleToEmptyState(t *testing.T) {
	s := Reduce(Default(), AddRule{})

	require.Len(t, s.Builder.Rules, 1)
	assert.Equal(t, rule.Rule{Identifier: 1, Type: rule.DefaultType}, s.Builder.Rules[0])
	assert.Equal(t, 1, s.Builder.NextIdentifier)
	assert.Equal(t, "/(?:)/", s.Regex)
}

func TestAddRuleUsesStateDefaultType(t *testing.T) {
	s := Default()
	s.Builder.DefaultType = rule.Digit

	s = Reduce(s, AddRule{})

	r, ok := s.Rule(1)
	require.True(t, ok)
	assert.Equal(t, rule.Digit, r.Type)
	assert.Equal(t, `/\d/`, s.Regex)
}

func TestRuleIdentifiersNeverReused(t *testing.T) {
	s := Default()
	for range 3 {
		s = Reduce(s, AddRule{})
	}
	s = Reduce(s, RemoveRule{Identifier: 3})
	s = Reduce(s, AddRule{})

	ids := make([]int, 0, len(s.Builder.Rules))
	for _, r := range s.Builder.Rules {
		ids = append(ids, r.Identifier)
	}
	assert.Equal(t, []int{1, 2, 4}, ids)
	assert.Equal(t, 4, s.Builder.NextIdentifier)

	s = Reduce(s, ResetRules{})
	s = Reduce(s, AddRule{})
	assert.Equal(t, 5, s.Builder.Rules[0].Identifier)
}

func TestChangeRuleScenario(t *testing.T) {
	s := Reduce(Default(), AddRule{})
	s = Reduce(s, ChangeRule{
		Identifier: 1,
		Type:       rule.Word,
		RepeatMin:  Bound("1"),
		RepeatMax:  Bound("2"),
	})
	s = Reduce(s, AddTest{})
	s = Reduce(s, ChangeTest{Identifier: 1, Subject: "ab", MustMatch: true})

	assert.Equal(t, `/\w{1,2}/`, s.Regex)
	require.Len(t, s.Tester.Tests, 1)
	assert.True(t, s.Tester.Tests[0].Match)
	assert.True(t, s.Tester.Tests[0].Passing())
}

func TestChangeRuleKeepsBoundsWhenAbsent(t *testing.T) {
	s := fixture(t)

	s = Reduce(s, ChangeRule{Identifier: 2, Type: rule.Word})

	r, ok := s.Rule(2)
	require.True(t, ok)
	assert.Equal(t, rule.Rule{Identifier: 2, Type: rule.Word, RepeatMin: "2", RepeatMax: "4"}, r)
	assert.Equal(t, `/id-\w{2,4}/`, s.Regex)

	s = Reduce(s, ChangeRule{Identifier: 2, Type: rule.Word, RepeatMin: Bound(""), RepeatMax: Bound("")})
	assert.Equal(t, `/id-\w/`, s.Regex)
}

func TestChangeRuleWithBadValuesRecordsIssue(t *testing.T) {
	s := fixture(t)

	s = Reduce(s, ChangeRule{Identifier: 2, Type: "bogus"})

	r, ok := s.Rule(2)
	require.True(t, ok)
	assert.Equal(t, rule.Type("bogus"), r.Type, "rule data is kept as entered")
	assert.Equal(t, "/id-/", s.Regex)
	require.Len(t, s.Issues, 1)
	assert.Equal(t, 2, s.Issues[0].RuleID)
	assert.Equal(t, rule.UnknownType, s.Issues[0].Kind)

	s = Reduce(s, ChangeRule{Identifier: 2, Type: rule.Digit, RepeatMin: Bound("x")})
	require.Len(t, s.Issues, 1)
	assert.Equal(t, rule.InvalidRepeat, s.Issues[0].Kind)
	assertDerived(t, s)
}

func TestLookupMissesAreNoOps(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{"remove rule", RemoveRule{Identifier: 99}},
		{"change rule", ChangeRule{Identifier: 99, Type: rule.Word}},
		{"remove test", RemoveTest{Identifier: 99}},
		{"change test", ChangeTest{Identifier: 99, Subject: "x"}},
		{"option", OptionChange{Name: "sticky"}},
		{"unknown", Unknown{Name: "REGEX_BUILDER_UNDO"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixture(t)
			assert.Equal(t, s, Reduce(s, tt.action))
		})
	}
}

func TestOptionToggle(t *testing.T) {
	s := fixture(t)

	once := Reduce(s, OptionChange{Name: rule.OptionInsensitive})
	o, ok := once.Option(rule.OptionInsensitive)
	require.True(t, ok)
	assert.True(t, o.Active)
	assert.Equal(t, `/id-\d{2,4}/i`, once.Regex)
	assert.True(t, once.Tester.Tests[1].Match, "ID-42 matches case-insensitively")

	twice := Reduce(once, OptionChange{Name: rule.OptionInsensitive})
	assert.Equal(t, s, twice)
}

func TestFlagsFollowOptionOrder(t *testing.T) {
	s := Default()
	s = Reduce(s, OptionChange{Name: rule.OptionMultiline})
	s = Reduce(s, OptionChange{Name: rule.OptionGlobal})

	assert.Equal(t, "/(?:)/gm", s.Regex)
}

func TestResetRules(t *testing.T) {
	s := Reduce(fixture(t), OptionChange{Name: rule.OptionInsensitive})

	s = Reduce(s, ResetRules{})

	assert.Empty(t, s.Builder.Rules)
	for _, o := range s.Builder.Options {
		assert.False(t, o.Active, o.Name)
	}
	assert.Equal(t, "/(?:)/", s.Regex)
	assert.Len(t, s.Tester.Tests, 3, "tests survive a rule reset")
	for _, test := range s.Tester.Tests {
		assert.True(t, test.Match, "empty pattern matches %q", test.Subject)
	}
}

func TestTests(t *testing.T) {
	s := fixture(t)

	s = Reduce(s, AddTest{})
	test, ok := s.Test(4)
	require.True(t, ok)
	assert.Equal(t, "", test.Subject)
	assert.True(t, test.MustMatch)
	assert.False(t, test.Match)

	s = Reduce(s, ChangeTest{Identifier: 4, Subject: "see id-123", MustMatch: true})
	test, _ = s.Test(4)
	assert.True(t, test.Match)

	s = Reduce(s, RemoveTest{Identifier: 4})
	_, ok = s.Test(4)
	assert.False(t, ok)

	s = Reduce(s, AddTest{})
	_, ok = s.Test(5)
	assert.True(t, ok, "test identifiers are not reused")

	s = Reduce(s, ResetTests{})
	assert.Empty(t, s.Tester.Tests)
	assert.NotNil(t, s.Tester.Tests)
	assert.Len(t, s.Builder.Rules, 2, "rules survive a test reset")
}

func TestFailing(t *testing.T) {
	s := Reduce(fixture(t), ChangeTest{Identifier: 3, Subject: "id-4", MustMatch: true})

	failing := s.Failing()
	require.Len(t, failing, 1)
	assert.Equal(t, 3, failing[0].Identifier)
}

func TestLoad(t *testing.T) {
	s := fixture(t)

	assert.Equal(t, 2, s.Builder.NextIdentifier)
	assert.Equal(t, 3, s.Tester.NextIdentifier)

	s = Reduce(s, AddRule{})
	_, ok := s.Rule(3)
	assert.True(t, ok)
}

func TestLoadEmpty(t *testing.T) {
	s := Reduce(fixture(t), Load{Options: rule.DefaultOptions()})

	assert.Empty(t, s.Builder.Rules)
	assert.NotNil(t, s.Builder.Rules)
	assert.Empty(t, s.Tester.Tests)
	assert.NotNil(t, s.Tester.Tests)
	assert.Equal(t, "/(?:)/", s.Regex)
}

func TestLoadRejected(t *testing.T) {
	rules := []rule.Rule{{Identifier: 1, Type: rule.Word}, {Identifier: 2, Type: rule.Digit}}

	tests := []struct {
		name string
		load Load
	}{
		{"no options", Load{Rules: rules, NextIdentifier: 2}},
		{"option value too long", Load{Options: []rule.Option{
			{Name: rule.OptionGlobal, Value: "gg"},
			{Name: rule.OptionInsensitive, Value: "i"},
			{Name: rule.OptionMultiline, Value: "m"},
		}, NextIdentifier: 0}},
		{"duplicate option names", Load{Options: []rule.Option{
			{Name: rule.OptionGlobal, Value: "g"},
			{Name: rule.OptionGlobal, Value: "i"},
			{Name: rule.OptionMultiline, Value: "m"},
		}}},
		{"duplicate rule ids", Load{Options: rule.DefaultOptions(), Rules: []rule.Rule{
			{Identifier: 1, Type: rule.Word}, {Identifier: 1, Type: rule.Digit},
		}, NextIdentifier: 1}},
		{"counter below rule id", Load{Options: rule.DefaultOptions(), Rules: rules, NextIdentifier: 1}},
		{"zero rule id", Load{Options: rule.DefaultOptions(), Rules: []rule.Rule{{Type: rule.Word}}, NextIdentifier: 1}},
		{"negative counter", Load{Options: rule.DefaultOptions(), NextIdentifier: -1}},
		{"duplicate test ids", Load{Options: rule.DefaultOptions(), Tests: []Test{
			{Identifier: 1, Subject: "a"}, {Identifier: 1, Subject: "b"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixture(t)
			assert.Equal(t, s, Reduce(s, tt.load))
			assert.Error(t, Validate(tt.load))
		})
	}
}

func TestLoadKeepsOptionSet(t *testing.T) {
	renamed := rule.DefaultOptions()
	renamed[0].Name = "sticky"
	load := Load{Options: renamed, Rules: []rule.Rule{{Identifier: 1, Type: rule.Word}}, NextIdentifier: 1}

	s := fixture(t)
	require.NoError(t, Validate(load))
	assert.Equal(t, s, Reduce(s, load))
}

func TestMalformedActionsAreNoOps(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{"change rule without id", ChangeRule{Type: rule.Word}},
		{"change rule without type", ChangeRule{Identifier: 1}},
		{"remove rule without id", RemoveRule{}},
		{"option without name", OptionChange{}},
		{"change test without id", ChangeTest{Subject: "x"}},
		{"remove test with negative id", RemoveTest{Identifier: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixture(t)
			assert.Equal(t, s, Reduce(s, tt.action))
			assert.Error(t, Validate(tt.action))
		})
	}
}

func TestMalformedActionIsLogged(t *testing.T) {
	var buf bytes.Buffer
	r := NewReducer(
		rule.NewCompiler(engine.MustNew(engine.DefaultConfig()), zerolog.Nop()),
		zerolog.New(&buf).Level(zerolog.WarnLevel),
	)

	_ = r.Reduce(Default(), RemoveRule{})

	assert.Contains(t, buf.String(), "ignoring malformed action")
	assert.Contains(t, buf.String(), TypeRemoveRule)
}

func TestZeroStateIsInitial(t *testing.T) {
	s := Reduce(AppState{}, AddRule{})

	assert.Equal(t, rule.DefaultOptions(), s.Builder.Options)
	require.Len(t, s.Builder.Rules, 1)
	assert.Equal(t, 1, s.Builder.Rules[0].Identifier)
	assert.Equal(t, Default(), Reduce(AppState{}, nil))
}

func TestNavigationCarriedThrough(t *testing.T) {
	s := Default()
	s.Navigation = []string{"tester"}

	for _, a := range allActions() {
		s = Reduce(s, a)
	}
	assert.Equal(t, []string{"tester"}, s.Navigation)
}

func TestReducerOnRegexp2(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Kind = engine.Regexp2
	r := NewReducer(rule.NewCompiler(engine.MustNew(cfg), zerolog.Nop()), zerolog.Nop())

	s := r.Reduce(AppState{}, AddRule{})
	s = r.Reduce(s, ChangeRule{Identifier: 1, Type: rule.Digit, RepeatMin: Bound("2")})
	s = r.Reduce(s, AddTest{})
	s = r.Reduce(s, ChangeTest{Identifier: 1, Subject: "a12", MustMatch: true})

	assert.Equal(t, `/\d{2,}/`, s.Regex)
	assert.True(t, s.Tester.Tests[0].Match)
	assert.Equal(t, s.Regex, r.Compile(s).Pattern)
}

func TestInvalidPatternMatchesNothing(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.MaxLength = 8
	r := NewReducer(rule.NewCompiler(engine.MustNew(cfg), zerolog.Nop()), zerolog.Nop())

	s := r.Reduce(Default(), Load{
		Options: rule.DefaultOptions(),
		Rules: []rule.Rule{
			{Identifier: 1, Type: rule.Pattern, Value: "ab"},
			{Identifier: 2, Type: rule.Pattern, Value: "cd"},
		},
		NextIdentifier: 2,
		Tests:          []Test{{Identifier: 1, Subject: "abcd", MustMatch: false}},
	})

	assert.Equal(t, `/(?:ab)(?:cd)/`, s.Regex)
	require.Len(t, s.Issues, 1)
	assert.Equal(t, rule.InvalidPattern, s.Issues[0].Kind)
	assert.False(t, s.Tester.Tests[0].Match)
	assert.True(t, s.Tester.Tests[0].Passing())

	// Removing a rule recovers a working matcher.
	s = r.Reduce(s, RemoveRule{Identifier: 2})
	assert.Empty(t, s.Issues)
	assert.Equal(t, `/(?:ab)/`, s.Regex)
	assert.True(t, s.Tester.Tests[0].Match)
}

func TestPointerActions(t *testing.T) {
	s := fixture(t)

	got := Reduce(s, &AddRule{})
	require.Len(t, got.Builder.Rules, 3)
	assert.Equal(t, 3, got.Builder.Rules[2].Identifier)

	got = Reduce(s, &ChangeTest{Identifier: 2, Subject: "id-42", MustMatch: true})
	assert.True(t, got.Tester.Tests[1].Passing())

	assert.Equal(t, s, Reduce(s, &RemoveRule{}))
	assert.Error(t, Validate(&RemoveRule{}))
	assert.Equal(t, TypeAddRule, KindOf(&AddRule{}))
}

func TestTypedNilActions(t *testing.T) {
	s := fixture(t)

	for _, a := range []Action{(*Load)(nil), (*AddRule)(nil), (*ChangeRule)(nil), (*Unknown)(nil)} {
		assert.NotPanics(t, func() {
			assert.Equal(t, s, Reduce(s, a))
		})
		assert.NoError(t, Validate(a))
		assert.Equal(t, "<nil>", KindOf(a))
	}
	assert.Equal(t, "<nil>", KindOf(nil))
}
