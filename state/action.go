package state

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/coregx/regexbuilder/rule"
)

// Action is a closed set of state transitions. Every variant is declared in
// this package; Reducer.Reduce dispatches on them with a type switch.
type Action interface {
	// Kind returns the wire name of the action.
	Kind() string

	isAction()
}

// Wire names of the actions, as sent by the presentation layer.
const (
	TypeLoad         = "REGEX_LOADER_LOAD"
	TypeResetRules   = "REGEX_BUILDER_RESET_RULES"
	TypeOptionChange = "REGEX_BUILDER_OPTION_CHANGE"
	TypeRemoveRule   = "REGEX_BUILDER_REMOVE_RULE"
	TypeAddRule      = "REGEX_BUILDER_ADD_RULE"
	TypeChangeRule   = "REGEX_BUILDER_CHANGE_RULE"
	TypeAddTest      = "REGEX_TESTER_ADD_TEST"
	TypeRemoveTest   = "REGEX_TESTER_REMOVE_TEST"
	TypeChangeTest   = "REGEX_TESTER_CHANGE_TEST"
	TypeResetTests   = "REGEX_TESTER_RESET_TESTS"
)

// Load replaces options, rules, the rule counter and tests wholesale.
type Load struct {
	Options        []rule.Option `mapstructure:"regex_options" validate:"required,min=1,unique=Name,dive"`
	Rules          []rule.Rule   `mapstructure:"regex_rules" validate:"unique=Identifier,dive"`
	NextIdentifier int           `mapstructure:"next_identifier" validate:"gte=0"`
	Tests          []Test        `mapstructure:"regex_tests" validate:"unique=Identifier,dive"`
}

// ResetRules deactivates every option and removes every rule.
type ResetRules struct{}

// OptionChange flips the option called Name.
type OptionChange struct {
	Name string `mapstructure:"option_name" validate:"required"`
}

// RemoveRule drops the rule with Identifier.
type RemoveRule struct {
	Identifier int `mapstructure:"rule_identifier" validate:"gt=0"`
}

// AddRule appends an empty rule of the default type.
type AddRule struct{}

// ChangeRule replaces type and value of one rule. Repeat bounds are
// replaced only when supplied.
type ChangeRule struct {
	Identifier int       `mapstructure:"rule_identifier" validate:"gt=0"`
	Type       rule.Type `mapstructure:"rule_type" validate:"required"`
	Value      string    `mapstructure:"rule_value"`
	RepeatMin  *string   `mapstructure:"rule_repeat_min"`
	RepeatMax  *string   `mapstructure:"rule_repeat_max"`
}

// AddTest appends an empty test expected to match.
type AddTest struct{}

// RemoveTest drops the test with Identifier.
type RemoveTest struct {
	Identifier int `mapstructure:"test_identifier" validate:"gt=0"`
}

// ChangeTest replaces subject and expectation of one test.
type ChangeTest struct {
	Identifier int    `mapstructure:"test_identifier" validate:"gt=0"`
	Subject    string `mapstructure:"test_subject"`
	MustMatch  bool   `mapstructure:"test_must_match"`
}

// ResetTests removes every test.
type ResetTests struct{}

// Unknown is an action the reducer does not recognize. Reducing it leaves
// the data unchanged and only recomputes derived fields.
type Unknown struct {
	Name string
}

func (Load) Kind() string         { return TypeLoad }
func (ResetRules) Kind() string   { return TypeResetRules }
func (OptionChange) Kind() string { return TypeOptionChange }
func (RemoveRule) Kind() string   { return TypeRemoveRule }
func (AddRule) Kind() string      { return TypeAddRule }
func (ChangeRule) Kind() string   { return TypeChangeRule }
func (AddTest) Kind() string      { return TypeAddTest }
func (RemoveTest) Kind() string   { return TypeRemoveTest }
func (ChangeTest) Kind() string   { return TypeChangeTest }
func (ResetTests) Kind() string   { return TypeResetTests }
func (u Unknown) Kind() string    { return u.Name }

func (Load) isAction()         {}
func (ResetRules) isAction()   {}
func (OptionChange) isAction() {}
func (RemoveRule) isAction()   {}
func (AddRule) isAction()      {}
func (ChangeRule) isAction()   {}
func (AddTest) isAction()      {}
func (RemoveTest) isAction()   {}
func (ChangeTest) isAction()   {}
func (ResetTests) isAction()   {}
func (Unknown) isAction()      {}

// Bound returns a pointer to s, for the optional bounds of ChangeRule.
func Bound(s string) *string {
	return &s
}

// actionValidate is the validator instance for actions.
var actionValidate *validator.Validate

func init() {
	actionValidate = validator.New()
	actionValidate.RegisterStructValidation(validateLoad, Load{})
}

// validateLoad rejects a rule counter that would hand out an identifier
// already used by a loaded rule.
func validateLoad(sl validator.StructLevel) {
	l := sl.Current().Interface().(Load)
	for _, r := range l.Rules {
		if r.Identifier > l.NextIdentifier {
			sl.ReportError(l.NextIdentifier, "NextIdentifier", "NextIdentifier", "gtemaxid", "")
			return
		}
	}
}

// Validate checks that a carries every field its transition needs.
// A nil action is valid and means "recompute only".
func Validate(a Action) error {
	a = concrete(a)
	switch a.(type) {
	case nil, Unknown, ResetRules, AddRule, AddTest, ResetTests:
		return nil
	}
	if err := actionValidate.Struct(a); err != nil {
		return fmt.Errorf("invalid %s action: %w", a.Kind(), err)
	}
	return nil
}

// concrete returns the variant a points to, so &AddRule{} reduces like
// AddRule{}. A nil pointer yields a nil Action.
func concrete(a Action) Action {
	v := reflect.ValueOf(a)
	if v.Kind() != reflect.Pointer {
		return a
	}
	if v.IsNil() {
		return nil
	}
	return v.Elem().Interface().(Action)
}

// KindOf returns the wire name of a, or "<nil>" for a nil action or a nil
// pointer to one.
func KindOf(a Action) string {
	a = concrete(a)
	if a == nil {
		return "<nil>"
	}
	return a.Kind()
}
