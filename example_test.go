package regexbuilder_test

import (
	"fmt"

	"github.com/coregx/regexbuilder"
	"github.com/coregx/regexbuilder/preset"
	"github.com/coregx/regexbuilder/state"
)

// ExampleStore demonstrates loading a preset and editing a test subject.
func ExampleStore() {
	st := regexbuilder.New()
	st.Dispatch(preset.LoadURLValidation())
	s := st.Dispatch(state.ChangeTest{Identifier: 1, Subject: "https://go.dev", MustMatch: true})

	fmt.Println(s.Tester.Tests[0].Match)
	fmt.Println(len(s.Failing()))
	// Output:
	// true
	// 0
}

// ExampleStore_DispatchFields demonstrates dispatching a field-map action.
func ExampleStore_DispatchFields() {
	st := regexbuilder.New()
	st.Dispatch(state.AddRule{})

	s, err := st.DispatchFields(map[string]any{
		"type":            "REGEX_BUILDER_CHANGE_RULE",
		"rule_identifier": 1,
		"rule_type":       "literal",
		"rule_value":      "a.b",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s.Regex)
	// Output:
	// /a\.b/
}
