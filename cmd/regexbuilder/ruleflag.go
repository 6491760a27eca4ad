package main

import (
	"fmt"
	"strings"

	"github.com/coregx/coregex"

	"github.com/coregx/regexbuilder/rule"
	"github.com/coregx/regexbuilder/state"
)

var (
	ruleTypeName = coregex.MustCompile(`^[a-z]+$`)
	ruleBounds   = coregex.MustCompile(`^\{(\d*),(\d*)\}$`)
)

// parseRuleFlag turns a --rule flag of the form type[=value][{min,max}] into
// the ChangeRule for rule id. A trailing {min,max} is always taken as repeat
// bounds; {n} without a comma stays part of the value.
func parseRuleFlag(id int, arg string) (state.ChangeRule, error) {
	head, bounds := arg, []string(nil)
	if i := strings.LastIndexByte(arg, '{'); i >= 0 {
		if m := ruleBounds.FindStringSubmatch(arg[i:]); m != nil {
			head, bounds = arg[:i], m[1:]
		}
	}

	name, value, _ := strings.Cut(head, "=")
	if !ruleTypeName.MatchString(name) {
		return state.ChangeRule{}, fmt.Errorf("rule %q: want type[=value][{min,max}]", arg)
	}
	typ := rule.Type(name)
	if !typ.Valid() {
		return state.ChangeRule{}, fmt.Errorf("rule %q: unknown type %q", arg, name)
	}

	cr := state.ChangeRule{Identifier: id, Type: typ, Value: value}
	if bounds != nil && (bounds[0] != "" || bounds[1] != "") {
		cr.RepeatMin = state.Bound(bounds[0])
		cr.RepeatMax = state.Bound(bounds[1])
	}
	return cr, nil
}
