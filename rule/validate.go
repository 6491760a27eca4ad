package rule

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/coregx/regexbuilder/internal/conv"
)

// ruleValidate is the validator instance for rule fields.
// Initialized in init() with the ruletype tag.
var ruleValidate *validator.Validate

func init() {
	ruleValidate = validator.New()
	_ = ruleValidate.RegisterValidation("ruletype", validateRuleType)
}

func validateRuleType(fl validator.FieldLevel) bool {
	return Type(fl.Field().String()).Valid()
}

// checkType reports an UnknownType issue for r, or nil.
func checkType(r Rule) *Issue {
	if err := ruleValidate.Var(string(r.Type), "required,ruletype"); err != nil {
		return &Issue{
			RuleID:  r.Identifier,
			Kind:    UnknownType,
			Message: fmt.Sprintf("unknown rule type %q", r.Type),
			Cause:   err,
		}
	}
	return nil
}

// quantifier renders the repeat bounds of r.
//
//	min and max -> {min,max}
//	min only    -> {min,}
//	max only    -> {0,max}
//	neither     -> ""
func quantifier(r Rule) (string, *Issue) {
	if r.RepeatMin == "" && r.RepeatMax == "" {
		return "", nil
	}

	lo, err := parseBound(r.RepeatMin, "minimum")
	if err != nil {
		return "", repeatIssue(r, err)
	}
	hi, err := parseBound(r.RepeatMax, "maximum")
	if err != nil {
		return "", repeatIssue(r, err)
	}

	switch {
	case r.RepeatMax == "":
		return "{" + strconv.Itoa(lo) + ",}", nil
	case lo > hi:
		return "", repeatIssue(r, fmt.Errorf("minimum %d is greater than maximum %d", lo, hi))
	default:
		return "{" + strconv.Itoa(lo) + "," + strconv.Itoa(hi) + "}", nil
	}
}

// parseBound parses one bound; an empty bound is 0.
func parseBound(s, which string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if err := ruleValidate.Var(s, "number"); err != nil {
		return 0, fmt.Errorf("%s %q: %w", which, s, conv.ErrNotNumber)
	}
	n, err := conv.ParseBound(s)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", which, s, err)
	}
	return n, nil
}

func repeatIssue(r Rule, err error) *Issue {
	return &Issue{
		RuleID:  r.Identifier,
		Kind:    InvalidRepeat,
		Message: "invalid repeat bounds",
		Cause:   err,
	}
}

// ErrNotRepeatable is the cause of IgnoredRepeat issues.
var ErrNotRepeatable = errors.New("fragment cannot be repeated")
