package rule

import "fmt"

// IssueKind classifies why a rule did not contribute as written.
type IssueKind uint8

const (
	// UnknownType indicates the rule type is not one of Types()
	UnknownType IssueKind = iota

	// InvalidRepeat indicates a malformed repeat bound or min > max
	InvalidRepeat

	// IgnoredRepeat indicates bounds were set on a rule that cannot repeat
	// (an anchor or an empty fragment); the fragment renders unquantified
	IgnoredRepeat

	// InvalidFragment indicates the engine rejected the rule's fragment
	InvalidFragment

	// InvalidPattern indicates the concatenated pattern could not be
	// compiled even though every fragment could
	InvalidPattern
)

// String returns a human-readable issue kind name
func (k IssueKind) String() string {
	switch k {
	case UnknownType:
		return "UnknownType"
	case InvalidRepeat:
		return "InvalidRepeat"
	case IgnoredRepeat:
		return "IgnoredRepeat"
	case InvalidFragment:
		return "InvalidFragment"
	case InvalidPattern:
		return "InvalidPattern"
	default:
		return fmt.Sprintf("UnknownIssueKind(%d)", k)
	}
}

// Issue reports a rule that was degraded during compilation.
// RuleID is zero for issues that concern the whole pattern.
type Issue struct {
	RuleID  int       `yaml:"rule_id"`
	Kind    IssueKind `yaml:"kind"`
	Message string    `yaml:"message"`
	Cause   error     `yaml:"-"`
}

// Error implements the error interface
func (i Issue) Error() string {
	prefix := "pattern"
	if i.RuleID != 0 {
		prefix = fmt.Sprintf("rule %d", i.RuleID)
	}
	if i.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, i.Message, i.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, i.Message)
}

// Unwrap returns the underlying cause
func (i Issue) Unwrap() error {
	return i.Cause
}

// MarshalText writes the kind by name.
func (k IssueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText reads a kind written by MarshalText.
func (k *IssueKind) UnmarshalText(text []byte) error {
	for kind := UnknownType; kind <= InvalidPattern; kind++ {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown issue kind %q", text)
}
