// Package rule compiles an ordered list of builder rules and a set of
// options into a single search pattern.
//
// Each rule renders to one fragment. Fragments are concatenated in rule order
// with no separator and no alternation across rules, so the compiled pattern
// is always a linear sequence:
//
//	rules := []rule.Rule{
//	    {Identifier: 1, Type: rule.Literal, Value: "id-"},
//	    {Identifier: 2, Type: rule.Digit, RepeatMin: "2", RepeatMax: "4"},
//	}
//	c := rule.Compile(rules, rule.DefaultOptions())
//	c.Pattern              // "/id-\d{2,4}/"
//	c.MatchString("id-42") // true
//
// Compilation never fails as a whole. A rule that cannot be rendered is
// reduced to an empty fragment and reported as an Issue, so every other rule
// still contributes to the pattern.
package rule

// Type selects how a rule renders.
type Type string

const (
	Word       Type = "word"       // \w
	Any        Type = "any"        // .
	Digit      Type = "digit"      // \d
	Whitespace Type = "whitespace" // \s
	Literal    Type = "literal"    // value, escaped
	Range      Type = "range"      // [value]
	Excluded   Type = "excluded"   // [^value]
	Start      Type = "start"      // ^
	End        Type = "end"        // $
	Pattern    Type = "pattern"    // value, verbatim
)

// DefaultType is assigned to newly added rules.
const DefaultType = Literal

// Types returns every rule type in display order.
func Types() []Type {
	return []Type{Word, Any, Digit, Whitespace, Literal, Range, Excluded, Start, End, Pattern}
}

// Valid reports whether t is a known rule type.
func (t Type) Valid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// Rule is one step of the pattern.
//
// Type and repeat bounds are kept as the user entered them; they are
// checked at compile time, where a bad value degrades only this rule.
type Rule struct {
	Identifier int    `yaml:"identifier" mapstructure:"identifier" validate:"gt=0"`
	Type       Type   `yaml:"type" mapstructure:"type"`
	Value      string `yaml:"value" mapstructure:"value"`
	RepeatMin  string `yaml:"repeat_min,omitempty" mapstructure:"repeat_min"`
	RepeatMax  string `yaml:"repeat_max,omitempty" mapstructure:"repeat_max"`
}

// Option is a pattern-wide flag such as case-insensitive matching.
type Option struct {
	Name   string `yaml:"name" mapstructure:"name" validate:"required"`
	Value  string `yaml:"value" mapstructure:"value" validate:"required,len=1"`
	Active bool   `yaml:"active" mapstructure:"active"`
}

// Option names of DefaultOptions.
const (
	OptionGlobal      = "global"
	OptionInsensitive = "insensitive"
	OptionMultiline   = "multiline"
)

// DefaultOptions returns the fixed option set, all inactive.
func DefaultOptions() []Option {
	return []Option{
		{Name: OptionGlobal, Value: "g"},
		{Name: OptionInsensitive, Value: "i"},
		{Name: OptionMultiline, Value: "m"},
	}
}
