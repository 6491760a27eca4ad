package rule

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// MissingLiterals returns the identifiers of mandatory literal rules whose
// value does not occur anywhere in subject.
//
// Rules are concatenated, so a subject lacking a mandatory literal can never
// match. This explains a failed test without re-running the engine. A
// literal is mandatory when its minimum repeat is at least one; rules with
// issues are skipped. Matching folds case when the i option is active.
func MissingLiterals(rules []Rule, options []Option, subject string) []int {
	_, flags := collectFlags(options)
	fold := func(s string) string { return s }
	if flags.IgnoreCase {
		fold = strings.ToLower
	}

	var (
		ids    []int
		values []string
	)
	for _, r := range rules {
		if r.Type != Literal || r.Value == "" || !mandatory(r) {
			continue
		}
		ids = append(ids, r.Identifier)
		values = append(values, fold(r.Value))
	}
	if len(ids) == 0 {
		return nil
	}

	haystack := []byte(fold(subject))
	found := scanLiterals(values, haystack)

	var missing []int
	for i, id := range ids {
		if found[values[i]] {
			continue
		}
		// Overlapping literals sharing a start position are reported once
		// by the automaton, so confirm before calling one missing.
		if strings.Contains(string(haystack), values[i]) {
			continue
		}
		missing = append(missing, id)
	}
	return missing
}

// mandatory reports whether r must occur at least once for a match.
func mandatory(r Rule) bool {
	if checkType(r) != nil {
		return false
	}
	if _, issue := quantifier(r); issue != nil {
		return false
	}
	if r.RepeatMin == "" {
		return r.RepeatMax == ""
	}
	n, err := parseBound(r.RepeatMin, "minimum")
	return err == nil && n > 0
}

// scanLiterals returns the set of values seen in haystack.
func scanLiterals(values []string, haystack []byte) map[string]bool {
	found := make(map[string]bool, len(values))

	builder := ahocorasick.NewBuilder()
	for _, v := range values {
		builder.AddPattern([]byte(v))
	}
	auto, err := builder.Build()
	if err != nil {
		return found
	}

	for at := 0; at < len(haystack); {
		m := auto.Find(haystack, at)
		if m == nil {
			break
		}
		found[string(haystack[m.Start:m.End])] = true
		at = m.Start + 1
	}
	return found
}
