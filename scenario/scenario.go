// Package scenario replays scripted builder sessions from YAML files.
//
// A scenario names an optional preset to start from, a list of actions in
// their field-map form and the expectations the final snapshot must meet:
//
//	name: digits
//	actions:
//	  - type: REGEX_BUILDER_ADD_RULE
//	  - type: REGEX_BUILDER_CHANGE_RULE
//	    rule_identifier: 1
//	    rule_type: digit
//	    rule_value: ""
//	    rule_repeat_min: "2"
//	  - type: REGEX_TESTER_ADD_TEST
//	  - type: REGEX_TESTER_CHANGE_TEST
//	    test_identifier: 1
//	    test_subject: "a42"
//	    test_must_match: true
//	expect:
//	  regex: /\d{2,}/
//	  matches: {1: true}
//	  all_passing: true
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/coregx/regexbuilder/preset"
	"github.com/coregx/regexbuilder/state"
)

// ErrUnknownPreset is returned when a scenario names a preset that does
// not exist.
var ErrUnknownPreset = errors.New("unknown preset")

// Scenario is one scripted session.
type Scenario struct {
	Name    string           `yaml:"name"`
	Preset  string           `yaml:"preset,omitempty"`
	Actions []map[string]any `yaml:"actions"`
	Expect  Expect           `yaml:"expect"`
}

// Expect lists the checks run against the final snapshot. Zero fields are
// not checked.
type Expect struct {
	Regex      string       `yaml:"regex,omitempty"`
	Issues     *int         `yaml:"issues,omitempty"`
	Matches    map[int]bool `yaml:"matches,omitempty"`
	AllPassing bool         `yaml:"all_passing,omitempty"`
}

// Result is the outcome of a replay.
type Result struct {
	State    state.AppState
	Failures []string
}

// Passed reports whether every expectation held.
func (r Result) Passed() bool {
	return len(r.Failures) == 0
}

// Parse decodes a scenario. Unknown top-level keys are rejected.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return sc, errors.New("empty scenario")
		}
		return sc, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return sc, nil
}

// ReadFile reads and decodes the scenario at path.
func ReadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return sc, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Replay runs sc through r, starting from start with the scenario preset
// loaded, and checks the expectations. An error means the scenario itself
// is broken; failed expectations are reported in the Result.
func (sc Scenario) Replay(r *state.Reducer, start state.AppState) (Result, error) {
	s := r.Reduce(start, nil)
	if sc.Preset != "" {
		b, ok := preset.Lookup(sc.Preset)
		if !ok {
			return Result{State: s}, fmt.Errorf("%w: %q", ErrUnknownPreset, sc.Preset)
		}
		s = r.Reduce(s, preset.LoadAction(b))
	}

	for i, fields := range sc.Actions {
		a, err := state.DecodeAction(fields)
		if err != nil {
			return Result{State: s}, fmt.Errorf("action %d: %w", i+1, err)
		}
		s = r.Reduce(s, a)
	}

	return Result{State: s, Failures: sc.Expect.Check(s)}, nil
}

// Check returns one message per expectation s does not meet.
func (e Expect) Check(s state.AppState) []string {
	var failures []string
	if e.Regex != "" && s.Regex != e.Regex {
		failures = append(failures, fmt.Sprintf("regex is %s, want %s", s.Regex, e.Regex))
	}
	if e.Issues != nil && len(s.Issues) != *e.Issues {
		failures = append(failures, fmt.Sprintf("%d issues, want %d", len(s.Issues), *e.Issues))
	}

	ids := make([]int, 0, len(e.Matches))
	for id := range e.Matches {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		t, ok := s.Test(id)
		switch {
		case !ok:
			failures = append(failures, fmt.Sprintf("test %d does not exist", id))
		case t.Match != e.Matches[id]:
			failures = append(failures, fmt.Sprintf("test %d (%q) match is %v, want %v", id, t.Subject, t.Match, e.Matches[id]))
		}
	}

	if e.AllPassing {
		for _, t := range s.Failing() {
			failures = append(failures, fmt.Sprintf("test %d (%q) is failing", t.Identifier, t.Subject))
		}
	}
	return failures
}

// EncodeSnapshot writes s as YAML.
func EncodeSnapshot(w io.Writer, s state.AppState) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return enc.Close()
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot. Derived fields
// are taken as stored; reduce the result with a nil action to refresh them.
func DecodeSnapshot(r io.Reader) (state.AppState, error) {
	var s state.AppState
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return s, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return s, nil
}
