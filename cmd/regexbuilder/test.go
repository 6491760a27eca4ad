package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coregx/regexbuilder"
	"github.com/coregx/regexbuilder/preset"
	"github.com/coregx/regexbuilder/rule"
	"github.com/coregx/regexbuilder/state"
)

type testOptions struct {
	preset  string
	rules   []string
	options []string
	reject  []string
	explain bool
}

func newTestCmd(a *app) *cobra.Command {
	var opts testOptions

	cmd := &cobra.Command{
		Use:   "test [flags] subject...",
		Short: "Build a pattern and run it against subjects",
		Long: `Build a pattern from an optional preset plus --rule and --option flags, then
search it in every subject. Positional subjects must match; --reject subjects
must not. The command fails when any test fails.`,
		Example: `  regexbuilder test --rule literal=id- --rule 'digit{2,4}' id-42
  regexbuilder test --preset email --reject 'a@b' john@example.com
  regexbuilder test --rule 'word{1,}' --option insensitive --explain Hello`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.preset == "" {
				opts.preset = a.cfg.Builder.Preset
			}
			store, err := buildStore(a, opts, args)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), store, opts.explain)
		},
	}

	cmd.Flags().StringVar(&opts.preset, "preset", "", "Start from a preset ("+presetNames()+")")
	cmd.Flags().StringArrayVarP(&opts.rules, "rule", "r", nil, "Append a rule: type[=value][{min,max}]")
	cmd.Flags().StringArrayVar(&opts.options, "option", nil, "Toggle an option: global, insensitive or multiline")
	cmd.Flags().StringArrayVar(&opts.reject, "reject", nil, "Subject that must not match")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "List literal rules missing from subjects that do not match")
	return cmd
}

func presetNames() string {
	return strings.Join(preset.Names(), ", ")
}

// buildStore dispatches the actions described by opts and args.
func buildStore(a *app, opts testOptions, args []string) (*regexbuilder.Store, error) {
	store := a.newStore()

	if opts.preset != "" {
		b, ok := preset.Lookup(opts.preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (have %s)", opts.preset, presetNames())
		}
		store.Dispatch(preset.LoadAction(b))
	}

	for _, arg := range opts.rules {
		s := store.Dispatch(state.AddRule{})
		change, err := parseRuleFlag(s.Builder.NextIdentifier, arg)
		if err != nil {
			return nil, err
		}
		store.Dispatch(change)
	}

	for _, name := range opts.options {
		if _, ok := store.State().Option(name); !ok {
			return nil, fmt.Errorf("unknown option %q", name)
		}
		store.Dispatch(state.OptionChange{Name: name})
	}

	addTest := func(subject string, mustMatch bool) {
		s := store.Dispatch(state.AddTest{})
		store.Dispatch(state.ChangeTest{Identifier: s.Tester.NextIdentifier, Subject: subject, MustMatch: mustMatch})
	}
	for _, subject := range args {
		addTest(subject, true)
	}
	for _, subject := range opts.reject {
		addTest(subject, false)
	}
	return store, nil
}

// report prints the pattern, its issues and every test outcome. It returns
// an error when a test fails.
func report(w io.Writer, store *regexbuilder.Store, explain bool) error {
	st := newStyles(w)
	s := store.State()

	fmt.Fprintf(w, "%s %s\n", st.label.Render("pattern"), st.pattern.Render(s.Regex))
	for _, is := range s.Issues {
		fmt.Fprintf(w, "%s %s\n", st.label.Render("issue"), st.fail.Render(is.Error()))
	}

	for _, t := range s.Tester.Tests {
		outcome := "no match"
		if t.Match {
			outcome = "match"
		}
		fmt.Fprintf(w, "%s %-8s %s\n", verdict(st, t.Passing()), outcome, strconv.Quote(t.Subject))

		if explain && !t.Match && t.MustMatch {
			missing := rule.MissingLiterals(s.Builder.Rules, s.Builder.Options, t.Subject)
			for _, id := range missing {
				r, _ := s.Rule(id)
				fmt.Fprintf(w, "     %s\n", st.muted.Render(fmt.Sprintf("rule %d literal %q does not occur", id, r.Value)))
			}
		}
	}

	failing := s.Failing()
	if len(failing) > 0 {
		ids := make([]int, 0, len(failing))
		for _, t := range failing {
			ids = append(ids, t.Identifier)
		}
		slices.Sort(ids)
		return fmt.Errorf("%d of %d tests failing: %v", len(failing), len(s.Tester.Tests), ids)
	}
	return nil
}
