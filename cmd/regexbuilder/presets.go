package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/regexbuilder/preset"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st := newStyles(out)
			for _, b := range preset.All() {
				s := a.reducer.Reduce(a.start(), preset.LoadAction(b))
				fmt.Fprintf(out, "%s %s\n", st.label.Render(b.Name), b.Description)
				fmt.Fprintf(out, "%s %s\n", st.label.Render(""), st.pattern.Render(s.Regex))
				fmt.Fprintf(out, "%s %s\n", st.label.Render(""),
					st.muted.Render(fmt.Sprintf("%d rules, %d tests, %d failing",
						len(s.Builder.Rules), len(s.Tester.Tests), len(s.Failing()))))
			}
			return nil
		},
	}
}
