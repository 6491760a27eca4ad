package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/regexbuilder/scenario"
)

func newReplayCmd(a *app) *cobra.Command {
	var snapshot bool

	cmd := &cobra.Command{
		Use:   "replay file.yaml...",
		Short: "Replay scenario files and check their expectations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st := newStyles(out)

			failed := 0
			for _, path := range args {
				sc, err := scenario.ReadFile(path)
				if err != nil {
					return err
				}
				res, err := sc.Replay(a.reducer, a.start())
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				name := sc.Name
				if name == "" {
					name = path
				}
				fmt.Fprintf(out, "%s %s %s\n", verdict(st, res.Passed()), name, st.pattern.Render(res.State.Regex))
				for _, f := range res.Failures {
					fmt.Fprintf(out, "     %s\n", st.fail.Render(f))
				}
				if !res.Passed() {
					failed++
				}
				if snapshot {
					if err := scenario.EncodeSnapshot(out, res.State); err != nil {
						return err
					}
				}
				a.logger.Debug().Str("scenario", name).Int("failures", len(res.Failures)).Msg("replayed")
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Print the final state of each scenario as YAML")
	return cmd
}
