package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/regexbuilder/export"
	"github.com/coregx/regexbuilder/preset"
	"github.com/coregx/regexbuilder/scenario"
	"github.com/coregx/regexbuilder/state"
)

type exportOptions struct {
	preset   string
	scenario string
	format   string
	output   string
	gen      export.Options
	target   string
}

func newExportCmd(a *app) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a preset or replayed scenario as Go source or YAML",
		Example: `  regexbuilder export --preset url --package validate --name URL -O url.go
  regexbuilder export --scenario session.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.gen.Reducer = a.reducer
			s, err := exportState(a, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.output != "" {
				f, err := os.Create(opts.output)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			return writeExport(w, s, opts)
		},
	}

	cmd.Flags().StringVar(&opts.preset, "preset", "", "Preset to export ("+presetNames()+")")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "Scenario file to replay and export")
	cmd.Flags().StringVar(&opts.format, "format", "go", "Output format: go or yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "O", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&opts.gen.Package, "package", "patterns", "Package name of the generated file")
	cmd.Flags().StringVar(&opts.gen.Name, "name", "Pattern", "Exported name of the compiled pattern")
	cmd.Flags().StringVar(&opts.target, "target", string(export.TargetCoregex), "Regex package used by the generated code: coregex, regexp or regexp2")
	cmd.MarkFlagsMutuallyExclusive("preset", "scenario")
	return cmd
}

// exportState builds the snapshot to export from a preset or a scenario.
func exportState(a *app, opts exportOptions) (state.AppState, error) {
	if opts.scenario != "" {
		sc, err := scenario.ReadFile(opts.scenario)
		if err != nil {
			return state.AppState{}, err
		}
		res, err := sc.Replay(a.reducer, a.start())
		if err != nil {
			return state.AppState{}, fmt.Errorf("%s: %w", opts.scenario, err)
		}
		return res.State, nil
	}

	name := opts.preset
	if name == "" {
		name = a.cfg.Builder.Preset
	}
	if name == "" {
		return state.AppState{}, fmt.Errorf("one of --preset or --scenario is required")
	}
	b, ok := preset.Lookup(name)
	if !ok {
		return state.AppState{}, fmt.Errorf("unknown preset %q (have %s)", name, presetNames())
	}
	return a.reducer.Reduce(a.start(), preset.LoadAction(b)), nil
}

func writeExport(w io.Writer, s state.AppState, opts exportOptions) error {
	switch opts.format {
	case "go":
		gen := opts.gen
		gen.Target = export.Target(opts.target)
		return export.Generate(w, s, gen)
	case "yaml":
		return scenario.EncodeSnapshot(w, s)
	default:
		return fmt.Errorf("unknown format %q (want go or yaml)", opts.format)
	}
}
