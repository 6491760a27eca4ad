package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coregx/regexbuilder"
	"github.com/coregx/regexbuilder/engine"
	"github.com/coregx/regexbuilder/internal/config"
	"github.com/coregx/regexbuilder/internal/logging"
	"github.com/coregx/regexbuilder/internal/version"
	"github.com/coregx/regexbuilder/rule"
	"github.com/coregx/regexbuilder/state"
)

// app is the per-invocation environment shared by every subcommand.
type app struct {
	cfg     *config.Config
	engine  *engine.Engine
	reducer *state.Reducer
	logger  zerolog.Logger
}

// start returns the empty snapshot new sessions begin from.
func (a *app) start() state.AppState {
	s := state.Default()
	s.Builder.DefaultType = a.cfg.DefaultType()
	return a.reducer.Reduce(s, nil)
}

func (a *app) newStore() *regexbuilder.Store {
	return regexbuilder.New(
		regexbuilder.WithLogger(a.logger),
		regexbuilder.WithReducer(a.reducer),
		regexbuilder.WithState(a.start()),
	)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configPath string
		engineName string
	)
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "regexbuilder",
		Short: "Build regular expressions from rules and test them",
		Long: `regexbuilder assembles a regular expression from an ordered list of rules
and options, and checks it against sample subjects.

Rules are given as type[=value][{min,max}], for example:

  regexbuilder test --rule literal=id- --rule 'digit{2,4}' id-42 id-4`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbosity = verbosity
			}
			if engineName != "" {
				cfg.Engine.Kind = engineName
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logging.SetupLogger(cfg.Log.Verbosity, cfg.Log.File)

			e, err := engine.New(cfg.EngineConfig())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.engine = e
			a.logger = logging.GetLogger("regexbuilder")
			a.reducer = state.NewReducer(rule.NewCompiler(e, logging.GetLogger("rule")), logging.GetLogger("state"))

			log.Debug().Str("command", cmd.Name()).Str("engine", cfg.Engine.Kind).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "Matcher backend: coregex or regexp2")

	rootCmd.AddCommand(
		newPresetsCmd(a),
		newTestCmd(a),
		newReplayCmd(a),
		newExportCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}
