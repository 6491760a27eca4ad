// Package regexbuilder assembles regular expressions from an ordered list of
// rules and checks them against sample subjects.
//
// The work is split across three packages:
//   - rule compiles rules and options into a pattern and a matcher
//   - state holds the builder/tester snapshot and the pure reducer
//   - preset provides ready-made URL and email validation states
//
// Store ties them together for a host that receives actions one at a time,
// such as a UI event loop or a command line driver.
//
// Basic usage:
//
//	st := regexbuilder.New()
//	st.Dispatch(preset.LoadURLValidation())
//	st.Dispatch(state.ChangeTest{Identifier: 1, Subject: "https://go.dev", MustMatch: true})
//
//	s := st.State()
//	fmt.Println(s.Regex)               // /^https{0,1}:\/\/.../i
//	fmt.Println(s.Tester.Tests[0].Match) // true
//
// Field-map actions, as produced by a presentation layer, are decoded first:
//
//	s, err := st.DispatchFields(map[string]any{
//	    "type":        "REGEX_BUILDER_OPTION_CHANGE",
//	    "option_name": "insensitive",
//	})
package regexbuilder

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/coregx/regexbuilder/engine"
	"github.com/coregx/regexbuilder/rule"
	"github.com/coregx/regexbuilder/state"
)

// Store holds the latest snapshot and applies actions to it one at a time.
//
// A Store is safe for concurrent use. Dispatch calls are serialized; each
// one reduces the snapshot left by the previous call.
type Store struct {
	mu      sync.Mutex
	reducer *state.Reducer
	state   state.AppState
	logger  zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithReducer sets the reducer, and with it the matcher backend.
func WithReducer(r *state.Reducer) Option {
	return func(s *Store) {
		s.reducer = r
	}
}

// WithEngine builds the reducer on e.
func WithEngine(e *engine.Engine) Option {
	return func(s *Store) {
		s.reducer = state.NewReducer(rule.NewCompiler(e, s.logger), s.logger)
	}
}

// WithLogger sets the logger. Options are applied in order, so WithLogger
// must precede WithEngine for the reducer to log through it.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithState sets the initial snapshot. Its derived fields are recomputed.
func WithState(st state.AppState) Option {
	return func(s *Store) {
		s.state = st
	}
}

// WithDefaultType sets the type given to newly added rules.
func WithDefaultType(t rule.Type) Option {
	return func(s *Store) {
		s.state.Builder.DefaultType = t
	}
}

// New creates a Store holding the default snapshot.
func New(opts ...Option) *Store {
	s := &Store{
		state:  state.Default(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reducer == nil {
		s.reducer = state.NewReducer(
			rule.NewCompiler(engine.MustNew(engine.DefaultConfig()), s.logger),
			s.logger,
		)
	}
	s.state = s.reducer.Reduce(s.state, nil)
	return s
}

// State returns the current snapshot. Snapshots are shared; callers must
// not modify their slices.
func (s *Store) State() state.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces the current snapshot with a and returns the result.
func (s *Store) Dispatch(a state.Action) state.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug().Str("action", state.KindOf(a)).Msg("dispatch")
	s.state = s.reducer.Reduce(s.state, a)
	return s.state
}

// DispatchFields decodes fields into an action and dispatches it. An action
// that cannot be decoded is not dispatched, and the current snapshot is
// returned with the error.
func (s *Store) DispatchFields(fields map[string]any) (state.AppState, error) {
	a, err := state.DecodeAction(fields)
	if err != nil {
		s.logger.Warn().Err(err).Msg("dropping undecodable action")
		return s.State(), err
	}
	return s.Dispatch(a), nil
}

// Compile compiles the rules of the current snapshot.
func (s *Store) Compile() rule.Compiled {
	st := s.State()
	return s.reducer.Compile(st)
}
