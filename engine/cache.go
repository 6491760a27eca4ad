package engine

import (
	"fmt"

	"github.com/patrickmn/go-cache"
)

// Engine compiles patterns on the configured backend and memoizes the
// resulting matchers by expression. It is safe for concurrent use.
type Engine struct {
	config Config
	cache  *cache.Cache // nil when CacheTTL is zero
}

// New creates an Engine from config.
func New(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{config: config}
	if config.CacheTTL > 0 {
		e.cache = cache.New(config.CacheTTL, config.CacheCleanup)
	}
	return e, nil
}

// MustNew is like New but panics on an invalid config.
func MustNew(config Config) *Engine {
	e, err := New(config)
	if err != nil {
		panic("engine: New: " + err.Error())
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Compile compiles source with flags, reusing a cached matcher when the
// same expression was compiled before. Failures are not cached.
func (e *Engine) Compile(source string, flags Flags) (Matcher, error) {
	if n := len(flags.Prefix()) + len(source); e.config.MaxLength > 0 && n > e.config.MaxLength {
		return nil, &Error{
			Kind:    TooLong,
			Message: fmt.Sprintf("expression is %d bytes, limit is %d", n, e.config.MaxLength),
		}
	}
	if e.cache == nil {
		return compile(e.config, source, flags)
	}

	key := flags.Prefix() + source
	if m, ok := e.cache.Get(key); ok {
		return m.(Matcher), nil
	}
	m, err := compile(e.config, source, flags)
	if err != nil {
		return nil, err
	}
	e.cache.SetDefault(key, m)
	return m, nil
}

// Cached returns the number of matchers held in the cache.
func (e *Engine) Cached() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.ItemCount()
}

// Flush drops every cached matcher.
func (e *Engine) Flush() {
	if e.cache != nil {
		e.cache.Flush()
	}
}
