package engine

import (
	"fmt"
	"time"
)

// Config configures engine selection and matcher memoization.
type Config struct {
	// Kind selects the backend used to run compiled patterns.
	//
	// Default: Coregex
	Kind Kind

	// MatchTimeout bounds a single search on backends that support it
	// (regexp2). Zero disables the bound.
	//
	// Default: 100ms
	MatchTimeout time.Duration

	// CacheTTL is how long a compiled matcher is kept for reuse.
	// Zero disables the cache.
	//
	// Default: 5 minutes
	CacheTTL time.Duration

	// CacheCleanup is the interval between purges of expired entries.
	//
	// Default: 10 minutes
	CacheCleanup time.Duration

	// MaxLength is the longest expression, inline flags included, the
	// engine compiles. Longer expressions fail with a TooLong error.
	// Zero disables the limit.
	//
	// Default: 0
	MaxLength int
}

// DefaultConfig returns a configuration with sensible defaults.
//
// The reducer recompiles on every action, and most actions leave the
// pattern unchanged, so caching is on by default.
func DefaultConfig() Config {
	return Config{
		Kind:         Coregex,
		MatchTimeout: 100 * time.Millisecond,
		CacheTTL:     5 * time.Minute,
		CacheCleanup: 10 * time.Minute,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Kind.Valid() {
		return &Error{
			Kind:    UnknownEngine,
			Message: fmt.Sprintf("unknown engine %q", c.Kind),
			Cause:   ErrInvalidConfig,
		}
	}
	if c.MatchTimeout < 0 {
		return &Error{
			Kind:    InvalidConfig,
			Message: "MatchTimeout must be >= 0",
		}
	}
	if c.MaxLength < 0 {
		return &Error{
			Kind:    InvalidConfig,
			Message: "MaxLength must be >= 0",
		}
	}
	if c.CacheTTL < 0 {
		return &Error{
			Kind:    InvalidConfig,
			Message: "CacheTTL must be >= 0",
		}
	}
	if c.CacheTTL > 0 && c.CacheCleanup <= 0 {
		return &Error{
			Kind:    InvalidConfig,
			Message: "CacheCleanup must be > 0 when caching is enabled",
		}
	}
	return nil
}
