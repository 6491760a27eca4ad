// Package config loads the command line configuration.
//
// Layers are applied in order, later ones overriding earlier ones:
//
//  1. built-in defaults
//  2. a TOML file, when a path is given
//  3. REGEXBUILDER_* environment variables
//
// Environment keys map onto the first level of sections only, so
// REGEXBUILDER_ENGINE_MATCH_TIMEOUT sets engine.match_timeout.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/coregx/regexbuilder/engine"
	"github.com/coregx/regexbuilder/rule"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "REGEXBUILDER_"

// Config is the command line configuration.
type Config struct {
	Engine  EngineConfig  `koanf:"engine"`
	Builder BuilderConfig `koanf:"builder"`
	Log     LogConfig     `koanf:"log"`
}

// EngineConfig selects and tunes the matcher backend.
type EngineConfig struct {
	Kind         string        `koanf:"kind" validate:"oneof=coregex regexp2"`
	MatchTimeout time.Duration `koanf:"match_timeout" validate:"gte=0"`
	CacheTTL     time.Duration `koanf:"cache_ttl" validate:"gte=0"`
	CacheCleanup time.Duration `koanf:"cache_cleanup" validate:"gte=0"`
	MaxLength    int           `koanf:"max_length" validate:"gte=0"`
}

// BuilderConfig holds defaults for new builder states.
type BuilderConfig struct {
	DefaultType string `koanf:"default_type" validate:"ruletype"`
	Preset      string `koanf:"preset"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Verbosity int    `koanf:"verbosity" validate:"gte=0"`
	File      string `koanf:"file"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("ruletype", func(fl validator.FieldLevel) bool {
		return rule.Type(fl.Field().String()).Valid()
	})
}

func defaults() map[string]any {
	e := engine.DefaultConfig()
	return map[string]any{
		"engine.kind":          string(e.Kind),
		"engine.match_timeout": e.MatchTimeout.String(),
		"engine.cache_ttl":     e.CacheTTL.String(),
		"engine.cache_cleanup": e.CacheCleanup.String(),
		"engine.max_length":    e.MaxLength,
		"builder.default_type": string(rule.DefaultType),
		"builder.preset":       "",
		"log.verbosity":        0,
		"log.file":             "",
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := load("", false)
	if err != nil {
		panic("config: defaults do not load: " + err.Error())
	}
	return cfg
}

// Load reads the configuration. path may be empty; a non-empty path must
// name a readable TOML file.
func Load(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, withEnv bool) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if withEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load env vars: %w", err)
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EngineConfig converts the engine section into an engine.Config.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Kind:         engine.Kind(c.Engine.Kind),
		MatchTimeout: c.Engine.MatchTimeout,
		CacheTTL:     c.Engine.CacheTTL,
		CacheCleanup: c.Engine.CacheCleanup,
		MaxLength:    c.Engine.MaxLength,
	}
}

// DefaultType returns the rule type for new rules.
func (c *Config) DefaultType() rule.Type {
	return rule.Type(c.Builder.DefaultType)
}
