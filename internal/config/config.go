// Package config provides Viper-based configuration loading for the battle simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	Level string `mapstructure:"level"`
	// Format is the encoder: "json" or "console".
	Format string `mapstructure:"format"`
}

// EngineConfig holds battle core settings.
type EngineConfig struct {
	// Seed seeds the first run's random source. Zero draws a seed from the OS.
	Seed int64 `mapstructure:"seed"`
	// MaxDrainEffects bounds the effects accepted in one drain. Zero is unbounded.
	MaxDrainEffects int `mapstructure:"max_drain_effects"`
	// MaxTicks caps the number of ticks a single run may take.
	MaxTicks int `mapstructure:"max_ticks"`
}

// ContentConfig locates the YAML content tree.
type ContentConfig struct {
	Dir       string `mapstructure:"dir"`
	Encounter string `mapstructure:"encounter"`
	// Plan optionally names a YAML input plan; empty selects the auto pilot.
	Plan string `mapstructure:"plan"`
}

// ScriptingConfig holds Lua passive settings.
type ScriptingConfig struct {
	// Dir holds *.lua passive scripts. Empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit bounds each hook call. Zero selects the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// SimConfig holds batch simulation settings.
type SimConfig struct {
	Runs        int `mapstructure:"runs"`
	Parallelism int `mapstructure:"parallelism"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Sim       SimConfig       `mapstructure:"sim"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEngine(c.Engine); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}
	if err := validateSim(c.Sim); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateEngine(e EngineConfig) error {
	var errs []string
	if e.MaxDrainEffects < 0 {
		errs = append(errs, fmt.Sprintf("engine.max_drain_effects must be >= 0, got %d", e.MaxDrainEffects))
	}
	if e.MaxTicks < 1 {
		errs = append(errs, fmt.Sprintf("engine.max_ticks must be >= 1, got %d", e.MaxTicks))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.Dir == "" {
		errs = append(errs, "content.dir must not be empty")
	}
	if c.Encounter == "" {
		errs = append(errs, "content.encounter must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSim(s SimConfig) error {
	var errs []string
	if s.Runs < 1 {
		errs = append(errs, fmt.Sprintf("sim.runs must be >= 1, got %d", s.Runs))
	}
	if s.Parallelism < 1 {
		errs = append(errs, fmt.Sprintf("sim.parallelism must be >= 1, got %d", s.Parallelism))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// NewViper returns a Viper instance reading path, with BATTLE_ environment
// overrides and defaults applied. Nothing is read until ReadInConfig.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with BATTLE_ prefix
	v.SetEnvPrefix("BATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance carrying only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("engine.seed", 0)
	v.SetDefault("engine.max_drain_effects", 100000)
	v.SetDefault("engine.max_ticks", 360000)

	v.SetDefault("content.dir", "content")
	v.SetDefault("content.encounter", "")
	v.SetDefault("content.plan", "")

	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 0)

	v.SetDefault("sim.runs", 1)
	v.SetDefault("sim.parallelism", 4)
}
