// Package config loads the CLI configuration from an optional YAML file,
// SCHEMA_TYPER_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables overriding configuration
// keys: log.level is read from SCHEMA_TYPER_LOG_LEVEL.
const EnvPrefix = "SCHEMA_TYPER"

// Configuration keys.
const (
	KeyRootName      = "root_name"
	KeyMaxDepth      = "max_depth"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyOutputFormat  = "output.format"
	KeyOutputPackage = "output.package"
	KeyOutputDir     = "output.dir"
)

// ErrInvalidConfig is wrapped by validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the effective CLI configuration.
type Config struct {
	RootName string       `mapstructure:"root_name" yaml:"root_name"`
	MaxDepth int          `mapstructure:"max_depth" yaml:"max_depth"`
	Log      LogConfig    `mapstructure:"log" yaml:"log"`
	Output   OutputConfig `mapstructure:"output" yaml:"output"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// OutputConfig controls how registries are printed.
type OutputConfig struct {
	Format  string `mapstructure:"format" yaml:"format"`   // text, go or yaml
	Package string `mapstructure:"package" yaml:"package"` // package of generated Go source
	Dir     string `mapstructure:"dir" yaml:"dir"`         // write generated Go source here instead of stdout
}

// NewViper returns a viper instance with defaults and environment
// overrides applied, ready for flag binding.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyRootName, "Root")
	v.SetDefault(KeyMaxDepth, 64)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyOutputFormat, "text")
	v.SetDefault(KeyOutputPackage, "model")
	v.SetDefault(KeyOutputDir, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration file at path, if any, on top of the
// defaults and environment.
func Load(path string) (*Config, error) {
	return LoadViper(NewViper(), path)
}

// LoadViper reads the configuration file at path into v, if path is not
// empty, and decodes the merged settings.
func LoadViper(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	var errs []error

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if !oneOf(c.Log.Format, "text", "json") {
		errs = append(errs, fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format))
	}

	if !oneOf(c.Output.Format, "text", "go", "yaml") {
		errs = append(errs, fmt.Errorf("%w: output format %q", ErrInvalidConfig, c.Output.Format))
	}

	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth))
	}

	return errors.Join(errs...)
}

// Logger builds the slog logger the configuration describes.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Marshal serializes the configuration to YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
	}

	return level, nil
}

func oneOf(s string, values ...string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}

	return false
}
