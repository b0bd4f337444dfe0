// Package config resolves rbtree settings from flags, environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, so --log-level
// is read from RBTREE_LOG_LEVEL.
const EnvPrefix = "RBTREE"

const (
	keyConfig      = "config"
	keyLogLevel    = "log-level"
	keyInterval    = "interval"
	keyVerify      = "verify"
	keyRender      = "render"
	keyRenderSteps = "render-steps"
	keyANSI        = "ansi"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings of a replay run.
type Config struct {
	// Logging level: trace, debug, info, warn, error
	LogLevel string

	// Delay between replayed operations; zero replays without pausing
	Interval time.Duration

	// Check every red-black invariant after each operation
	Verify bool

	// Print the tree once the script has been replayed
	Render bool

	// Print the tree after every operation
	RenderSteps bool

	// Color node labels with ANSI escapes
	ANSI bool
}

// DefaultConfig returns the default settings.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Interval: 0,
		Verify:   true,
		Render:   true,
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	if c.Interval < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative interval %s", c.Interval)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// NewViper returns a viper instance reading RBTREE_* variables, with
// '.' and '-' in keys replaced by '_'.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Bind registers the persistent flags on cmd and binds them in v.
func Bind(cmd *cobra.Command, v *viper.Viper) error {
	def := DefaultConfig()
	flags := cmd.PersistentFlags()

	flags.String(keyConfig, "", "optional config file (yaml, json or toml)")
	flags.String(keyLogLevel, def.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.Duration(keyInterval, def.Interval, "delay between replayed operations")
	flags.Bool(keyVerify, def.Verify, "check red-black invariants after every operation")
	flags.Bool(keyRender, def.Render, "print the tree after the script finishes")
	flags.Bool(keyRenderSteps, def.RenderSteps, "print the tree after every operation")
	flags.Bool(keyANSI, def.ANSI, "color node labels with ANSI escapes")

	if err := v.BindPFlags(flags); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}
	return nil
}

// Load resolves the config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	if file := v.GetString(keyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", file)
		}
	}

	c := &Config{
		LogLevel:    v.GetString(keyLogLevel),
		Interval:    v.GetDuration(keyInterval),
		Verify:      v.GetBool(keyVerify),
		Render:      v.GetBool(keyRender),
		RenderSteps: v.GetBool(keyRenderSteps),
		ANSI:        v.GetBool(keyANSI),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
