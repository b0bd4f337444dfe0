package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonMell/redblack/internal/config"
)

func load(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	v := config.NewViper()
	cmd := &cobra.Command{Use: "test"}
	require.NoError(t, config.Bind(cmd, v))
	require.NoError(t, cmd.PersistentFlags().Parse(args))
	return config.Load(v)
}

func TestLoadDefaults(t *testing.T) {
	c, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), c)
	assert.Equal(t, logrus.InfoLevel, c.Level())
}

func TestLoadFlags(t *testing.T) {
	c, err := load(t, "--log-level=debug", "--interval=250ms", "--verify=false", "--render-steps", "--ansi")
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, c.Level())
	assert.Equal(t, 250*time.Millisecond, c.Interval)
	assert.False(t, c.Verify)
	assert.True(t, c.Render)
	assert.True(t, c.RenderSteps)
	assert.True(t, c.ANSI)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("RBTREE_LOG_LEVEL", "warn")
	t.Setenv("RBTREE_RENDER", "false")

	c, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.LogLevel)
	assert.False(t, c.Render)

	// flags win over the environment
	c, err = load(t, "--log-level=error")
	require.NoError(t, err)
	assert.Equal(t, "error", c.LogLevel)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rbtree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log-level: trace\ninterval: 1s\nansi: true\n"), 0o600))

	c, err := load(t, "--config="+path)
	require.NoError(t, err)
	assert.Equal(t, logrus.TraceLevel, c.Level())
	assert.Equal(t, time.Second, c.Interval)
	assert.True(t, c.ANSI)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := load(t, "--config="+filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.Config)
	}{
		{"BadLevel", func(c *config.Config) { c.LogLevel = "loud" }},
		{"NegativeInterval", func(c *config.Config) { c.Interval = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.DefaultConfig()
			tt.modify(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Equal(t, config.ErrInvalidConfig, errors.Cause(err))
		})
	}

	_, err := load(t, "--log-level=loud")
	assert.Equal(t, config.ErrInvalidConfig, errors.Cause(err))
}
