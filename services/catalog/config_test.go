package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func runConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var (
		cfg *Config
		err error
	)
	app := cli.NewApp()
	app.Flags = RegisterFlags(nil)
	app.Action = func(c *cli.Context) error {
		cfg, err = NewConfig(c)
		return nil
	}
	require.NoError(t, app.Run(append([]string{"test"}, args...)))
	return cfg, err
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := runConfig(t)
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, cfg.Mode)
	assert.True(t, cfg.SubmitOnEnter)
	assert.True(t, cfg.LiveSearch)
	assert.Empty(t, cfg.RecommendedIndex)
}

func TestNewConfig_Local(t *testing.T) {
	cfg, err := runConfig(t,
		"--catalog-mode", "local",
		"--catalog-submit-on-enter=false",
		"--catalog-recommended-index", "2",
		"--catalog-recommended-index", "4",
	)
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, cfg.Mode)
	assert.False(t, cfg.SubmitOnEnter)
	assert.True(t, cfg.LiveSearch)
	assert.Equal(t, []int{2, 4}, cfg.RecommendedIndex)
}

func TestNewConfig_WrongMode(t *testing.T) {
	_, err := runConfig(t, "--catalog-mode", "hybrid")
	assert.Error(t, err)
}

func TestNewConfig_ModeAlias(t *testing.T) {
	cfg, err := runConfig(t, "--mode", "local")
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, cfg.Mode)
}
