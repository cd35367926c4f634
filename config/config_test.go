package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jscompat/blockscope/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := config.Load()
	require.NoError(t, err)

	assert.False(t, c.NameBlocks)
	assert.True(t, c.CollectUndeclared)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("BLOCKSCOPE_NAME_BLOCKS", "true")
	t.Setenv("BLOCKSCOPE_COLLECT_UNDECLARED", "false")
	t.Setenv("BLOCKSCOPE_LOG_LEVEL", "debug")

	c, err := config.Load()
	require.NoError(t, err)

	assert.True(t, c.NameBlocks)
	assert.False(t, c.CollectUndeclared)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadRejectsUnparsableBool(t *testing.T) {
	t.Setenv("BLOCKSCOPE_NAME_BLOCKS", "not-a-bool")

	_, err := config.Load()
	require.Error(t, err)
}
