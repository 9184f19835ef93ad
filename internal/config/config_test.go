package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("backend_url", "https://samples.internal:9000")
	viper.Set("page_size", 50)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://samples.internal:9000", cfg.BackendURL)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, Default().RateLimit, cfg.RateLimit)
}

func TestLoadRejectsBadValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("page_size", -1)
	_, err := Load()
	assert.Error(t, err)
}
