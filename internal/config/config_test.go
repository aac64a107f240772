package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxlabs-org/cxlab-aptos-wallet/internal/constants"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultNodeURL, cfg.NodeURL)
	assert.Equal(t, constants.DefaultFaucetURL, cfg.FaucetURL)
	assert.Equal(t, constants.DefaultGasReserve, cfg.GasReserve)
	assert.Equal(t, constants.DefaultFaucetAmount, cfg.FaucetAmount)
	assert.Equal(t, 1, cfg.DiscoveryConcurrency)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CXLAB_NODE_URL", "http://localhost:8080")
	t.Setenv("CXLAB_GAS_RESERVE", "150")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.NodeURL)
	assert.Equal(t, "150", cfg.GasReserve)
}

func TestLoad_RejectsBadConcurrency(t *testing.T) {
	t.Setenv("CXLAB_DISCOVERY_CONCURRENCY", "0")

	_, err := Load()
	assert.Error(t, err)
}
