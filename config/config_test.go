package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.False(t, cfg.External())
	assert.Equal(t, "info", cfg.LogSpec)
}

func TestLoadFromExternalService(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CHAINCODE_SERVER_ADDRESS": "0.0.0.0:9999",
		"CHAINCODE_ID":             "employeenft_1.0:abc123",
		"CHAINCODE_LOG_SPEC":       "debug",
	})
	require.NoError(t, err)
	assert.True(t, cfg.External())
	assert.Equal(t, "0.0.0.0:9999", cfg.ServerAddress)
	assert.Equal(t, "employeenft_1.0:abc123", cfg.ChaincodeID)
	assert.Equal(t, "debug", cfg.LogSpec)
}

func TestLoadFromRequiresChaincodeID(t *testing.T) {
	_, err := LoadFrom(map[string]string{"CHAINCODE_SERVER_ADDRESS": "0.0.0.0:9999"})
	assert.ErrorContains(t, err, "CHAINCODE_ID")
}

func TestLoadReadsProcessEnv(t *testing.T) {
	t.Setenv("CHAINCODE_LOG_SPEC", "warning")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warning", cfg.LogSpec)
}
