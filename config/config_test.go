package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConf = `
contract_id: ptb.testnet
db:
  path: ./data/state
log:
  level: debug
rpc_service:
  addr: 127.0.0.1:9000
  proxy: testnet/
  api:
    apikey_list:
      secret-owner:
        user_name: owner.testnet
        rate_limit:
          per_second: 5
          per_day: 1000
          max: 5
          burst: 5
    nolimit_api_list:
      - /health
genesis:
  decay_factor: 0.5
`

func writeConf(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadYamlConf(t *testing.T) {
	cfg, err := LoadYamlConf(writeConf(t, sampleConf))
	require.NoError(t, err)

	assert.Equal(t, "ptb.testnet", cfg.ContractId)
	assert.Equal(t, "pebble", cfg.DB.Type)
	assert.Equal(t, filepath.FromSlash("./data/state"), cfg.DB.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/testnet", cfg.RPCService.Proxy)
	assert.Equal(t, "127.0.0.1:9000", cfg.RPCService.Addr)

	key := cfg.RPCService.API.APIKeyList["secret-owner"]
	require.NotNil(t, key)
	assert.Equal(t, "owner.testnet", key.UserName)
	assert.Equal(t, 1000, key.RateLimit.PerDay)

	assert.Equal(t, 0.5, cfg.Genesis.DecayFactor)
	assert.Equal(t, uint64(3_000_000_000), cfg.Genesis.InitialEmissions)
	assert.Equal(t, "5000000000000", cfg.Genesis.RafflePoolAmount)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EMISSION_DB_TYPE", "leveldb")
	t.Setenv("EMISSION_LOG_LEVEL", "warn")
	t.Setenv("EMISSION_RPC_ADDR", "0.0.0.0:7000")
	t.Setenv("EMISSION_GENESIS_PERIOD_SECONDS", "60")

	cfg, err := LoadYamlConf(writeConf(t, sampleConf))
	require.NoError(t, err)
	assert.Equal(t, "leveldb", cfg.DB.Type)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:7000", cfg.RPCService.Addr)
	assert.Equal(t, uint64(60), cfg.Genesis.PeriodSeconds)
	// untouched by the environment
	assert.Equal(t, filepath.FromSlash("./data/state"), cfg.DB.Path)
}

func TestLoadYamlConfErrors(t *testing.T) {
	_, err := LoadYamlConf(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadYamlConf(writeConf(t, "db: [unclosed"))
	assert.Error(t, err)
}

func TestDefaultConfRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, SaveYamlConf(NewDefaultYamlConf(), path))

	cfg, err := LoadYamlConf(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.RPCService.Proxy)
	assert.Equal(t, []string{"/health"}, cfg.RPCService.API.NoLimitApiList)
	assert.Equal(t, "1250000000000000000000", cfg.Genesis.MinStorageBalance)
}
