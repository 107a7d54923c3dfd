package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyvein-baas/client-skyvein-txbuilder/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "txbuilder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
rpc_url: ws://node:9944
seed: "//Alice"
ss58_prefix: 42
mortality_period: 64
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, models.Client{
		Addr:            "ws://node:9944",
		Seed:            "//Alice",
		SS58Prefix:      42,
		MortalityPeriod: 64,
	}, cfg.Client())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "rpc_url: ws://node:9944\n")
	t.Setenv("TXBUILDER_RPC_URL", "ws://other:9944")
	t.Setenv("TXBUILDER_MORTALITY_PERIOD", "128")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://other:9944", cfg.RPCURL)
	assert.Equal(t, uint64(128), cfg.MortalityPeriod)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ws://127.0.0.1:9944", cfg.RPCURL)
	assert.Equal(t, models.SubstrateSS58Prefix, cfg.SS58Prefix)
	assert.Equal(t, models.DefaultMortalPeriod, cfg.MortalityPeriod)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
