package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainarb/arbscan/internal/domain"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Scan.MinDiffPct)
	assert.Equal(t, "server", cfg.Mode)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
mode = "scan"

[scan]
min_diff_pct = 1.25
interval = "1m"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "scan", cfg.Mode)
	assert.Equal(t, 1.25, cfg.Scan.MinDiffPct)
	assert.Equal(t, time.Minute, cfg.Scan.Interval.Duration)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1000.0, cfg.Scan.DefaultSizeQuote)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARBSCAN_MIN_DIFF_PCT", "2.0")
	t.Setenv("ARBSCAN_MODE", "watch")
	t.Setenv("ARBSCAN_ETHEREUM_RPC_URL", "https://rpc.example.com")
	t.Setenv("ARBSCAN_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Scan.MinDiffPct)
	assert.Equal(t, "watch", cfg.Mode)
	assert.Equal(t, "https://rpc.example.com", cfg.ChainRPC(domain.ChainEthereum))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestValidateRejectsBadMode(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "yolo"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidateRejectsNonStableQuote(t *testing.T) {
	cfg := Defaults()
	cfg.Pairs = []domain.Pair{{Base: "ETH", Quote: "BTC", Chain: domain.ChainEthereum}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USD-pegged")
}

func TestValidateRejectsWatchWithoutInterval(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "watch"
	cfg.Scan.Interval = duration{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interval")
}

func TestValidateRejectsUnknownChainKey(t *testing.T) {
	cfg := Defaults()
	cfg.Chains = map[string]ChainConfig{"dogechain": {RPCURL: "https://rpc"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chain")
}

func TestValidateRequiresKeyPassword(t *testing.T) {
	cfg := Defaults()
	cfg.Chains = map[string]ChainConfig{
		"ethereum": {EncryptedKeyPath: "/keys/eth.json"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key_password")
}

func TestRedactedConfigMasksSecrets(t *testing.T) {
	cfg := Defaults()
	cfg.Chains = map[string]ChainConfig{
		"ethereum": {RPCURL: "https://rpc", PrivateKey: "0xdeadbeef"},
	}
	cfg.Redis.Password = "hunter2"
	cfg.Server.APIKey = "secret"

	red := RedactedConfig(&cfg)

	assert.Equal(t, "***", red.Chains["ethereum"].PrivateKey)
	assert.Equal(t, "https://rpc", red.Chains["ethereum"].RPCURL)
	assert.Equal(t, "***", red.Redis.Password)
	assert.Equal(t, "***", red.Server.APIKey)

	// The original is untouched.
	assert.Equal(t, "0xdeadbeef", cfg.Chains["ethereum"].PrivateKey)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
}
