// Package config defines the top-level configuration for the arbitrage
// scanner and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/chainarb/arbscan/internal/domain"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by ARBSCAN_* environment
// variables.
type Config struct {
	Pairs    []domain.Pair          `toml:"pairs"`
	Scan     ScanConfig             `toml:"scan"`
	Chains   map[string]ChainConfig `toml:"chains"`
	Venues   VenueConfig            `toml:"venues"`
	Redis    RedisConfig            `toml:"redis"`
	Postgres PostgresConfig         `toml:"postgres"`
	S3       S3Config               `toml:"s3"`
	Server   ServerConfig           `toml:"server"`
	Notify   NotifyConfig           `toml:"notify"`
	Mode     string                 `toml:"mode"`
	LogLevel string                 `toml:"log_level"`
}

// ScanConfig holds the economic model parameters and scan scheduling.
type ScanConfig struct {
	// MinDiffPct is the raw spread threshold, in percent, that gates
	// opportunity emission.
	MinDiffPct float64 `toml:"min_diff_pct"`
	// DefaultSizeQuote is the trade size in quote-currency units used when a
	// request does not supply one.
	DefaultSizeQuote float64 `toml:"default_size_quote"`
	// DexFeePct and CexTakerFeePct are per-leg fee percentages.
	DexFeePct      float64 `toml:"dex_fee_pct"`
	CexTakerFeePct float64 `toml:"cex_taker_fee_pct"`
	// SlippagePct is applied once per opportunity regardless of direction.
	SlippagePct float64 `toml:"slippage_pct"`
	// MaxResults bounds the ranked snapshot size.
	MaxResults int `toml:"max_results"`
	// DryRun is the default execution mode when a request omits dryRun.
	DryRun bool `toml:"dry_run"`
	// Interval is the period between scans in watch mode.
	Interval duration `toml:"interval"`
	// QuoteTimeout bounds each individual venue call so one unresponsive
	// venue cannot stall a pass.
	QuoteTimeout duration `toml:"quote_timeout"`
}

// ChainConfig holds per-chain RPC and credential slots. Credentials are
// validated at startup but never used for settlement; live execution is
// disabled by design.
type ChainConfig struct {
	RPCURL           string `toml:"rpc_url"`
	PrivateKey       string `toml:"private_key"`
	EncryptedKeyPath string `toml:"encrypted_key_path"`
	KeyPassword      string `toml:"key_password"`
}

// VenueConfig holds the public venue API endpoints. Overridable for tests
// and regional mirrors.
type VenueConfig struct {
	BinanceURL string `toml:"binance_url"`
	KuCoinURL  string `toml:"kucoin_url"`
	KrakenURL  string `toml:"kraken_url"`
	JupiterURL string `toml:"jupiter_url"`
}

// RedisConfig holds optional quote-cache connection parameters. The cache is
// disabled when Addr is empty.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
	CacheTTL   duration `toml:"cache_ttl"`
}

// PostgresConfig holds the optional durable execution store. Disabled when
// both DSN and Host are empty.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// S3Config holds the optional snapshot archiver target. Disabled when Bucket
// is empty.
type S3Config struct {
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	APIKey      string   `toml:"api_key"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "30s", "5m").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for the TOML decoder.
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// usdPeggedQuotes enumerates the quote currencies the profit math accepts.
// Gross profit is computed in quote units and reported as USD, which only
// holds for USD-pegged stablecoins; Validate enforces this so the assumption
// cannot silently break.
var usdPeggedQuotes = map[string]bool{
	"USDT": true,
	"USDC": true,
	"DAI":  true,
}

// Defaults returns a Config populated with the scanner's default universe
// and economics.
func Defaults() Config {
	return Config{
		Pairs: []domain.Pair{
			{Base: "ETH", Quote: "USDT", Chain: domain.ChainEthereum},
			{Base: "BNB", Quote: "USDT", Chain: domain.ChainBSC},
			{Base: "MATIC", Quote: "USDT", Chain: domain.ChainPolygon},
			{Base: "SOL", Quote: "USDT", Chain: domain.ChainSolana},
		},
		Scan: ScanConfig{
			MinDiffPct:       0.5,
			DefaultSizeQuote: 1000,
			DexFeePct:        0.3,
			CexTakerFeePct:   0.1,
			SlippagePct:      0.5,
			MaxResults:       50,
			DryRun:           true,
			Interval:         duration{30 * time.Second},
			QuoteTimeout:     duration{10 * time.Second},
		},
		Chains: map[string]ChainConfig{},
		Venues: VenueConfig{
			BinanceURL: "https://api.binance.com",
			KuCoinURL:  "https://api.kucoin.com",
			KrakenURL:  "https://api.kraken.com",
			JupiterURL: "https://quote-api.jup.ag",
		},
		Redis: RedisConfig{
			PoolSize:   20,
			MaxRetries: 3,
			CacheTTL:   duration{15 * time.Second},
		},
		Postgres: PostgresConfig{
			Port:          5432,
			Database:      "arbscan",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		S3: S3Config{
			Region:         "us-east-1",
			ForcePathStyle: true,
		},
		Server: ServerConfig{
			Enabled:     true,
			Port:        8000,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Notify: NotifyConfig{
			Events: []string{"opportunity_found", "trade_recorded", "error"},
		},
		Mode:     "server",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"server": true,
	"scan":   true,
	"watch":  true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: server, scan, watch)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Pairs
	if len(c.Pairs) == 0 {
		errs = append(errs, "pairs: at least one trading pair must be configured")
	}
	for i, p := range c.Pairs {
		if p.Base == "" || p.Quote == "" {
			errs = append(errs, fmt.Sprintf("pairs[%d]: base and quote must not be empty", i))
		}
		if !p.Chain.Valid() {
			errs = append(errs, fmt.Sprintf("pairs[%d]: unknown chain %q", i, p.Chain))
		}
		if !usdPeggedQuotes[p.Quote] {
			errs = append(errs, fmt.Sprintf("pairs[%d]: quote %q is not a USD-pegged stablecoin (profit math assumes quote == USD)", i, p.Quote))
		}
	}

	// Scan economics
	if c.Scan.MinDiffPct <= 0 {
		errs = append(errs, "scan: min_diff_pct must be > 0")
	}
	if c.Scan.DefaultSizeQuote <= 0 {
		errs = append(errs, "scan: default_size_quote must be > 0")
	}
	if c.Scan.DexFeePct < 0 || c.Scan.CexTakerFeePct < 0 {
		errs = append(errs, "scan: fee percentages must be >= 0")
	}
	if c.Scan.SlippagePct < 0 {
		errs = append(errs, "scan: slippage_pct must be >= 0")
	}
	if c.Scan.MaxResults < 1 {
		errs = append(errs, "scan: max_results must be >= 1")
	}
	if c.Mode == "watch" && c.Scan.Interval.Duration <= 0 {
		errs = append(errs, "scan: interval must be > 0 in watch mode")
	}
	if c.Scan.QuoteTimeout.Duration <= 0 {
		errs = append(errs, "scan: quote_timeout must be > 0")
	}

	// Chains — unknown keys are configuration mistakes, not extensions.
	for name, cc := range c.Chains {
		if !domain.ChainID(name).Valid() {
			errs = append(errs, fmt.Sprintf("chains: unknown chain %q", name))
		}
		if cc.EncryptedKeyPath != "" && cc.KeyPassword == "" {
			errs = append(errs, fmt.Sprintf("chains.%s: key_password is required when encrypted_key_path is set", name))
		}
	}

	// Venues
	if c.Venues.BinanceURL == "" {
		errs = append(errs, "venues: binance_url must not be empty (native USD reference feed)")
	}

	// Postgres (only when enabled)
	if c.PostgresEnabled() {
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty (or set postgres.dsn)")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
		}
	}

	// Redis (only when enabled)
	if c.RedisEnabled() && c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}

	// S3 (only when enabled)
	if c.S3Enabled() && c.S3.Region == "" {
		errs = append(errs, "s3: region must not be empty")
	}

	// Server
	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// RedisEnabled reports whether the optional quote cache is configured.
func (c *Config) RedisEnabled() bool { return c.Redis.Addr != "" }

// PostgresEnabled reports whether the optional durable store is configured.
func (c *Config) PostgresEnabled() bool {
	return strings.TrimSpace(c.Postgres.DSN) != "" || c.Postgres.Host != ""
}

// S3Enabled reports whether the optional snapshot archiver is configured.
func (c *Config) S3Enabled() bool { return c.S3.Bucket != "" }

// ChainRPC returns the configured RPC endpoint for a chain, or "" when none
// is set. Adapters treat a missing RPC as "venue unavailable", not an error.
func (c *Config) ChainRPC(id domain.ChainID) string {
	return c.Chains[string(id)].RPCURL
}
