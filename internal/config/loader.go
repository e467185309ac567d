package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/chainarb/arbscan/internal/domain"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies ARBSCAN_* environment variable overrides, and
// returns the final Config. A missing file is not an error — the scanner
// runs on defaults plus environment. The returned Config has NOT been
// validated; the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known ARBSCAN_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets and thresholds at deploy time without
// touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Scan economics ──
	setFloat64(&cfg.Scan.MinDiffPct, "ARBSCAN_MIN_DIFF_PCT")
	setFloat64(&cfg.Scan.DefaultSizeQuote, "ARBSCAN_DEFAULT_SIZE_QUOTE")
	setFloat64(&cfg.Scan.DexFeePct, "ARBSCAN_DEX_FEE_PCT")
	setFloat64(&cfg.Scan.CexTakerFeePct, "ARBSCAN_CEX_TAKER_FEE_PCT")
	setFloat64(&cfg.Scan.SlippagePct, "ARBSCAN_SLIPPAGE_PCT")
	setInt(&cfg.Scan.MaxResults, "ARBSCAN_MAX_RESULTS")
	setBool(&cfg.Scan.DryRun, "ARBSCAN_DRY_RUN")
	setDuration(&cfg.Scan.Interval, "ARBSCAN_SCAN_INTERVAL")
	setDuration(&cfg.Scan.QuoteTimeout, "ARBSCAN_QUOTE_TIMEOUT")

	// ── Per-chain RPC endpoints and credential slots ──
	for _, id := range domain.Chains {
		upper := strings.ToUpper(string(id))
		cc := cfg.Chains[string(id)]
		setStr(&cc.RPCURL, upper+"_RPC_URL")
		setStr(&cc.RPCURL, "ARBSCAN_"+upper+"_RPC_URL")
		setStr(&cc.PrivateKey, "ARBSCAN_"+upper+"_PRIVATE_KEY")
		setStr(&cc.EncryptedKeyPath, "ARBSCAN_"+upper+"_ENCRYPTED_KEY_PATH")
		setStr(&cc.KeyPassword, "ARBSCAN_"+upper+"_KEY_PASSWORD")
		if cc != (ChainConfig{}) {
			if cfg.Chains == nil {
				cfg.Chains = map[string]ChainConfig{}
			}
			cfg.Chains[string(id)] = cc
		}
	}

	// ── Venue endpoints ──
	setStr(&cfg.Venues.BinanceURL, "ARBSCAN_BINANCE_URL")
	setStr(&cfg.Venues.KuCoinURL, "ARBSCAN_KUCOIN_URL")
	setStr(&cfg.Venues.KrakenURL, "ARBSCAN_KRAKEN_URL")
	setStr(&cfg.Venues.JupiterURL, "ARBSCAN_JUPITER_URL")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "ARBSCAN_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "ARBSCAN_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "ARBSCAN_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "ARBSCAN_REDIS_POOL_SIZE")
	setBool(&cfg.Redis.TLSEnabled, "ARBSCAN_REDIS_TLS_ENABLED")
	setDuration(&cfg.Redis.CacheTTL, "ARBSCAN_REDIS_CACHE_TTL")

	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "ARBSCAN_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "ARBSCAN_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "ARBSCAN_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "ARBSCAN_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "ARBSCAN_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "ARBSCAN_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "ARBSCAN_POSTGRES_SSLMODE")
	setBool(&cfg.Postgres.RunMigrations, "ARBSCAN_POSTGRES_RUN_MIGRATIONS")

	// ── S3 ──
	setStr(&cfg.S3.Endpoint, "ARBSCAN_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "ARBSCAN_S3_REGION")
	setStr(&cfg.S3.Bucket, "ARBSCAN_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "ARBSCAN_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "ARBSCAN_S3_SECRET_KEY")
	setBool(&cfg.S3.ForcePathStyle, "ARBSCAN_S3_FORCE_PATH_STYLE")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "ARBSCAN_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "ARBSCAN_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "ARBSCAN_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "ARBSCAN_SERVER_API_KEY")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "ARBSCAN_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "ARBSCAN_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "ARBSCAN_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "ARBSCAN_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.Mode, "ARBSCAN_MODE")
	setStr(&cfg.LogLevel, "ARBSCAN_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
