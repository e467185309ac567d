package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/ethclient"

	s3blob "github.com/chainarb/arbscan/internal/blob/s3"
	"github.com/chainarb/arbscan/internal/bus"
	"github.com/chainarb/arbscan/internal/cache/redis"
	"github.com/chainarb/arbscan/internal/chain"
	"github.com/chainarb/arbscan/internal/config"
	"github.com/chainarb/arbscan/internal/crypto"
	"github.com/chainarb/arbscan/internal/domain"
	"github.com/chainarb/arbscan/internal/gas"
	"github.com/chainarb/arbscan/internal/history"
	"github.com/chainarb/arbscan/internal/notify"
	"github.com/chainarb/arbscan/internal/scanner"
	"github.com/chainarb/arbscan/internal/service"
	"github.com/chainarb/arbscan/internal/snapshot"
	"github.com/chainarb/arbscan/internal/store/postgres"
	"github.com/chainarb/arbscan/internal/venue"
	"github.com/chainarb/arbscan/internal/venue/cex"
	"github.com/chainarb/arbscan/internal/venue/dex"
)

// Dependencies bundles everything the application modes need to operate. It
// is constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Registry *venue.Registry
	Snapshot *snapshot.Store
	History  *history.Log
	Bus      domain.SignalBus

	QuoteCache domain.QuoteCache     // nil when Redis is not configured
	ExecStore  domain.ExecutionStore // nil when Postgres is not configured
	Archiver   domain.Archiver       // nil when S3 is not configured

	Notifier *notify.Notifier
	Scanner  *scanner.Scanner
	ScanSvc  *service.ScanService
	ExecSvc  *service.ExecService
}

// Wire constructs the concrete dependency graph from the configuration and
// returns it together with a cleanup function for shutdown.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{
		Snapshot: snapshot.NewStore(),
		History:  history.NewLog(history.DefaultCapacity),
		Bus:      bus.NewMemory(),
	}

	// --- Redis quote cache (optional) ---
	if cfg.RedisEnabled() {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		deps.QuoteCache = redis.NewQuoteCache(redisClient, cfg.Redis.CacheTTL.Duration)
	}

	// --- Postgres execution store (optional) ---
	if cfg.PostgresEnabled() {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}
		deps.ExecStore = postgres.NewExecutionStore(pgClient.Pool())
	}

	// --- S3 snapshot archiver (optional) ---
	if cfg.S3Enabled() {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		deps.Archiver = s3blob.NewArchiver(s3blob.NewWriter(s3Client))
	}

	// --- Venue registry ---
	registry := venue.NewRegistry()
	binance := cex.NewBinance(cfg.Venues.BinanceURL)
	registry.RegisterGlobal(venue.WithCache(binance, deps.QuoteCache, logger))
	if cfg.Venues.KuCoinURL != "" {
		registry.RegisterGlobal(venue.WithCache(cex.NewKuCoin(cfg.Venues.KuCoinURL), deps.QuoteCache, logger))
	}
	if cfg.Venues.KrakenURL != "" {
		registry.RegisterGlobal(venue.WithCache(cex.NewKraken(cfg.Venues.KrakenURL), deps.QuoteCache, logger))
	}

	// EVM chains quote through their V2 router when an RPC is configured;
	// chains without one simply contribute no DEX quotes.
	gasFeeds := make(map[domain.ChainID]gas.FeeReader)
	for _, id := range domain.Chains {
		info, err := chain.Get(id)
		if err != nil || !info.EVM {
			continue
		}
		rpcURL := cfg.ChainRPC(id)
		if rpcURL == "" {
			logger.InfoContext(ctx, "no rpc configured, dex quoting disabled",
				slog.String("chain", string(id)))
			continue
		}
		ethClient, err := ethclient.DialContext(ctx, rpcURL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: dial %s rpc: %w", id, err)
		}
		closers = append(closers, ethClient.Close)

		venueName, err := chain.DexVenue(id)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: %s: %w", id, err)
		}
		router, err := dex.NewV2Router(venueName, id, ethClient)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: %s router: %w", id, err)
		}
		registry.RegisterChain(id, venue.WithCache(router, deps.QuoteCache, logger))
		gasFeeds[id] = ethClient
	}
	if cfg.Venues.JupiterURL != "" {
		registry.RegisterChain(domain.ChainSolana,
			venue.WithCache(dex.NewJupiter(cfg.Venues.JupiterURL), deps.QuoteCache, logger))
	}
	deps.Registry = registry

	// --- Credential slots: validate at startup, never expose ---
	for name, cc := range cfg.Chains {
		keyCfg := crypto.KeyConfig{
			RawPrivateKey:    cc.PrivateKey,
			EncryptedKeyPath: cc.EncryptedKeyPath,
			KeyPassword:      cc.KeyPassword,
		}
		if !keyCfg.Configured() {
			continue
		}
		keyHex, err := crypto.LoadKey(keyCfg)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: chain %s key: %w", name, err)
		}
		addr, err := crypto.DeriveAddress(keyHex)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: chain %s key: %w", name, err)
		}
		logger.InfoContext(ctx, "credential slot validated",
			slog.String("chain", name),
			slog.String("address", addr.Hex()))
	}

	// --- Gas estimator ---
	nativeFeed := gas.WithCache(binance, deps.QuoteCache, logger)
	estimator := gas.NewEstimator(gasFeeds, nativeFeed, logger)

	// --- Scanner and services ---
	agg := scanner.NewAggregator(registry, cfg.Scan.QuoteTimeout.Duration, logger)
	eco := scanner.Economics{
		MinDiffPct:     cfg.Scan.MinDiffPct,
		SizeQuote:      cfg.Scan.DefaultSizeQuote,
		DexFeePct:      cfg.Scan.DexFeePct,
		CexTakerFeePct: cfg.Scan.CexTakerFeePct,
		SlippagePct:    cfg.Scan.SlippagePct,
	}
	deps.Scanner = scanner.New(agg, estimator, deps.Snapshot, cfg.Pairs, eco, cfg.Scan.MaxResults, logger)

	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	deps.Notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)

	deps.ScanSvc = service.NewScanService(deps.Scanner, deps.Snapshot, deps.Bus, deps.Notifier, deps.Archiver, logger)
	deps.ExecSvc = service.NewExecService(deps.Snapshot, deps.History, deps.ExecStore, deps.Archiver, deps.Bus, deps.Notifier, cfg.Scan.DryRun, logger)

	return deps, cleanup, nil
}
