// Package gas estimates the USD cost of settling one swap leg on a chain.
// Estimates feed the opportunity evaluator; they are deliberately coarse and
// degrade to static per-chain fallbacks when an RPC or the native price feed
// is unreachable, so a scan pass never fails on cost lookup.
package gas

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/chainarb/arbscan/internal/chain"
	"github.com/chainarb/arbscan/internal/domain"
)

// weiPerEther scales a wei amount to the native unit.
const weiPerEther = 1e18

// FeeReader is the slice of the ethclient surface the estimator needs.
// *ethclient.Client satisfies it.
type FeeReader interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// NativePriceFeed reports the USD price of a chain's gas asset. The Binance
// adapter implements it; a cache may wrap it.
type NativePriceFeed interface {
	NativeUSD(ctx context.Context, symbol string) (float64, error)
}

// Estimator converts live gas prices into a per-swap USD cost. Chains
// without an attached fee reader, and any lookup failure, resolve to the
// chain's static fallback.
type Estimator struct {
	feeds  map[domain.ChainID]FeeReader
	prices NativePriceFeed
	logger *slog.Logger
}

// NewEstimator creates a cost estimator. feeds may be nil or partial; prices
// may be nil, in which case every estimate is the static fallback.
func NewEstimator(feeds map[domain.ChainID]FeeReader, prices NativePriceFeed, logger *slog.Logger) *Estimator {
	if feeds == nil {
		feeds = make(map[domain.ChainID]FeeReader)
	}
	return &Estimator{
		feeds:  feeds,
		prices: prices,
		logger: logger.With(slog.String("component", "gas")),
	}
}

// SwapCostUSD estimates the USD cost of one router swap on the chain. The
// estimate is gasPrice * swapGasLimit converted through the native asset's
// USD price. Solana and any failed lookup return the chain's fallback.
func (e *Estimator) SwapCostUSD(ctx context.Context, id domain.ChainID) float64 {
	info, err := chain.Get(id)
	if err != nil {
		return 0
	}
	if !info.EVM {
		return info.FallbackGasUSD
	}

	feed, ok := e.feeds[id]
	if !ok || e.prices == nil {
		return info.FallbackGasUSD
	}

	gasPrice, err := feed.SuggestGasPrice(ctx)
	if err != nil || gasPrice == nil || gasPrice.Sign() <= 0 {
		e.logger.WarnContext(ctx, "gas price lookup failed, using fallback",
			slog.String("chain", string(id)),
			slog.Any("error", err))
		return info.FallbackGasUSD
	}

	nativeUSD, err := e.prices.NativeUSD(ctx, info.NativeSymbol)
	if err != nil || nativeUSD <= 0 {
		e.logger.WarnContext(ctx, "native price lookup failed, using fallback",
			slog.String("chain", string(id)),
			slog.Any("error", err))
		return info.FallbackGasUSD
	}

	costWei := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(info.SwapGasLimit))
	costNative, _ := new(big.Float).Quo(new(big.Float).SetInt(costWei), big.NewFloat(weiPerEther)).Float64()
	return costNative * nativeUSD
}
