package gas

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chainarb/arbscan/internal/domain"
)

type stubFeeReader struct {
	price *big.Int
	err   error
}

func (s *stubFeeReader) SuggestGasPrice(context.Context) (*big.Int, error) {
	return s.price, s.err
}

type stubPrices struct {
	usd float64
	err error
}

func (s *stubPrices) NativeUSD(context.Context, string) (float64, error) {
	return s.usd, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSwapCostUSDComputesFromLiveGasPrice(t *testing.T) {
	// 20 gwei * 180k gas = 0.0036 ETH; at $3000 that is $10.80.
	feeds := map[domain.ChainID]FeeReader{
		domain.ChainEthereum: &stubFeeReader{price: big.NewInt(20_000_000_000)},
	}
	e := NewEstimator(feeds, &stubPrices{usd: 3000}, testLogger())

	cost := e.SwapCostUSD(context.Background(), domain.ChainEthereum)
	assert.InDelta(t, 10.80, cost, 1e-9)
}

func TestSwapCostUSDFallsBackWithoutFeed(t *testing.T) {
	e := NewEstimator(nil, nil, testLogger())
	assert.Equal(t, 5.0, e.SwapCostUSD(context.Background(), domain.ChainEthereum))
	assert.Equal(t, 0.1, e.SwapCostUSD(context.Background(), domain.ChainBSC))
}

func TestSwapCostUSDSolanaAlwaysFallback(t *testing.T) {
	feeds := map[domain.ChainID]FeeReader{
		domain.ChainSolana: &stubFeeReader{price: big.NewInt(1)},
	}
	e := NewEstimator(feeds, &stubPrices{usd: 150}, testLogger())
	assert.Equal(t, 0.01, e.SwapCostUSD(context.Background(), domain.ChainSolana))
}

func TestSwapCostUSDFallsBackOnGasPriceError(t *testing.T) {
	feeds := map[domain.ChainID]FeeReader{
		domain.ChainEthereum: &stubFeeReader{err: errors.New("rpc down")},
	}
	e := NewEstimator(feeds, &stubPrices{usd: 3000}, testLogger())
	assert.Equal(t, 5.0, e.SwapCostUSD(context.Background(), domain.ChainEthereum))
}

func TestSwapCostUSDFallsBackOnPriceFeedError(t *testing.T) {
	feeds := map[domain.ChainID]FeeReader{
		domain.ChainEthereum: &stubFeeReader{price: big.NewInt(20_000_000_000)},
	}
	e := NewEstimator(feeds, &stubPrices{err: errors.New("ticker down")}, testLogger())
	assert.Equal(t, 5.0, e.SwapCostUSD(context.Background(), domain.ChainEthereum))
}

func TestSwapCostUSDUnknownChain(t *testing.T) {
	e := NewEstimator(nil, nil, testLogger())
	assert.Zero(t, e.SwapCostUSD(context.Background(), domain.ChainID("dogechain")))
}
