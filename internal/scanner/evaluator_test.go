package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainarb/arbscan/internal/domain"
)

var testEco = Economics{
	MinDiffPct:     0.5,
	SizeQuote:      1000,
	DexFeePct:      0.3,
	CexTakerFeePct: 0.1,
	SlippagePct:    0.5,
}

func ethPair() domain.Pair {
	return domain.Pair{Base: "ETH", Quote: "USDT", Chain: domain.ChainEthereum}
}

func TestEvaluateCexToDexSpread(t *testing.T) {
	quotes := []domain.Quote{
		{Venue: domain.VenueBinance, Base: "ETH", Quote: "USDT", Price: 3000, Kind: domain.VenueCEX},
		{Venue: domain.VenueUniswapV2, Chain: domain.ChainEthereum, Base: "ETH", Quote: "USDT", Price: 3015, Kind: domain.VenueDEX},
	}

	opps := Evaluate(ethPair(), quotes, testEco, 5.0, time.Now())
	require.Len(t, opps, 1)

	o := opps[0]
	assert.Equal(t, "ETH-USDT-ethereum-Binance-to-UniswapV2", o.ID)
	assert.Equal(t, domain.VenueBinance, o.BuyOn)
	assert.Equal(t, domain.VenueUniswapV2, o.SellOn)
	assert.InDelta(t, 0.5, o.DiffPct, 1e-9)

	// size 1000: cex leg 0.1% + dex leg 0.3% = $4 fees, 0.5% slippage = $5,
	// gas $5, gross (3015-3000)*(1000/3000) = $5. Net is negative but the
	// spread meets the threshold, so the opportunity is still emitted.
	assert.InDelta(t, 9.0, o.FeesUSD, 1e-9)
	assert.InDelta(t, 5.0, o.GasUSD, 1e-9)
	assert.InDelta(t, -9.0, o.EstProfitUSD, 1e-9)
	assert.Equal(t, 1000.0, o.SizeQuote)
}

func TestEvaluateSkipsNonPositiveSpreads(t *testing.T) {
	quotes := []domain.Quote{
		{Venue: domain.VenueBinance, Base: "ETH", Quote: "USDT", Price: 3000, Kind: domain.VenueCEX},
		{Venue: domain.VenueKraken, Base: "ETH", Quote: "USDT", Price: 3000, Kind: domain.VenueCEX},
	}

	opps := Evaluate(ethPair(), quotes, testEco, 0, time.Now())
	assert.Empty(t, opps, "equal prices must not produce a pairing in either direction")
}

func TestEvaluateThresholdGate(t *testing.T) {
	// 0.4% spread with a 0.5% threshold.
	quotes := []domain.Quote{
		{Venue: domain.VenueBinance, Base: "ETH", Quote: "USDT", Price: 3000, Kind: domain.VenueCEX},
		{Venue: domain.VenueKuCoin, Base: "ETH", Quote: "USDT", Price: 3012, Kind: domain.VenueCEX},
	}

	opps := Evaluate(ethPair(), quotes, testEco, 0, time.Now())
	assert.Empty(t, opps)

	loose := testEco
	loose.MinDiffPct = 0.3
	opps = Evaluate(ethPair(), quotes, loose, 0, time.Now())
	assert.Len(t, opps, 1)
}

func TestEvaluateGasOnlyChargedOnDexLegs(t *testing.T) {
	quotes := []domain.Quote{
		{Venue: domain.VenueBinance, Base: "ETH", Quote: "USDT", Price: 3000, Kind: domain.VenueCEX},
		{Venue: domain.VenueKraken, Base: "ETH", Quote: "USDT", Price: 3030, Kind: domain.VenueCEX},
	}

	opps := Evaluate(ethPair(), quotes, testEco, 5.0, time.Now())
	require.Len(t, opps, 1)
	assert.Zero(t, opps[0].GasUSD, "pure CEX-to-CEX route pays no gas")

	// Same spread, but the sell side is a DEX.
	quotes[1] = domain.Quote{
		Venue: domain.VenueUniswapV2, Chain: domain.ChainEthereum,
		Base: "ETH", Quote: "USDT", Price: 3030, Kind: domain.VenueDEX,
	}
	opps = Evaluate(ethPair(), quotes, testEco, 5.0, time.Now())
	require.Len(t, opps, 1)
	assert.InDelta(t, 5.0, opps[0].GasUSD, 1e-9)
}

func TestEvaluateOrderedPairsBothDirections(t *testing.T) {
	// Three venues, strictly increasing prices: 3 ordered pairs qualify.
	quotes := []domain.Quote{
		{Venue: domain.VenueBinance, Base: "ETH", Quote: "USDT", Price: 3000, Kind: domain.VenueCEX},
		{Venue: domain.VenueKuCoin, Base: "ETH", Quote: "USDT", Price: 3030, Kind: domain.VenueCEX},
		{Venue: domain.VenueKraken, Base: "ETH", Quote: "USDT", Price: 3060, Kind: domain.VenueCEX},
	}

	opps := Evaluate(ethPair(), quotes, testEco, 0, time.Now())
	assert.Len(t, opps, 3)
	for _, o := range opps {
		assert.Less(t, o.BuyPrice, o.SellPrice)
	}
}

func TestEvaluateProfitMonotoneInSpread(t *testing.T) {
	mk := func(sell float64) domain.Opportunity {
		quotes := []domain.Quote{
			{Venue: domain.VenueBinance, Base: "ETH", Quote: "USDT", Price: 3000, Kind: domain.VenueCEX},
			{Venue: domain.VenueKuCoin, Base: "ETH", Quote: "USDT", Price: sell, Kind: domain.VenueCEX},
		}
		opps := Evaluate(ethPair(), quotes, testEco, 0, time.Now())
		require.Len(t, opps, 1)
		return opps[0]
	}

	small := mk(3020)
	large := mk(3090)
	assert.Greater(t, large.EstProfitUSD, small.EstProfitUSD)
	assert.Greater(t, large.DiffPct, small.DiffPct)
}

func TestEvaluateFewerThanTwoQuotes(t *testing.T) {
	quotes := []domain.Quote{
		{Venue: domain.VenueBinance, Base: "ETH", Quote: "USDT", Price: 3000, Kind: domain.VenueCEX},
	}
	assert.Nil(t, Evaluate(ethPair(), quotes, testEco, 0, time.Now()))
}
