package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainarb/arbscan/internal/domain"
)

func TestTokenAddressSubstitutesWrappedNative(t *testing.T) {
	eth, err := TokenAddress(domain.ChainEthereum, "ETH")
	require.NoError(t, err)
	weth, err := TokenAddress(domain.ChainEthereum, "WETH")
	require.NoError(t, err)
	assert.Equal(t, weth, eth)
}

func TestTokenAddressUnknownToken(t *testing.T) {
	_, err := TokenAddress(domain.ChainEthereum, "SHIB")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTokenAddressNonEVMChain(t *testing.T) {
	_, err := TokenAddress(domain.ChainSolana, "SOL")
	assert.ErrorIs(t, err, domain.ErrUnsupportedChain)
}

func TestRouterAddress(t *testing.T) {
	addr, err := RouterAddress(domain.ChainEthereum, domain.VenueUniswapV2)
	require.NoError(t, err)
	assert.Equal(t, "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D", addr.Hex())

	_, err = RouterAddress(domain.ChainEthereum, domain.VenuePancakeV2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDexVenuePerChain(t *testing.T) {
	cases := map[domain.ChainID]string{
		domain.ChainEthereum: domain.VenueUniswapV2,
		domain.ChainBSC:      domain.VenuePancakeV2,
		domain.ChainPolygon:  domain.VenueQuickSwap,
		domain.ChainSolana:   domain.VenueRaydium,
	}
	for id, want := range cases {
		got, err := DexVenue(id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := DexVenue(domain.ChainID("dogechain"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedChain)
}

func TestNativeSymbols(t *testing.T) {
	sym, err := NativeSymbol(domain.ChainBSC)
	require.NoError(t, err)
	assert.Equal(t, "BNB", sym)

	_, err = NativeSymbol(domain.ChainID("near"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedChain)
}

func TestFallbackGasUSD(t *testing.T) {
	assert.Equal(t, 5.0, FallbackGasUSD(domain.ChainEthereum))
	assert.Zero(t, FallbackGasUSD(domain.ChainID("near")))
}
