package dex

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainarb/arbscan/internal/chain"
	"github.com/chainarb/arbscan/internal/domain"
)

// fakeCaller answers getAmountsOut on the router address and decimals on
// every token address.
type fakeCaller struct {
	t        *testing.T
	router   common.Address
	amounts  []*big.Int
	decimals map[common.Address]uint8
	err      error
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if *msg.To == f.router {
		routerParsed, err := abi.JSON(strings.NewReader(routerABI))
		require.NoError(f.t, err)
		return routerParsed.Methods["getAmountsOut"].Outputs.Pack(f.amounts)
	}
	dec, ok := f.decimals[*msg.To]
	require.True(f.t, ok, "decimals requested for unexpected token %s", msg.To)
	erc20Parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	require.NoError(f.t, err)
	return erc20Parsed.Methods["decimals"].Outputs.Pack(dec)
}

func ethereumTestCaller(t *testing.T, amounts []*big.Int) *fakeCaller {
	router, err := chain.RouterAddress(domain.ChainEthereum, domain.VenueUniswapV2)
	require.NoError(t, err)
	weth, err := chain.TokenAddress(domain.ChainEthereum, "ETH")
	require.NoError(t, err)
	usdt, err := chain.TokenAddress(domain.ChainEthereum, "USDT")
	require.NoError(t, err)

	return &fakeCaller{
		t:       t,
		router:  router,
		amounts: amounts,
		decimals: map[common.Address]uint8{
			weth: 18,
			usdt: 6,
		},
	}
}

func TestV2RouterQuote(t *testing.T) {
	amountIn, _ := new(big.Int).SetString("1000000000000000000", 10) // 1 ETH
	out := big.NewInt(3_015_000_000)                                // 3015 USDT at 6 decimals
	caller := ethereumTestCaller(t, []*big.Int{amountIn, out})

	v, err := NewV2Router(domain.VenueUniswapV2, domain.ChainEthereum, caller)
	require.NoError(t, err)

	price, err := v.Quote(context.Background(), domain.Pair{Base: "ETH", Quote: "USDT", Chain: domain.ChainEthereum})
	require.NoError(t, err)
	assert.InDelta(t, 3015.0, price, 1e-9)
}

func TestV2RouterRejectsForeignChain(t *testing.T) {
	caller := ethereumTestCaller(t, nil)
	v, err := NewV2Router(domain.VenueUniswapV2, domain.ChainEthereum, caller)
	require.NoError(t, err)

	_, err = v.Quote(context.Background(), domain.Pair{Base: "BNB", Quote: "USDT", Chain: domain.ChainBSC})
	assert.ErrorIs(t, err, domain.ErrUnsupportedChain)
}

func TestV2RouterRejectsZeroOutput(t *testing.T) {
	amountIn, _ := new(big.Int).SetString("1000000000000000000", 10)
	caller := ethereumTestCaller(t, []*big.Int{amountIn, big.NewInt(0)})

	v, err := NewV2Router(domain.VenueUniswapV2, domain.ChainEthereum, caller)
	require.NoError(t, err)

	_, err = v.Quote(context.Background(), domain.Pair{Base: "ETH", Quote: "USDT", Chain: domain.ChainEthereum})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestNewV2RouterUnknownVenue(t *testing.T) {
	_, err := NewV2Router("SushiSwap", domain.ChainEthereum, &fakeCaller{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 3015.0, toFloat(big.NewInt(3_015_000_000), 6))
	assert.Equal(t, 0.0, toFloat(nil, 6))
}
