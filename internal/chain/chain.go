// Package chain holds the closed registry of supported networks: native
// asset symbols, token addresses, DEX router addresses, and the gas
// parameters used by the cost oracle. Venue adapters and the gas estimator
// look everything up here by domain.ChainID instead of branching on chain
// names inline.
package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainarb/arbscan/internal/domain"
)

// Info describes one supported chain.
type Info struct {
	ID domain.ChainID

	// NativeSymbol is the gas asset ticker used for USD conversion (ETH,
	// BNB, MATIC, SOL).
	NativeSymbol string

	// EVM is true for chains quoted through a V2-style router. Solana is
	// quoted through the Jupiter aggregator instead.
	EVM bool

	// Tokens maps a symbol to its ERC-20 address on this chain. The wrapped
	// native token stands in for the native symbol when routing.
	Tokens map[string]common.Address

	// WrappedNative is the symbol whose address substitutes for the native
	// asset in router paths (WETH, WBNB, WMATIC).
	WrappedNative string

	// Routers maps a DEX venue name to its V2 router address.
	Routers map[string]common.Address

	// SwapGasLimit is the rough gas usage of a V2 router swap, used when the
	// node cannot estimate.
	SwapGasLimit uint64

	// FallbackGasUSD is the static transaction-cost estimate used when the
	// RPC or the native price feed is unreachable.
	FallbackGasUSD float64
}

// Registry keeps the closed set of chain descriptors.
var registry = map[domain.ChainID]Info{
	domain.ChainEthereum: {
		ID:           domain.ChainEthereum,
		NativeSymbol: "ETH",
		EVM:          true,
		Tokens: map[string]common.Address{
			"USDT": common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"),
			"WETH": common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		},
		WrappedNative: "WETH",
		Routers: map[string]common.Address{
			domain.VenueUniswapV2: common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"),
		},
		SwapGasLimit:   180_000,
		FallbackGasUSD: 5.0,
	},
	domain.ChainBSC: {
		ID:           domain.ChainBSC,
		NativeSymbol: "BNB",
		EVM:          true,
		Tokens: map[string]common.Address{
			"USDT": common.HexToAddress("0x55d398326f99059fF775485246999027B3197955"),
			"WBNB": common.HexToAddress("0xBB4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"),
		},
		WrappedNative: "WBNB",
		Routers: map[string]common.Address{
			domain.VenuePancakeV2: common.HexToAddress("0x10ED43C718714eb63d5aA57B78B54704E256024E"),
		},
		SwapGasLimit:   160_000,
		FallbackGasUSD: 0.1,
	},
	domain.ChainPolygon: {
		ID:           domain.ChainPolygon,
		NativeSymbol: "MATIC",
		EVM:          true,
		Tokens: map[string]common.Address{
			"USDT":   common.HexToAddress("0xC2132D05D31c914a87C6611C10748AEb04B58e8F"),
			"WMATIC": common.HexToAddress("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"),
		},
		WrappedNative: "WMATIC",
		Routers: map[string]common.Address{
			domain.VenueQuickSwap: common.HexToAddress("0xa5E0829CaCED8fFDD4De3c43696c57F7D7A678ff"),
		},
		SwapGasLimit:   190_000,
		FallbackGasUSD: 0.05,
	},
	domain.ChainSolana: {
		ID:             domain.ChainSolana,
		NativeSymbol:   "SOL",
		EVM:            false,
		SwapGasLimit:   200_000,
		FallbackGasUSD: 0.01,
	},
}

// Get returns the descriptor for the given chain.
func Get(id domain.ChainID) (Info, error) {
	info, ok := registry[id]
	if !ok {
		return Info{}, fmt.Errorf("chain %q: %w", id, domain.ErrUnsupportedChain)
	}
	return info, nil
}

// NativeSymbol returns the gas asset ticker for the chain, or an error for
// unknown chains.
func NativeSymbol(id domain.ChainID) (string, error) {
	info, err := Get(id)
	if err != nil {
		return "", err
	}
	return info.NativeSymbol, nil
}

// FallbackGasUSD returns the static gas estimate for the chain. Unknown
// chains fall back to zero; callers gate on chain validity earlier.
func FallbackGasUSD(id domain.ChainID) float64 {
	if info, ok := registry[id]; ok {
		return info.FallbackGasUSD
	}
	return 0
}

// TokenAddress resolves a symbol to its ERC-20 address on an EVM chain. The
// native symbol resolves to the wrapped-native token so it can appear in a
// router path.
func TokenAddress(id domain.ChainID, symbol string) (common.Address, error) {
	info, err := Get(id)
	if err != nil {
		return common.Address{}, err
	}
	if !info.EVM {
		return common.Address{}, fmt.Errorf("chain %q has no ERC-20 tokens: %w", id, domain.ErrUnsupportedChain)
	}
	if symbol == info.NativeSymbol {
		symbol = info.WrappedNative
	}
	addr, ok := info.Tokens[symbol]
	if !ok {
		return common.Address{}, fmt.Errorf("chain %s: token %q: %w", id, symbol, domain.ErrNotFound)
	}
	return addr, nil
}

// RouterAddress resolves a DEX venue name to its router address on a chain.
func RouterAddress(id domain.ChainID, venue string) (common.Address, error) {
	info, err := Get(id)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := info.Routers[venue]
	if !ok {
		return common.Address{}, fmt.Errorf("chain %s: router for %q: %w", id, venue, domain.ErrNotFound)
	}
	return addr, nil
}

// DexVenue returns the DEX venue name serving the given chain. Every chain
// has exactly one in the current venue set.
func DexVenue(id domain.ChainID) (string, error) {
	switch id {
	case domain.ChainEthereum:
		return domain.VenueUniswapV2, nil
	case domain.ChainBSC:
		return domain.VenuePancakeV2, nil
	case domain.ChainPolygon:
		return domain.VenueQuickSwap, nil
	case domain.ChainSolana:
		return domain.VenueRaydium, nil
	}
	return "", fmt.Errorf("chain %q: %w", id, domain.ErrUnsupportedChain)
}
