// Package dex implements decentralized-exchange quote sources: V2-style
// router quoting on EVM chains and Jupiter aggregator quoting on Solana.
package dex

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/chainarb/arbscan/internal/chain"
	"github.com/chainarb/arbscan/internal/domain"
)

const routerABI = `[
 {"inputs":[{"internalType":"uint256","name":"amountIn","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"}],"name":"getAmountsOut","outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],"stateMutability":"view","type":"function"}
]`

const erc20ABI = `[
 {"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

// ContractCaller is the slice of the ethclient surface the quoter needs.
// *ethclient.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// V2Router quotes a pair through a UniswapV2-style router by asking
// getAmountsOut for one base unit along the [base, quote] path.
type V2Router struct {
	name     string
	chainID  domain.ChainID
	caller   ContractCaller
	router   common.Address
	abi      abi.ABI
	erc20    abi.ABI
	decMu    sync.RWMutex
	decimals map[common.Address]int
}

// NewV2Router creates a router quoter for the named venue on the given
// chain. The router address comes from the chain registry.
func NewV2Router(name string, chainID domain.ChainID, caller ContractCaller) (*V2Router, error) {
	routerAddr, err := chain.RouterAddress(chainID, name)
	if err != nil {
		return nil, fmt.Errorf("dex: %s on %s: %w", name, chainID, err)
	}
	rABI, err := abi.JSON(strings.NewReader(routerABI))
	if err != nil {
		return nil, fmt.Errorf("dex: parse router abi: %w", err)
	}
	eABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("dex: parse erc20 abi: %w", err)
	}
	return &V2Router{
		name:     name,
		chainID:  chainID,
		caller:   caller,
		router:   routerAddr,
		abi:      rABI,
		erc20:    eABI,
		decimals: make(map[common.Address]int, 8),
	}, nil
}

// Name returns the venue identifier.
func (v *V2Router) Name() string { return v.name }

// Kind reports the venue class.
func (v *V2Router) Kind() domain.VenueKind { return domain.VenueDEX }

// Quote returns the quote-per-base price for one base unit.
func (v *V2Router) Quote(ctx context.Context, pair domain.Pair) (float64, error) {
	if pair.Chain != v.chainID {
		return 0, fmt.Errorf("dex: %s quotes %s, not %s: %w", v.name, v.chainID, pair.Chain, domain.ErrUnsupportedChain)
	}

	baseAddr, err := chain.TokenAddress(v.chainID, pair.Base)
	if err != nil {
		return 0, fmt.Errorf("dex: %s: resolve %s: %w", v.name, pair.Base, err)
	}
	quoteAddr, err := chain.TokenAddress(v.chainID, pair.Quote)
	if err != nil {
		return 0, fmt.Errorf("dex: %s: resolve %s: %w", v.name, pair.Quote, err)
	}

	baseDec, err := v.fetchDecimals(ctx, baseAddr)
	if err != nil {
		return 0, fmt.Errorf("dex: %s: decimals %s: %w", v.name, pair.Base, err)
	}
	quoteDec, err := v.fetchDecimals(ctx, quoteAddr)
	if err != nil {
		return 0, fmt.Errorf("dex: %s: decimals %s: %w", v.name, pair.Quote, err)
	}

	// Quote exactly one base unit.
	amountIn := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(baseDec)), nil)
	path := []common.Address{baseAddr, quoteAddr}
	data, err := v.abi.Pack("getAmountsOut", amountIn, path)
	if err != nil {
		return 0, fmt.Errorf("dex: %s: pack getAmountsOut: %w", v.name, err)
	}

	raw, err := v.caller.CallContract(ctx, ethereum.CallMsg{To: &v.router, Data: data}, nil)
	if err != nil {
		return 0, fmt.Errorf("dex: %s: getAmountsOut: %w", v.name, err)
	}
	outs, err := v.abi.Methods["getAmountsOut"].Outputs.Unpack(raw)
	if err != nil || len(outs) == 0 {
		return 0, fmt.Errorf("dex: %s: decode getAmountsOut: %w", v.name, err)
	}
	amounts, ok := outs[0].([]*big.Int)
	if !ok || len(amounts) < 2 {
		return 0, fmt.Errorf("dex: %s: unexpected amounts shape", v.name)
	}

	price := toFloat(amounts[len(amounts)-1], quoteDec)
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("dex: %s: %s: %w", v.name, pair, domain.ErrInvalidPrice)
	}
	return price, nil
}

func (v *V2Router) fetchDecimals(ctx context.Context, token common.Address) (int, error) {
	v.decMu.RLock()
	if d, ok := v.decimals[token]; ok {
		v.decMu.RUnlock()
		return d, nil
	}
	v.decMu.RUnlock()

	data, err := v.erc20.Pack("decimals")
	if err != nil {
		return 0, err
	}
	raw, err := v.caller.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return 0, err
	}
	outs, err := v.erc20.Methods["decimals"].Outputs.Unpack(raw)
	if err != nil || len(outs) == 0 {
		return 0, fmt.Errorf("decode decimals: %w", err)
	}

	var d int
	switch x := outs[0].(type) {
	case uint8:
		d = int(x)
	case *big.Int:
		d = int(x.Int64())
	default:
		return 0, fmt.Errorf("unexpected decimals type %T", outs[0])
	}

	v.decMu.Lock()
	v.decimals[token] = d
	v.decMu.Unlock()
	return d, nil
}

// toFloat converts a scaled integer amount to a decimal float using the
// token's decimals.
func toFloat(x *big.Int, decimals int) float64 {
	if x == nil {
		return 0
	}
	f := new(big.Float).SetInt(x)
	div := new(big.Float).SetFloat64(math.Pow10(decimals))
	f.Quo(f, div)
	val, _ := f.Float64()
	return val
}
