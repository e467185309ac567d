// Package domain defines the core data model for the arbitrage scanner:
// trading pairs, venue quotes, scored opportunities, execution records, and
// the store/cache/bus interfaces that infrastructure packages implement.
package domain

import "fmt"

// ChainID identifies a supported blockchain network. The set is closed;
// venue adapters and the chain registry are keyed on it.
type ChainID string

const (
	ChainEthereum ChainID = "ethereum"
	ChainBSC      ChainID = "bsc"
	ChainPolygon  ChainID = "polygon"
	ChainSolana   ChainID = "solana"
)

// Chains lists every supported chain.
var Chains = []ChainID{ChainEthereum, ChainBSC, ChainPolygon, ChainSolana}

// Valid reports whether the chain id is one of the supported chains.
func (c ChainID) Valid() bool {
	switch c {
	case ChainEthereum, ChainBSC, ChainPolygon, ChainSolana:
		return true
	}
	return false
}

// Pair is one scanning unit: a base/quote symbol pair anchored to the chain
// whose DEX venues can quote it. Identity is (Base, Quote, Chain).
type Pair struct {
	Base  string  `json:"base" toml:"base"`
	Quote string  `json:"quote" toml:"quote"`
	Chain ChainID `json:"chain" toml:"chain"`
}

// String renders the pair as "ETH/USDT@ethereum".
func (p Pair) String() string {
	return fmt.Sprintf("%s/%s@%s", p.Base, p.Quote, p.Chain)
}
