package domain

// VenueKind classifies a quoting venue.
type VenueKind string

const (
	VenueCEX VenueKind = "CEX"
	VenueDEX VenueKind = "DEX"
)

// Venue identifiers for the known venue set. Adapters are selected per chain
// through the venue registry rather than ad hoc branching.
const (
	VenueBinance   = "Binance"
	VenueKuCoin    = "KuCoin"
	VenueKraken    = "Kraken"
	VenueUniswapV2 = "UniswapV2"
	VenuePancakeV2 = "PancakeV2"
	VenueQuickSwap = "QuickSwap"
	VenueRaydium   = "Raydium"
)

// Quote is a single price observation from one venue at one point in time.
// Price is quote-currency units per one base unit and is always strictly
// positive; adapters fail instead of returning a non-positive price. Quotes
// live for one evaluation cycle and are never mutated.
type Quote struct {
	Venue string    `json:"venue"`
	Chain ChainID   `json:"chain,omitempty"`
	Base  string    `json:"base"`
	Quote string    `json:"quote"`
	Price float64   `json:"price"`
	Kind  VenueKind `json:"kind"`
}
