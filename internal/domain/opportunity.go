package domain

import (
	"fmt"
	"time"
)

// Opportunity is a computed, ranked candidate arbitrage trade between two
// venues for one pair. It is derived from a (buy Quote, sell Quote) pair plus
// configuration, immutable once created, and lives in the snapshot until the
// next completed scan replaces it.
//
// EstProfitUSD may be negative: the discovery gate is on DiffPct, not on net
// profit, so callers can filter on profitability separately.
type Opportunity struct {
	ID           string    `json:"id"`
	Base         string    `json:"base"`
	Quote        string    `json:"quote"`
	Chain        ChainID   `json:"chain"`
	BuyOn        string    `json:"buyOn"`
	SellOn       string    `json:"sellOn"`
	BuyPrice     float64   `json:"buyPrice"`
	SellPrice    float64   `json:"sellPrice"`
	DiffPct      float64   `json:"diffPct"`
	EstProfitUSD float64   `json:"estProfitUsd"`
	SizeQuote    float64   `json:"sizeQuote"`
	FeesUSD      float64   `json:"feesUsd"`
	GasUSD       float64   `json:"gasUsd"`
	SlippagePct  float64   `json:"slippagePct"`
	Timestamp    time.Time `json:"timestamp"`
}

// OpportunityID builds the deterministic id for a (pair, buy venue, sell
// venue) combination. A venue pair appears at most once per direction within
// one scan, so the id is unambiguous for the lifetime of a snapshot.
func OpportunityID(pair Pair, buyVenue, sellVenue string) string {
	return fmt.Sprintf("%s-%s-%s-%s-to-%s", pair.Base, pair.Quote, pair.Chain, buyVenue, sellVenue)
}
