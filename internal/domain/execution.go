package domain

import "time"

// ExecutionRecord captures one resolved (simulated) execution of an
// opportunity. Records are append-only: once created they are never mutated,
// and the history log evicts the oldest entries past its capacity.
type ExecutionRecord struct {
	ID        string    `json:"id"`
	Base      string    `json:"base"`
	Quote     string    `json:"quote"`
	Chain     ChainID   `json:"chain"`
	BuyOn     string    `json:"buyOn"`
	SellOn    string    `json:"sellOn"`
	SizeQuote float64   `json:"sizeQuote"`
	PnLUSD    float64   `json:"pnlUsd"`
	FeesUSD   float64   `json:"feesUsd"`
	GasUSD    float64   `json:"gasUsd"`
	Timestamp time.Time `json:"timestamp"`
	DryRun    bool      `json:"dryRun"`
	TxHashes  []string  `json:"txHashes"`
	Notes     string    `json:"notes,omitempty"`
}
