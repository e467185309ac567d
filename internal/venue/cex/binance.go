// Package cex implements centralized-exchange quote sources. Each adapter
// wraps one public ticker endpoint; none require authentication. Adapters
// return an error for any non-positive price so the aggregator never sees an
// invalid quote.
package cex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chainarb/arbscan/internal/domain"
)

// defaultTimeout bounds each ticker request independently of the caller's
// context.
const defaultTimeout = 10 * time.Second

// Binance is the REST client for the Binance public ticker API. It also
// serves as the native-asset USD reference feed for the cost oracle.
type Binance struct {
	baseURL    string
	httpClient *http.Client
}

// NewBinance creates a Binance ticker client. baseURL is the API root, e.g.
// "https://api.binance.com".
func NewBinance(baseURL string) *Binance {
	return &Binance{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Name returns the venue identifier.
func (b *Binance) Name() string { return domain.VenueBinance }

// Kind reports the venue class.
func (b *Binance) Kind() domain.VenueKind { return domain.VenueCEX }

// Quote fetches the current price for the pair. Binance symbols concatenate
// base and quote (e.g. ETHUSDT).
func (b *Binance) Quote(ctx context.Context, pair domain.Pair) (float64, error) {
	return b.tickerPrice(ctx, pair.Base+pair.Quote)
}

// NativeUSD returns the USD price of a chain's native asset using the
// <symbol>USDT ticker.
func (b *Binance) NativeUSD(ctx context.Context, symbol string) (float64, error) {
	return b.tickerPrice(ctx, symbol+"USDT")
}

func (b *Binance) tickerPrice(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", b.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("binance: create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("binance: ticker %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("binance: ticker %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var body struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("binance: decode ticker %s: %w", symbol, err)
	}

	price, err := strconv.ParseFloat(body.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("binance: parse price %q: %w", body.Price, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("binance: ticker %s: %w", symbol, domain.ErrInvalidPrice)
	}
	return price, nil
}
