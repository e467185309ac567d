package cex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/chainarb/arbscan/internal/domain"
)

// krakenSymbolMap translates common tickers to Kraken's naming (BTC → XBT).
var krakenSymbolMap = map[string]string{
	"BTC": "XBT",
}

// Kraken is the REST client for the Kraken public ticker API.
type Kraken struct {
	baseURL    string
	httpClient *http.Client
}

// NewKraken creates a Kraken ticker client. baseURL is the API root, e.g.
// "https://api.kraken.com".
func NewKraken(baseURL string) *Kraken {
	return &Kraken{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Name returns the venue identifier.
func (k *Kraken) Name() string { return domain.VenueKraken }

// Kind reports the venue class.
func (k *Kraken) Kind() domain.VenueKind { return domain.VenueCEX }

// Quote fetches the last-trade close price for the pair. Kraken keys the
// result object by its own pair alias, so the first entry is taken.
func (k *Kraken) Quote(ctx context.Context, pair domain.Pair) (float64, error) {
	symbol := krakenPair(pair.Base, pair.Quote)
	u := fmt.Sprintf("%s/0/public/Ticker?pair=%s", k.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("kraken: create request: %w", err)
	}

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("kraken: ticker %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("kraken: ticker %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var body struct {
		Error  []string `json:"error"`
		Result map[string]struct {
			C []string `json:"c"` // [last trade close price, lot volume]
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("kraken: decode ticker %s: %w", symbol, err)
	}
	if len(body.Error) > 0 {
		return 0, fmt.Errorf("kraken: ticker %s: %s", symbol, strings.Join(body.Error, "; "))
	}

	for _, entry := range body.Result {
		if len(entry.C) == 0 {
			break
		}
		price, err := strconv.ParseFloat(entry.C[0], 64)
		if err != nil {
			return 0, fmt.Errorf("kraken: parse price %q: %w", entry.C[0], err)
		}
		if price <= 0 {
			return 0, fmt.Errorf("kraken: ticker %s: %w", symbol, domain.ErrInvalidPrice)
		}
		return price, nil
	}
	return 0, fmt.Errorf("kraken: ticker %s: empty result", symbol)
}

// krakenPair maps base/quote symbols onto Kraken's pair naming.
func krakenPair(base, quote string) string {
	if mapped, ok := krakenSymbolMap[base]; ok {
		base = mapped
	}
	if mapped, ok := krakenSymbolMap[quote]; ok {
		quote = mapped
	}
	return base + quote
}
