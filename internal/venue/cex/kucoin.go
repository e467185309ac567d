package cex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chainarb/arbscan/internal/domain"
)

// KuCoin is the REST client for the KuCoin level-1 orderbook endpoint.
type KuCoin struct {
	baseURL    string
	httpClient *http.Client
}

// NewKuCoin creates a KuCoin ticker client. baseURL is the API root, e.g.
// "https://api.kucoin.com".
func NewKuCoin(baseURL string) *KuCoin {
	return &KuCoin{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Name returns the venue identifier.
func (k *KuCoin) Name() string { return domain.VenueKuCoin }

// Kind reports the venue class.
func (k *KuCoin) Kind() domain.VenueKind { return domain.VenueCEX }

// Quote fetches the last traded price for the pair. KuCoin symbols use a
// dash separator (e.g. ETH-USDT).
func (k *KuCoin) Quote(ctx context.Context, pair domain.Pair) (float64, error) {
	symbol := pair.Base + "-" + pair.Quote
	u := fmt.Sprintf("%s/api/v1/market/orderbook/level1?symbol=%s", k.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("kucoin: create request: %w", err)
	}

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("kucoin: ticker %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("kucoin: ticker %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var body struct {
		Data struct {
			Price string `json:"price"`
			Time  int64  `json:"time"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("kucoin: decode ticker %s: %w", symbol, err)
	}

	price, err := strconv.ParseFloat(body.Data.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("kucoin: parse price %q: %w", body.Data.Price, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("kucoin: ticker %s: %w", symbol, domain.ErrInvalidPrice)
	}
	return price, nil
}
