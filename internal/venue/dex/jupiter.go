package dex

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chainarb/arbscan/internal/domain"
)

const jupiterTimeout = 10 * time.Second

// solanaMint carries the SPL mint address and decimals for a symbol.
type solanaMint struct {
	address  string
	decimals int
}

var solanaMints = map[string]solanaMint{
	"SOL":  {"So11111111111111111111111111111111111111112", 9},
	"USDT": {"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", 6},
	"USDC": {"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", 6},
}

// Jupiter quotes Solana pairs through the Jupiter aggregator quote API,
// which routes across Raydium and the other Solana AMMs.
type Jupiter struct {
	baseURL    string
	httpClient *http.Client
}

// NewJupiter creates a Jupiter quote client. baseURL is the API root, e.g.
// "https://quote-api.jup.ag".
func NewJupiter(baseURL string) *Jupiter {
	return &Jupiter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: jupiterTimeout},
	}
}

// Name returns the venue identifier.
func (j *Jupiter) Name() string { return domain.VenueRaydium }

// Kind reports the venue class.
func (j *Jupiter) Kind() domain.VenueKind { return domain.VenueDEX }

// Quote asks Jupiter for the output of swapping one base unit into the quote
// token and converts the routed amount to a price.
func (j *Jupiter) Quote(ctx context.Context, pair domain.Pair) (float64, error) {
	if pair.Chain != domain.ChainSolana {
		return 0, fmt.Errorf("dex: jupiter quotes solana, not %s: %w", pair.Chain, domain.ErrUnsupportedChain)
	}
	in, ok := solanaMints[pair.Base]
	if !ok {
		return 0, fmt.Errorf("dex: jupiter: no mint for %s: %w", pair.Base, domain.ErrNoRoute)
	}
	out, ok := solanaMints[pair.Quote]
	if !ok {
		return 0, fmt.Errorf("dex: jupiter: no mint for %s: %w", pair.Quote, domain.ErrNoRoute)
	}

	amountIn := int64(math.Pow10(in.decimals))
	q := url.Values{}
	q.Set("inputMint", in.address)
	q.Set("outputMint", out.address)
	q.Set("amount", strconv.FormatInt(amountIn, 10))
	q.Set("slippageBps", "50")
	u := fmt.Sprintf("%s/v6/quote?%s", j.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("dex: jupiter: create request: %w", err)
	}

	resp, err := j.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("dex: jupiter: quote %s: %w", pair, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("dex: jupiter: quote %s: unexpected status %d", pair, resp.StatusCode)
	}

	var body struct {
		OutAmount string `json:"outAmount"`
		Data      []struct {
			OutAmount string `json:"outAmount"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("dex: jupiter: decode quote %s: %w", pair, err)
	}

	raw := body.OutAmount
	if raw == "" && len(body.Data) > 0 {
		raw = body.Data[0].OutAmount
	}
	if raw == "" {
		return 0, fmt.Errorf("dex: jupiter: quote %s: %w", pair, domain.ErrNoRoute)
	}

	outAmount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("dex: jupiter: parse outAmount %q: %w", raw, err)
	}
	price := float64(outAmount) / math.Pow10(out.decimals)
	if price <= 0 {
		return 0, fmt.Errorf("dex: jupiter: quote %s: %w", pair, domain.ErrInvalidPrice)
	}
	return price, nil
}
