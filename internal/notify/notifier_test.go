package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainarb/arbscan/internal/domain"
)

type recordingSender struct {
	name   string
	titles []string
	err    error
}

func (r *recordingSender) Send(_ context.Context, title, _ string) error {
	if r.err != nil {
		return r.err
	}
	r.titles = append(r.titles, title)
	return nil
}

func (r *recordingSender) Name() string { return r.name }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifyDeliversToAllSenders(t *testing.T) {
	a := &recordingSender{name: "a"}
	b := &recordingSender{name: "b"}
	n := NewNotifier([]Sender{a, b}, nil, testLogger())

	require.NoError(t, n.Notify(context.Background(), EventOpportunityFound, "hi", "body"))
	assert.Equal(t, []string{"hi"}, a.titles)
	assert.Equal(t, []string{"hi"}, b.titles)
}

func TestNotifyFiltersEvents(t *testing.T) {
	a := &recordingSender{name: "a"}
	n := NewNotifier([]Sender{a}, []string{EventTradeRecorded}, testLogger())

	require.NoError(t, n.Notify(context.Background(), EventOpportunityFound, "filtered", "x"))
	assert.Empty(t, a.titles)

	require.NoError(t, n.Notify(context.Background(), EventTradeRecorded, "kept", "x"))
	assert.Equal(t, []string{"kept"}, a.titles)
}

func TestNotifyCollectsSenderFailures(t *testing.T) {
	bad := &recordingSender{name: "bad", err: errors.New("down")}
	good := &recordingSender{name: "good"}
	n := NewNotifier([]Sender{bad, good}, nil, testLogger())

	err := n.Notify(context.Background(), EventError, "t", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad: down")
	assert.Equal(t, []string{"t"}, good.titles, "one bad channel must not block the rest")
}

func TestDiscordSender(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, jsonDecode(r, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscordSender(srv.URL)
	require.NoError(t, d.Send(context.Background(), "Title", "Body"))
	assert.Equal(t, "**Title**\nBody", got["content"])
}

func TestDiscordSenderSurfacesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewDiscordSender(srv.URL).Send(context.Background(), "t", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFormatOpportunity(t *testing.T) {
	s := FormatOpportunity(domain.Opportunity{
		Base: "ETH", Quote: "USDT", Chain: domain.ChainEthereum,
		BuyOn: domain.VenueBinance, SellOn: domain.VenueUniswapV2,
		BuyPrice: 3000, SellPrice: 3015,
		DiffPct: 0.5, EstProfitUSD: -9.0, SizeQuote: 1000,
	})
	assert.Contains(t, s, "ETH/USDT on ethereum")
	assert.Contains(t, s, "spread 0.50%")
	assert.Contains(t, s, "est profit $-9.00")
}

func TestFormatExecution(t *testing.T) {
	s := FormatExecution(domain.ExecutionRecord{
		Base: "ETH", Quote: "USDT",
		BuyOn: domain.VenueBinance, SellOn: domain.VenueUniswapV2,
		DryRun: true, PnLUSD: 12.34, FeesUSD: 9, GasUSD: 5,
	})
	assert.Contains(t, s, "(dry-run)")
	assert.Contains(t, s, "pnl $12.34")
}

// jsonDecode keeps the handler bodies short.
func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
