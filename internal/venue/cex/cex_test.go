package cex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainarb/arbscan/internal/domain"
)

var ethUSDT = domain.Pair{Base: "ETH", Quote: "USDT", Chain: domain.ChainEthereum}

func TestBinanceQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		assert.Equal(t, "ETHUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbol":"ETHUSDT","price":"3000.50"}`))
	}))
	defer srv.Close()

	b := NewBinance(srv.URL)
	price, err := b.Quote(context.Background(), ethUSDT)
	require.NoError(t, err)
	assert.Equal(t, 3000.50, price)
}

func TestBinanceNativeUSD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BNBUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbol":"BNBUSDT","price":"600"}`))
	}))
	defer srv.Close()

	b := NewBinance(srv.URL)
	price, err := b.NativeUSD(context.Background(), "BNB")
	require.NoError(t, err)
	assert.Equal(t, 600.0, price)
}

func TestBinanceRejectsNonPositivePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"ETHUSDT","price":"0"}`))
	}))
	defer srv.Close()

	_, err := NewBinance(srv.URL).Quote(context.Background(), ethUSDT)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestBinanceUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := NewBinance(srv.URL).Quote(context.Background(), ethUSDT)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 418")
}

func TestKuCoinQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/market/orderbook/level1", r.URL.Path)
		assert.Equal(t, "ETH-USDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"code":"200000","data":{"price":"2998.1","time":1700000000000}}`))
	}))
	defer srv.Close()

	k := NewKuCoin(srv.URL)
	price, err := k.Quote(context.Background(), ethUSDT)
	require.NoError(t, err)
	assert.Equal(t, 2998.1, price)
}

func TestKuCoinMissingPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"200000","data":{}}`))
	}))
	defer srv.Close()

	_, err := NewKuCoin(srv.URL).Quote(context.Background(), ethUSDT)
	assert.Error(t, err)
}

func TestKrakenQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/0/public/Ticker", r.URL.Path)
		assert.Equal(t, "ETHUSDT", r.URL.Query().Get("pair"))
		w.Write([]byte(`{"error":[],"result":{"ETHUSDT":{"c":["3001.2","0.5"]}}}`))
	}))
	defer srv.Close()

	k := NewKraken(srv.URL)
	price, err := k.Quote(context.Background(), ethUSDT)
	require.NoError(t, err)
	assert.Equal(t, 3001.2, price)
}

func TestKrakenMapsBTCToXBT(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "XBTUSDT", r.URL.Query().Get("pair"))
		w.Write([]byte(`{"error":[],"result":{"XBTUSDT":{"c":["65000.0","0.1"]}}}`))
	}))
	defer srv.Close()

	k := NewKraken(srv.URL)
	price, err := k.Quote(context.Background(), domain.Pair{Base: "BTC", Quote: "USDT", Chain: domain.ChainEthereum})
	require.NoError(t, err)
	assert.Equal(t, 65000.0, price)
}

func TestKrakenReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":["EQuery:Unknown asset pair"],"result":{}}`))
	}))
	defer srv.Close()

	_, err := NewKraken(srv.URL).Quote(context.Background(), ethUSDT)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown asset pair")
}

func TestKrakenEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":[],"result":{}}`))
	}))
	defer srv.Close()

	_, err := NewKraken(srv.URL).Quote(context.Background(), ethUSDT)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty result")
}
