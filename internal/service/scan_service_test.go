package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainarb/arbscan/internal/bus"
	"github.com/chainarb/arbscan/internal/domain"
	"github.com/chainarb/arbscan/internal/scanner"
	"github.com/chainarb/arbscan/internal/snapshot"
	"github.com/chainarb/arbscan/internal/venue"
)

type fakeSource struct {
	name  string
	kind  domain.VenueKind
	price float64
}

func (f *fakeSource) Name() string           { return f.name }
func (f *fakeSource) Kind() domain.VenueKind { return f.kind }
func (f *fakeSource) Quote(context.Context, domain.Pair) (float64, error) {
	return f.price, nil
}

type fixedGas float64

func (f fixedGas) SwapCostUSD(context.Context, domain.ChainID) float64 { return float64(f) }

func newScanFixture(t *testing.T, mem *bus.Memory) (*ScanService, *snapshot.Store) {
	t.Helper()

	reg := venue.NewRegistry()
	reg.RegisterGlobal(&fakeSource{name: domain.VenueBinance, kind: domain.VenueCEX, price: 3000})
	reg.RegisterChain(domain.ChainEthereum, &fakeSource{name: domain.VenueUniswapV2, kind: domain.VenueDEX, price: 3060})

	snap := snapshot.NewStore()
	pairs := []domain.Pair{{Base: "ETH", Quote: "USDT", Chain: domain.ChainEthereum}}
	eco := scanner.Economics{
		MinDiffPct:     0.5,
		SizeQuote:      1000,
		DexFeePct:      0.3,
		CexTakerFeePct: 0.1,
		SlippagePct:    0.5,
	}
	agg := scanner.NewAggregator(reg, time.Second, testLogger())
	sc := scanner.New(agg, fixedGas(5), snap, pairs, eco, 50, testLogger())

	return NewScanService(sc, snap, mem, nil, nil, testLogger()), snap
}

func TestScanPublishesRankedSet(t *testing.T) {
	mem := bus.NewMemory()
	svc, snap := newScanFixture(t, mem)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := mem.Subscribe(ctx, domain.ChannelOpportunities)
	require.NoError(t, err)

	ranked, err := svc.Scan(ctx, scanner.Overrides{})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, ranked, snap.List())

	select {
	case payload := <-ch:
		var got []domain.Opportunity
		require.NoError(t, json.Unmarshal(payload, &got))
		require.Len(t, got, 1)
		assert.Equal(t, ranked[0].ID, got[0].ID)
	case <-time.After(time.Second):
		t.Fatal("ranked set not published")
	}
}

func TestSnapshotDoesNotRescan(t *testing.T) {
	svc, snap := newScanFixture(t, bus.NewMemory())

	assert.Empty(t, svc.Snapshot())

	_, err := svc.Scan(context.Background(), scanner.Overrides{})
	require.NoError(t, err)

	got := svc.Snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, snap.List(), got)
}
