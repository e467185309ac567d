package scanner

import (
	"time"

	"github.com/chainarb/arbscan/internal/domain"
)

// Economics holds the fee model applied to every candidate. Percentages are
// whole percent values (0.3 means 0.3%).
type Economics struct {
	MinDiffPct     float64
	SizeQuote      float64
	DexFeePct      float64
	CexTakerFeePct float64
	SlippagePct    float64
}

// feeFrac returns the per-leg fee fraction for a venue kind.
func (e Economics) feeFrac(kind domain.VenueKind) float64 {
	if kind == domain.VenueDEX {
		return e.DexFeePct / 100
	}
	return e.CexTakerFeePct / 100
}

// Evaluate walks every ordered (buy, sell) venue pair from the gathered
// quotes and emits an opportunity for each spread at or above the threshold.
// Net profit may be negative; the gate is the raw spread, not profitability.
//
// gasUSD is the estimated cost of one on-chain swap and is charged only when
// at least one leg is a DEX. Slippage is charged once per opportunity.
func Evaluate(pair domain.Pair, quotes []domain.Quote, eco Economics, gasUSD float64, now time.Time) []domain.Opportunity {
	if len(quotes) < 2 {
		return nil
	}

	var opps []domain.Opportunity
	for _, buy := range quotes {
		for _, sell := range quotes {
			if buy.Venue == sell.Venue || buy.Price >= sell.Price {
				continue
			}
			diffPct := (sell.Price - buy.Price) / buy.Price * 100
			if diffPct < eco.MinDiffPct {
				continue
			}

			feesUSD := eco.SizeQuote * (eco.feeFrac(buy.Kind) + eco.feeFrac(sell.Kind))
			slippageUSD := eco.SizeQuote * eco.SlippagePct / 100

			gas := 0.0
			if buy.Kind == domain.VenueDEX || sell.Kind == domain.VenueDEX {
				gas = gasUSD
			}

			baseAmount := eco.SizeQuote / buy.Price
			gross := (sell.Price - buy.Price) * baseAmount
			estProfit := gross - feesUSD - slippageUSD - gas

			opps = append(opps, domain.Opportunity{
				ID:           domain.OpportunityID(pair, buy.Venue, sell.Venue),
				Base:         pair.Base,
				Quote:        pair.Quote,
				Chain:        pair.Chain,
				BuyOn:        buy.Venue,
				SellOn:       sell.Venue,
				BuyPrice:     buy.Price,
				SellPrice:    sell.Price,
				DiffPct:      diffPct,
				EstProfitUSD: estProfit,
				SizeQuote:    eco.SizeQuote,
				FeesUSD:      feesUSD + slippageUSD,
				GasUSD:       gas,
				SlippagePct:  eco.SlippagePct,
				Timestamp:    now,
			})
		}
	}
	return opps
}
