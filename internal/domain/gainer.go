package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Gainer market with its close-to-close change in percent.
type Gainer struct {
	Market Market
	Change decimal.Decimal
}

// RankGainers sorts gainers by descending change and keeps at most limit entries.
// Equal changes keep their input order.
func RankGainers(gainers []Gainer, limit int) []Gainer {
	ranked := make([]Gainer, len(gainers))
	copy(ranked, gainers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Change.GreaterThan(ranked[j].Change)
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CloseChange returns percentage change between the two most recent closes.
func CloseChange(candles []Candle) (decimal.Decimal, bool) {
	last, ok := LastN(candles, 2)
	if !ok {
		return decimal.Zero, false
	}
	prev := last[0].Close
	if prev.IsZero() {
		return decimal.Zero, false
	}
	return last[1].Close.Sub(prev).Div(prev).Mul(hundred), true
}
