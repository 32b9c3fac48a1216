// Package indicators provides technical analysis indicators for trading strategies:
// simple moving averages and classic pivot levels, both in exact decimal arithmetic.
package indicators

import (
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

var two = decimal.NewFromInt(2)

// SMA returns the arithmetic mean of the last period closes.
// The second result is false when fewer than period closes are available.
func SMA(closes []decimal.Decimal, period int) (decimal.Decimal, bool) {
	if period <= 0 || len(closes) < period {
		return decimal.Zero, false
	}

	window := closes[len(closes)-period:]
	return decimal.Avg(window[0], window[1:]...), true
}

// PivotLevels first-order pivot point levels for one candle.
type PivotLevels struct {
	Pivot      decimal.Decimal
	Resistance decimal.Decimal
	Support    decimal.Decimal
}

// Pivots returns pivot = (H+L+C)/3, resistance = 2*pivot - L, support = 2*pivot - H.
func Pivots(c domain.Candle) PivotLevels {
	pivot := c.Pivot()
	return PivotLevels{
		Pivot:      pivot,
		Resistance: pivot.Mul(two).Sub(c.Low),
		Support:    pivot.Mul(two).Sub(c.High),
	}
}
