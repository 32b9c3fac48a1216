package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var three = decimal.NewFromInt(3)

// Candle daily OHLC candlestick.
type Candle struct {
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
	// Time is the candle start in exchange time.
	Time time.Time
}

// Pivot returns the classic pivot point (high+low+close)/3.
func (c Candle) Pivot() decimal.Decimal {
	return c.High.Add(c.Low).Add(c.Close).Div(three)
}

// Closes extracts close prices preserving order.
func Closes(candles []Candle) []decimal.Decimal {
	closes := make([]decimal.Decimal, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// LastN returns the n most recent candles, or false when fewer are available.
func LastN(candles []Candle, n int) ([]Candle, bool) {
	if n <= 0 || len(candles) < n {
		return nil, false
	}
	return candles[len(candles)-n:], true
}
