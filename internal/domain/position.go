package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ErrZeroEntryPrice returned when a position has no usable average entry price.
var ErrZeroEntryPrice = errors.New("average entry price is zero")

// Position holding of a single asset as reported by the exchange.
type Position struct {
	// Currency asset symbol, e.g. BTC.
	Currency string
	// Quantity free balance available for orders.
	Quantity decimal.Decimal
	// Locked balance reserved by open orders.
	Locked decimal.Decimal
	// AvgEntryPrice average buy price in UnitCurrency.
	AvgEntryPrice decimal.Decimal
	// UnitCurrency currency the average price is expressed in.
	UnitCurrency string
}

// Held reports whether the position has a nonzero free balance.
func (p Position) Held() bool {
	return p.Quantity.GreaterThan(decimal.Zero)
}

// ProfitRate returns (lastClose - avg) / avg * 100.
func (p Position) ProfitRate(lastClose decimal.Decimal) (decimal.Decimal, error) {
	if p.AvgEntryPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrZeroEntryPrice
	}
	return lastClose.Sub(p.AvgEntryPrice).Div(p.AvgEntryPrice).Mul(hundred), nil
}
