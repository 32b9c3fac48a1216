package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side order direction, named as on the exchange.
type Side string

const (
	// SideBuy bid.
	SideBuy Side = "bid"
	// SideSell ask.
	SideSell Side = "ask"
)

// String returns a human-readable side.
func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// OrderState exchange order lifecycle state.
type OrderState string

const (
	OrderStateWait   OrderState = "wait"
	OrderStateWatch  OrderState = "watch"
	OrderStateDone   OrderState = "done"
	OrderStateCancel OrderState = "cancel"
)

// Order limit order as reported by the exchange.
type Order struct {
	ID        string
	Market    Market
	Side      Side
	Price     decimal.Decimal
	Quantity  decimal.Decimal
	Remaining decimal.Decimal
	State     OrderState
	CreatedAt time.Time
}

// String returns a human-readable string representation.
func (o *Order) String() string {
	return fmt.Sprintf("%s %s %s@%s (%s)", o.Market.String(), o.Side.String(), o.Quantity.String(), o.Price.String(), o.State)
}
