package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderAction what happened to an order.
type OrderAction string

const (
	OrderActionPlaced    OrderAction = "placed"
	OrderActionCancelled OrderAction = "cancelled"
	OrderActionFailed    OrderAction = "failed"
)

// OrderEvent audit record of an order command issued by the bot.
type OrderEvent struct {
	ID       string          `json:"id"`
	Time     time.Time       `json:"ts"`
	Gate     string          `json:"gate"`
	Action   OrderAction     `json:"action"`
	OrderID  string          `json:"order_id,omitempty"`
	Market   string          `json:"market,omitempty"`
	Side     string          `json:"side,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// OrderEventRecord bundles an event with its journal index.
type OrderEventRecord struct {
	Index uint64
	Event OrderEvent
}
