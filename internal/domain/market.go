// Package domain defines core data structures used throughout the trading bot.
package domain

import (
	"fmt"
	"strings"
)

// Market trading market on the exchange, e.g. KRW-BTC.
type Market struct {
	// Quote currency prices are denominated in.
	Quote string
	// Base asset being traded.
	Base string
}

// NewMarket builds a market for the base asset quoted in quote.
func NewMarket(quote, base string) Market {
	return Market{Quote: strings.ToUpper(quote), Base: strings.ToUpper(base)}
}

// ParseMarket parses exchange market code in QUOTE-BASE form.
func ParseMarket(code string) (Market, error) {
	parts := strings.Split(code, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Market{}, fmt.Errorf("invalid market code %q, expected QUOTE-BASE", code)
	}
	return NewMarket(parts[0], parts[1]), nil
}

// String returns the exchange market code.
func (m Market) String() string {
	return fmt.Sprintf("%s-%s", m.Quote, m.Base)
}

// IsZero reports whether the market is unset.
func (m Market) IsZero() bool {
	return m.Quote == "" && m.Base == ""
}
