// Package collector provides market data collection utilities:
// daily candles and the list of tradable markets.
package collector

import (
	"context"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

// KlineProvider defines the interface for fetching daily candle data.
type KlineProvider interface {
	// GetDailyCandles returns up to count most recent daily candles ordered oldest to newest.
	// The result may be shorter than requested for young markets.
	GetDailyCandles(ctx context.Context, market domain.Market, count int) ([]domain.Candle, error)
	// ListMarkets returns all markets quoted in quote.
	ListMarkets(ctx context.Context, quote string) ([]domain.Market, error)
}
