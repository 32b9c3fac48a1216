package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/vadiminshakov/marti-upbit/internal/clients"
	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

const candleTimeLayout = "2006-01-02T15:04:05"

// UpbitKlineProvider implements KlineProvider for Upbit.
type UpbitKlineProvider struct {
	client *clients.UpbitClient
}

// NewUpbitKlineProvider creates a new Upbit kline provider.
func NewUpbitKlineProvider(client *clients.UpbitClient) *UpbitKlineProvider {
	return &UpbitKlineProvider{client: client}
}

// GetDailyCandles fetches daily candles from Upbit.
func (p *UpbitKlineProvider) GetDailyCandles(ctx context.Context, market domain.Market, count int) ([]domain.Candle, error) {
	raw, err := p.client.DayCandles(ctx, market.String(), count)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch daily candles for %s", market.String())
	}

	// upbit sends newest first
	result := make([]domain.Candle, len(raw))
	for i, k := range raw {
		if !k.TradePrice.IsPositive() || !k.HighPrice.IsPositive() || !k.LowPrice.IsPositive() {
			return nil, domain.NewExchangeError(domain.KindInvalidData, "candles",
				fmt.Errorf("candle %d for %s has missing prices", i, market.String()))
		}

		ts, err := time.Parse(candleTimeLayout, k.CandleDateTimeUTC)
		if err != nil {
			return nil, domain.NewExchangeError(domain.KindInvalidData, "candles",
				errors.Wrapf(err, "failed to parse candle time at index %d", i))
		}

		result[len(raw)-1-i] = domain.Candle{
			Open:   k.OpeningPrice,
			High:   k.HighPrice,
			Low:    k.LowPrice,
			Close:  k.TradePrice,
			Volume: k.CandleAccTradeVolume,
			Time:   ts,
		}
	}

	return result, nil
}

// ListMarkets returns markets quoted in quote.
func (p *UpbitKlineProvider) ListMarkets(ctx context.Context, quote string) ([]domain.Market, error) {
	raw, err := p.client.Markets(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list markets")
	}

	prefix := strings.ToUpper(quote) + "-"
	markets := make([]domain.Market, 0, len(raw))
	for _, m := range raw {
		if !strings.HasPrefix(m.Market, prefix) {
			continue
		}
		market, err := domain.ParseMarket(m.Market)
		if err != nil {
			return nil, domain.NewExchangeError(domain.KindInvalidData, "markets", err)
		}
		markets = append(markets, market)
	}

	return markets, nil
}

// compile-time check
var _ KlineProvider = (*UpbitKlineProvider)(nil)
