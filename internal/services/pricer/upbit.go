package pricer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/marti-upbit/internal/clients"
	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

type UpbitPricer struct {
	client *clients.UpbitClient
}

func NewUpbitPricer(client *clients.UpbitClient) *UpbitPricer {
	return &UpbitPricer{client: client}
}

// GetPrice returns the last trade price. An empty or non-positive ticker is invalid data.
func (p *UpbitPricer) GetPrice(ctx context.Context, market domain.Market) (decimal.Decimal, error) {
	tickers, err := p.client.Tickers(ctx, market.String())
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "failed to get ticker for %s", market.String())
	}

	if len(tickers) == 0 || !tickers[0].TradePrice.IsPositive() {
		return decimal.Zero, domain.NewExchangeError(domain.KindInvalidData, "price",
			fmt.Errorf("upbit API returned empty price for %s", market.String()))
	}

	return tickers[0].TradePrice, nil
}

var _ Pricer = (*UpbitPricer)(nil)
