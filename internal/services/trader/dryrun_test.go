package trader

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

type stubReader struct {
	reads int
}

func (s *stubReader) OpenOrders(context.Context, domain.OrderState) ([]domain.Order, error) {
	s.reads++
	return []domain.Order{{ID: "live"}}, nil
}

func (s *stubReader) Balances(context.Context) ([]domain.Position, error) {
	s.reads++
	return nil, nil
}

func (s *stubReader) Balance(context.Context, string) (decimal.Decimal, error) {
	s.reads++
	return decimal.NewFromInt(1000000), nil
}

func TestDryRunTrader(t *testing.T) {
	reader := &stubReader{}
	trader := NewDryRunTrader(reader, zap.NewNop())
	ctx := context.Background()

	orders, err := trader.OpenOrders(ctx, domain.OrderStateWait)
	require.NoError(t, err)
	assert.Equal(t, "live", orders[0].ID)

	balance, err := trader.Balance(ctx, "KRW")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000000).Equal(balance))
	assert.Equal(t, 2, reader.reads)

	order, err := trader.PlaceBuyLimitOrder(ctx, domain.NewMarket("KRW", "ETH"), decimal.RequireFromString("500.05"), decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.SideBuy, order.Side)
	assert.True(t, decimal.NewFromInt(500).Equal(order.Price))

	require.NoError(t, trader.CancelOrder(ctx, "any"))
	assert.Equal(t, 2, reader.reads, "writes must not touch the account")
}
