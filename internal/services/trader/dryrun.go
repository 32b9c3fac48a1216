package trader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

// accountReader read side of the exchange account.
type accountReader interface {
	OpenOrders(ctx context.Context, state domain.OrderState) ([]domain.Order, error)
	Balances(ctx context.Context) ([]domain.Position, error)
	Balance(ctx context.Context, currency string) (decimal.Decimal, error)
}

// DryRunTrader reads the live account but only logs order placement and cancellation.
type DryRunTrader struct {
	reader accountReader
	logger *zap.Logger
	now    func() time.Time
}

// NewDryRunTrader creates a trader that never writes to the exchange.
func NewDryRunTrader(reader accountReader, logger *zap.Logger) *DryRunTrader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRunTrader{reader: reader, logger: logger, now: time.Now}
}

func (t *DryRunTrader) OpenOrders(ctx context.Context, state domain.OrderState) ([]domain.Order, error) {
	return t.reader.OpenOrders(ctx, state)
}

func (t *DryRunTrader) Balances(ctx context.Context) ([]domain.Position, error) {
	return t.reader.Balances(ctx)
}

func (t *DryRunTrader) Balance(ctx context.Context, currency string) (decimal.Decimal, error) {
	return t.reader.Balance(ctx, currency)
}

func (t *DryRunTrader) CancelOrder(_ context.Context, id string) error {
	t.logger.Info("dry run: cancel order", zap.String("order_id", id))
	return nil
}

func (t *DryRunTrader) PlaceBuyLimitOrder(_ context.Context, market domain.Market, price, quantity decimal.Decimal) (*domain.Order, error) {
	return t.simulate(market, domain.SideBuy, price, quantity), nil
}

func (t *DryRunTrader) PlaceSellLimitOrder(_ context.Context, market domain.Market, price, quantity decimal.Decimal) (*domain.Order, error) {
	return t.simulate(market, domain.SideSell, price, quantity), nil
}

func (t *DryRunTrader) simulate(market domain.Market, side domain.Side, price, quantity decimal.Decimal) *domain.Order {
	order := &domain.Order{
		ID:        uuid.NewString(),
		Market:    market,
		Side:      side,
		Price:     RoundToTick(price),
		Quantity:  RoundVolume(quantity),
		Remaining: RoundVolume(quantity),
		State:     domain.OrderStateWait,
		CreatedAt: t.now(),
	}

	t.logger.Info("dry run: place order",
		zap.String("market", market.String()),
		zap.String("side", side.String()),
		zap.String("price", order.Price.String()),
		zap.String("quantity", order.Quantity.String()))

	return order
}
