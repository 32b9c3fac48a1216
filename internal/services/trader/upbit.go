package trader

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/marti-upbit/internal/clients"
	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

type UpbitTrader struct {
	client *clients.UpbitClient
}

func NewUpbitTrader(client *clients.UpbitClient) *UpbitTrader {
	return &UpbitTrader{client: client}
}

// OpenOrders returns open orders in the given state.
func (t *UpbitTrader) OpenOrders(ctx context.Context, state domain.OrderState) ([]domain.Order, error) {
	raw, err := t.client.OpenOrders(ctx, string(state))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s orders", state)
	}

	orders := make([]domain.Order, 0, len(raw))
	for _, o := range raw {
		// an order with an unreadable market can still be cancelled by its uuid
		order, err := toDomainOrder(o)
		if err != nil && order.ID == "" {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// CancelOrder cancels a single order.
func (t *UpbitTrader) CancelOrder(ctx context.Context, id string) error {
	if _, err := t.client.CancelOrder(ctx, id); err != nil {
		return errors.Wrapf(err, "failed to cancel order %s", id)
	}
	return nil
}

// Balances returns every currency held by the account.
func (t *UpbitTrader) Balances(ctx context.Context) ([]domain.Position, error) {
	accounts, err := t.client.Accounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get upbit balances")
	}

	positions := make([]domain.Position, 0, len(accounts))
	for _, a := range accounts {
		positions = append(positions, domain.Position{
			Currency:      a.Currency,
			Quantity:      a.Balance,
			Locked:        a.Locked,
			AvgEntryPrice: a.AvgBuyPrice,
			UnitCurrency:  a.UnitCurrency,
		})
	}
	return positions, nil
}

// Balance returns the free balance of currency, zero when not held.
func (t *UpbitTrader) Balance(ctx context.Context, currency string) (decimal.Decimal, error) {
	positions, err := t.Balances(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	for _, p := range positions {
		if strings.EqualFold(p.Currency, currency) {
			return p.Quantity, nil
		}
	}
	return decimal.Zero, nil
}

// PlaceBuyLimitOrder places a bid at price for quantity.
func (t *UpbitTrader) PlaceBuyLimitOrder(ctx context.Context, market domain.Market, price, quantity decimal.Decimal) (*domain.Order, error) {
	return t.placeLimitOrder(ctx, market, domain.SideBuy, price, quantity)
}

// PlaceSellLimitOrder places an ask at price for quantity.
func (t *UpbitTrader) PlaceSellLimitOrder(ctx context.Context, market domain.Market, price, quantity decimal.Decimal) (*domain.Order, error) {
	return t.placeLimitOrder(ctx, market, domain.SideSell, price, quantity)
}

func (t *UpbitTrader) placeLimitOrder(ctx context.Context, market domain.Market, side domain.Side,
	price, quantity decimal.Decimal) (*domain.Order, error) {
	price = RoundToTick(price)
	quantity = RoundVolume(quantity)
	if !price.IsPositive() || !quantity.IsPositive() {
		return nil, domain.NewExchangeError(domain.KindInvalidData, "place order",
			fmt.Errorf("%s %s order has non-positive price %s or quantity %s", market.String(), side, price, quantity))
	}

	raw, err := t.client.CreateLimitOrder(ctx, clients.UpbitOrderRequest{
		Market: market.String(),
		Side:   string(side),
		Volume: quantity.String(),
		Price:  price.String(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to place %s order for %s", side, market.String())
	}

	order, err := toDomainOrder(raw)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func toDomainOrder(o clients.UpbitOrder) (domain.Order, error) {
	order := domain.Order{
		ID:        o.UUID,
		Side:      domain.Side(o.Side),
		Price:     o.Price.Decimal,
		Quantity:  o.Volume.Decimal,
		Remaining: o.RemainingVolume.Decimal,
		State:     domain.OrderState(o.State),
		CreatedAt: o.CreatedAt,
	}

	market, err := domain.ParseMarket(o.Market)
	if err != nil {
		return order, domain.NewExchangeError(domain.KindInvalidData, "order", err)
	}
	order.Market = market
	return order, nil
}
