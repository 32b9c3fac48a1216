package pivot

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
	"github.com/vadiminshakov/marti-upbit/internal/services/market/indicators"
	"github.com/vadiminshakov/marti-upbit/internal/services/trader"
)

const (
	reasonStop       = "stop"
	reasonTakeProfit = "take_profit"
	reasonEntry      = "entry"
)

// ReviewPositions places one exit order per held asset. Below the take profit
// threshold the asset is offered at the previous day's close, above it at the
// pivot resistance of the latest candle. Returns the number of sell orders placed.
func (s *PivotStrategy) ReviewPositions(ctx context.Context) (int, error) {
	positions, err := s.trader.Balances(ctx)
	if err != nil {
		s.logFailure("failed to fetch balances", err)
		return 0, errors.Wrap(err, "fetch balances")
	}

	var (
		placed int
		errs   error
	)
	for _, position := range positions {
		if strings.EqualFold(position.Currency, s.params.Quote) || !position.Held() {
			continue
		}

		ok, err := s.reviewPosition(ctx, position)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if ok {
			placed++
		}
	}

	return placed, errs
}

func (s *PivotStrategy) reviewPosition(ctx context.Context, position domain.Position) (bool, error) {
	market := s.quoteMarket(position.Currency)
	l := s.l.With(zap.String("market", market.String()))

	candles, err := s.klines.GetDailyCandles(ctx, market, 2)
	if err != nil {
		s.logFailure("failed to fetch daily candles", err, zap.String("market", market.String()))
		return false, errors.Wrapf(err, "fetch candles for %s", market)
	}
	recent, ok := domain.LastN(candles, 2)
	if !ok {
		l.Warn("not enough daily candles to review position", zap.Int("candles", len(candles)))
		return false, nil
	}
	previous, latest := recent[0], recent[1]

	rate, err := position.ProfitRate(latest.Close)
	if err != nil {
		l.Warn("skipping position without entry price", zap.String("avg_entry_price", position.AvgEntryPrice.String()))
		return false, nil
	}

	price, reason := previous.Close, reasonStop
	if rate.GreaterThanOrEqual(s.params.TakeProfitPercent) {
		price, reason = indicators.Pivots(latest).Resistance, reasonTakeProfit
		// the exchange floors price to its tick and volume to its precision
		value := trader.RoundVolume(position.Quantity).Mul(trader.RoundToTick(price))
		if !value.GreaterThan(s.params.MinOrderValue) {
			l.Info("take profit order below minimum order value, skipping",
				zap.String("quantity", position.Quantity.String()),
				zap.String("resistance", price.String()),
				zap.String("order_value", value.String()))
			return false, nil
		}
	}

	l.Info("placing exit order",
		zap.String("reason", reason),
		zap.String("profit_rate", rate.StringFixed(2)),
		zap.String("price", price.String()),
		zap.String("quantity", position.Quantity.String()))

	if err := s.sell(ctx, market, price, position.Quantity, reason); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PivotStrategy) sell(ctx context.Context, market domain.Market, price, quantity decimal.Decimal, reason string) error {
	order, err := s.trader.PlaceSellLimitOrder(ctx, market, price, quantity)
	return s.afterPlace(domain.GateReview, market, domain.SideSell, price, quantity, reason, order, err)
}

func (s *PivotStrategy) buy(ctx context.Context, market domain.Market, price, quantity decimal.Decimal) error {
	order, err := s.trader.PlaceBuyLimitOrder(ctx, market, price, quantity)
	return s.afterPlace(domain.GateEntry, market, domain.SideBuy, price, quantity, reasonEntry, order, err)
}

func (s *PivotStrategy) afterPlace(gate domain.Gate, market domain.Market, side domain.Side,
	price, quantity decimal.Decimal, reason string, order *domain.Order, err error) error {
	event := domain.OrderEvent{
		Gate:     gate.String(),
		Market:   market.String(),
		Side:     side.String(),
		Price:    price,
		Quantity: quantity,
		Reason:   reason,
	}

	if err != nil {
		s.logFailure("failed to place order", err,
			zap.String("market", market.String()), zap.String("side", side.String()))
		event.Action = domain.OrderActionFailed
		event.Error = err.Error()
		s.record(event)
		return errors.Wrapf(err, "place %s order for %s", side, market)
	}

	event.Action = domain.OrderActionPlaced
	if order != nil {
		event.OrderID = order.ID
		if order.Price.IsPositive() {
			event.Price = order.Price
		}
		if order.Quantity.IsPositive() {
			event.Quantity = order.Quantity
		}
	}
	s.record(event)
	return nil
}
