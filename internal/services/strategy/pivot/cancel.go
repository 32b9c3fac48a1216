package pivot

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

// CancelStaleOrders cancels every waiting order one by one. A failed cancel is
// logged and the rest are still attempted; the combined error is returned for reporting.
func (s *PivotStrategy) CancelStaleOrders(ctx context.Context) (int, error) {
	orders, err := s.trader.OpenOrders(ctx, domain.OrderStateWait)
	if err != nil {
		s.logFailure("failed to list open orders", err)
		return 0, errors.Wrap(err, "list open orders")
	}

	var (
		cancelled int
		errs      error
	)
	for _, order := range orders {
		event := domain.OrderEvent{
			Gate:     domain.GateCancel.String(),
			OrderID:  order.ID,
			Market:   order.Market.String(),
			Side:     order.Side.String(),
			Price:    order.Price,
			Quantity: order.Remaining,
		}

		if err := s.trader.CancelOrder(ctx, order.ID); err != nil {
			s.logFailure("failed to cancel order", err, zap.String("order_id", order.ID), zap.String("market", order.Market.String()))
			event.Action = domain.OrderActionFailed
			event.Error = err.Error()
			s.record(event)
			errs = multierr.Append(errs, err)
			continue
		}

		event.Action = domain.OrderActionCancelled
		s.record(event)
		cancelled++
	}

	return cancelled, errs
}
