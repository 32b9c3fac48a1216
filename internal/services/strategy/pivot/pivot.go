// Package pivot implements the daily open routine: stale order cancellation,
// pivot-based position exits and trend-filtered entries into the top gainers.
package pivot

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

// ErrNoData returned when the exchange has fewer candles than a computation needs.
var ErrNoData = errors.New("not enough market data")

type pricer interface {
	GetPrice(ctx context.Context, market domain.Market) (decimal.Decimal, error)
}

type klineProvider interface {
	GetDailyCandles(ctx context.Context, market domain.Market, count int) ([]domain.Candle, error)
	ListMarkets(ctx context.Context, quote string) ([]domain.Market, error)
}

type tradersvc interface {
	OpenOrders(ctx context.Context, state domain.OrderState) ([]domain.Order, error)
	CancelOrder(ctx context.Context, id string) error
	Balances(ctx context.Context) ([]domain.Position, error)
	Balance(ctx context.Context, currency string) (decimal.Decimal, error)
	PlaceBuyLimitOrder(ctx context.Context, market domain.Market, price, quantity decimal.Decimal) (*domain.Order, error)
	PlaceSellLimitOrder(ctx context.Context, market domain.Market, price, quantity decimal.Decimal) (*domain.Order, error)
}

type journal interface {
	Append(event domain.OrderEvent) error
}

// Params tunables of the routine.
type Params struct {
	// Quote currency of every traded market.
	Quote string
	// Benchmark asset used by the trend filter.
	Benchmark string
	// ShortMAPeriods price must beat at least one of these averages.
	ShortMAPeriods []int
	// LongMAPeriod price must beat this average.
	LongMAPeriod int
	// TopGainers number of gainers bought per day.
	TopGainers int
	// TakeProfitPercent profit rate at which exits move to the resistance level.
	TakeProfitPercent decimal.Decimal
	// MinOrderValue smallest notional the exchange accepts.
	MinOrderValue decimal.Decimal
	// SizingDivisor fraction of the quote balance spent per gainer is 1/SizingDivisor.
	SizingDivisor decimal.Decimal
}

// DefaultParams KRW market, BTC benchmark, MA 2/4/8 over 120, six gainers,
// 10% take profit, 5000 KRW minimum order and 1/1000 of the balance per buy.
func DefaultParams() Params {
	return Params{
		Quote:             "KRW",
		Benchmark:         "BTC",
		ShortMAPeriods:    []int{2, 4, 8},
		LongMAPeriod:      120,
		TopGainers:        6,
		TakeProfitPercent: decimal.NewFromInt(10),
		MinOrderValue:     decimal.NewFromInt(5000),
		SizingDivisor:     decimal.NewFromInt(1000),
	}
}

// Validate checks the params are usable.
func (p Params) Validate() error {
	if p.Quote == "" || p.Benchmark == "" {
		return fmt.Errorf("quote and benchmark currencies are required")
	}
	if len(p.ShortMAPeriods) == 0 {
		return fmt.Errorf("at least one short moving average period is required")
	}
	for _, period := range append(append([]int{}, p.ShortMAPeriods...), p.LongMAPeriod) {
		if period < 1 {
			return fmt.Errorf("moving average periods must be positive, got %d", period)
		}
	}
	if p.TopGainers < 1 {
		return fmt.Errorf("top gainers must be at least 1, got %d", p.TopGainers)
	}
	if p.MinOrderValue.IsNegative() {
		return fmt.Errorf("min order value must not be negative, got %s", p.MinOrderValue)
	}
	if !p.SizingDivisor.IsPositive() {
		return fmt.Errorf("sizing divisor must be positive, got %s", p.SizingDivisor)
	}
	return nil
}

// PivotStrategy the daily trading routine. It keeps no state between calls:
// every action re-reads the exchange.
type PivotStrategy struct {
	params  Params
	pricer  pricer
	klines  klineProvider
	trader  tradersvc
	journal journal
	l       *zap.Logger
	now     func() time.Time
}

// NewPivotStrategy returns a configured routine. journal may be nil.
func NewPivotStrategy(l *zap.Logger, params Params, pricer pricer, klines klineProvider, trader tradersvc,
	journal journal) (*PivotStrategy, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid strategy params")
	}
	if pricer == nil || klines == nil || trader == nil {
		return nil, errors.New("pricer, kline provider and trader are required")
	}
	if l == nil {
		l = zap.NewNop()
	}

	return &PivotStrategy{
		params:  params,
		pricer:  pricer,
		klines:  klines,
		trader:  trader,
		journal: journal,
		l:       l,
		now:     time.Now,
	}, nil
}

// Execute runs the action selected by gate.
func (s *PivotStrategy) Execute(ctx context.Context, gate domain.Gate) error {
	switch gate {
	case domain.GateCancel:
		cancelled, err := s.CancelStaleOrders(ctx)
		s.l.Info("stale order cancellation finished", zap.Int("cancelled", cancelled))
		return err
	case domain.GateReview:
		placed, err := s.ReviewPositions(ctx)
		s.l.Info("position review finished", zap.Int("sell_orders", placed))
		return err
	case domain.GateEntry:
		placed, err := s.EnterGainers(ctx)
		s.l.Info("entry finished", zap.Int("buy_orders", placed))
		return err
	default:
		return nil
	}
}

func (s *PivotStrategy) quoteMarket(base string) domain.Market {
	return domain.NewMarket(s.params.Quote, base)
}

func (s *PivotStrategy) record(event domain.OrderEvent) {
	if s.journal == nil {
		return
	}
	event.Time = s.now()
	if err := s.journal.Append(event); err != nil {
		s.l.Warn("failed to journal order event", zap.String("action", string(event.Action)), zap.Error(err))
	}
}

func (s *PivotStrategy) logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("kind", domain.KindOf(err).String()), zap.Error(err))
	s.l.Error(msg, fields...)
}
