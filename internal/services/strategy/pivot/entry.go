package pivot

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
	"github.com/vadiminshakov/marti-upbit/internal/services/market/indicators"
)

// MovingAverage simple average of the last n daily closes of market.
// Returns ErrNoData when the exchange has fewer than n candles.
func (s *PivotStrategy) MovingAverage(ctx context.Context, market domain.Market, n int) (decimal.Decimal, error) {
	candles, err := s.klines.GetDailyCandles(ctx, market, n)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "fetch %d candles for %s", n, market)
	}

	avg, ok := indicators.SMA(domain.Closes(candles), n)
	if !ok {
		return decimal.Zero, errors.Wrapf(ErrNoData, "MA%d for %s: got %d candles", n, market, len(candles))
	}
	return avg, nil
}

// MarketTiming reports whether the benchmark trades above at least one short
// moving average and above the long one. Any missing input means no.
func (s *PivotStrategy) MarketTiming(ctx context.Context) bool {
	benchmark := s.quoteMarket(s.params.Benchmark)
	l := s.l.With(zap.String("market", benchmark.String()))

	price, err := s.pricer.GetPrice(ctx, benchmark)
	if err != nil {
		s.logFailure("failed to get benchmark price", err, zap.String("market", benchmark.String()))
		return false
	}

	long, err := s.MovingAverage(ctx, benchmark, s.params.LongMAPeriod)
	if err != nil {
		s.logMAFailure(l, s.params.LongMAPeriod, err)
		return false
	}

	aboveShort := false
	for _, period := range s.params.ShortMAPeriods {
		avg, err := s.MovingAverage(ctx, benchmark, period)
		if err != nil {
			s.logMAFailure(l, period, err)
			return false
		}
		if price.GreaterThan(avg) {
			aboveShort = true
		}
	}

	permitted := aboveShort && price.GreaterThan(long)
	l.Info("market timing evaluated",
		zap.String("price", price.String()),
		zap.String("long_ma", long.String()),
		zap.Bool("above_short_ma", aboveShort),
		zap.Bool("permitted", permitted))

	return permitted
}

func (s *PivotStrategy) logMAFailure(l *zap.Logger, period int, err error) {
	if errors.Is(err, ErrNoData) {
		l.Warn("moving average unavailable", zap.Int("period", period), zap.Error(err))
		return
	}
	l.Error("failed to compute moving average", zap.Int("period", period),
		zap.String("kind", domain.KindOf(err).String()), zap.Error(err))
}

// TopGainers ranks every quote market by its last daily change and returns the
// best performers. Markets with malformed data are skipped; any other exchange
// failure aborts the scan.
func (s *PivotStrategy) TopGainers(ctx context.Context) ([]domain.Gainer, error) {
	markets, err := s.klines.ListMarkets(ctx, s.params.Quote)
	if err != nil {
		return nil, errors.Wrap(err, "list markets")
	}

	gainers := make([]domain.Gainer, 0, len(markets))
	for _, market := range markets {
		candles, err := s.klines.GetDailyCandles(ctx, market, 2)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidData) {
				s.l.Warn("skipping market with invalid candles", zap.String("market", market.String()), zap.Error(err))
				continue
			}
			return nil, errors.Wrapf(err, "fetch candles for %s", market)
		}

		change, ok := domain.CloseChange(candles)
		if !ok {
			continue
		}
		gainers = append(gainers, domain.Gainer{Market: market, Change: change})
	}

	return domain.RankGainers(gainers, s.params.TopGainers), nil
}

// EnterGainers buys the top gainers at their pivot support when the trend
// filter permits. Returns the number of buy orders placed.
func (s *PivotStrategy) EnterGainers(ctx context.Context) (int, error) {
	if !s.MarketTiming(ctx) {
		s.l.Info("market timing does not permit entries")
		return 0, nil
	}

	gainers, err := s.TopGainers(ctx)
	if err != nil {
		s.logFailure("gainer scan failed, skipping entries", err)
		return 0, err
	}
	if len(gainers) == 0 {
		s.l.Info("no gainers found")
		return 0, nil
	}

	balance, err := s.trader.Balance(ctx, s.params.Quote)
	if err != nil {
		s.logFailure("failed to fetch quote balance", err)
		return 0, errors.Wrapf(err, "fetch %s balance", s.params.Quote)
	}
	budget := balance.Div(s.params.SizingDivisor)

	var (
		placed int
		errs   error
	)
	for _, gainer := range gainers {
		ok, err := s.enter(ctx, gainer, budget)
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

func (s *PivotStrategy) enter(ctx context.Context, gainer domain.Gainer, budget decimal.Decimal) (bool, error) {
	l := s.l.With(zap.String("market", gainer.Market.String()))

	candles, err := s.klines.GetDailyCandles(ctx, gainer.Market, 1)
	if err != nil {
		s.logFailure("failed to fetch latest candle", err, zap.String("market", gainer.Market.String()))
		return false, errors.Wrapf(err, "fetch candle for %s", gainer.Market)
	}
	latest, ok := domain.LastN(candles, 1)
	if !ok {
		l.Warn("no daily candle for gainer")
		return false, nil
	}

	support := indicators.Pivots(latest[0]).Support
	if !support.IsPositive() {
		l.Warn("non-positive support level, skipping", zap.String("support", support.String()))
		return false, nil
	}
	quantity := budget.Div(support)

	l.Info("placing entry order",
		zap.String("change", gainer.Change.StringFixed(2)),
		zap.String("support", support.String()),
		zap.String("quantity", quantity.String()))

	if err := s.buy(ctx, gainer.Market, support, quantity); err != nil {
		return false, err
	}
	return true, nil
}
