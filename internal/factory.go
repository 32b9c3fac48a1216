package internal

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/config"
	"github.com/vadiminshakov/marti-upbit/internal/clients"
	"github.com/vadiminshakov/marti-upbit/internal/domain"
	"github.com/vadiminshakov/marti-upbit/internal/services/market/collector"
	"github.com/vadiminshakov/marti-upbit/internal/services/pricer"
	"github.com/vadiminshakov/marti-upbit/internal/services/strategy/pivot"
	"github.com/vadiminshakov/marti-upbit/internal/services/trader"
	"github.com/vadiminshakov/marti-upbit/internal/storage/orderjournal"
)

type traderService interface {
	OpenOrders(ctx context.Context, state domain.OrderState) ([]domain.Order, error)
	CancelOrder(ctx context.Context, id string) error
	Balances(ctx context.Context) ([]domain.Position, error)
	Balance(ctx context.Context, currency string) (decimal.Decimal, error)
	PlaceBuyLimitOrder(ctx context.Context, market domain.Market, price, quantity decimal.Decimal) (*domain.Order, error)
	PlaceSellLimitOrder(ctx context.Context, market domain.Market, price, quantity decimal.Decimal) (*domain.Order, error)
}

type orderJournal interface {
	Append(event domain.OrderEvent) error
	Close() error
}

// NewTradingBot wires the Upbit client, services, optional journal and the strategy.
func NewTradingBot(conf config.Config, logger *zap.Logger) (*TradingBot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf.AccessKey == "" || conf.SecretKey == "" {
		return nil, fmt.Errorf("%s and %s environment variables must be set", config.EnvAccessKey, config.EnvSecretKey)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	client := clients.NewUpbitClient(conf.AccessKey, conf.SecretKey,
		clients.WithHTTPTimeout(conf.HTTPTimeout),
		clients.WithRateLimit(conf.RequestsPerSecond),
	)

	var tradeSvc traderService = trader.NewUpbitTrader(client)
	if conf.DryRun {
		tradeSvc = trader.NewDryRunTrader(tradeSvc, logger.Named("dryrun"))
		logger.Warn("Dry run enabled, orders are logged but not sent")
	}

	var journal orderJournal
	if conf.JournalDir != "" {
		store, err := orderjournal.NewWALStore(conf.JournalDir)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open order journal")
		}
		journal = store
	}

	tradingStrategy, err := pivot.NewPivotStrategy(
		logger.Named("pivot"),
		paramsFromConfig(conf),
		pricer.NewUpbitPricer(client),
		collector.NewUpbitKlineProvider(client),
		tradeSvc,
		journal,
	)
	if err != nil {
		if journal != nil {
			_ = journal.Close()
		}
		return nil, errors.Wrap(err, "failed to create pivot strategy")
	}

	return newTradingBot(conf, tradingStrategy, journal, logger), nil
}

func paramsFromConfig(conf config.Config) pivot.Params {
	return pivot.Params{
		Quote:             conf.Quote,
		Benchmark:         conf.Benchmark,
		ShortMAPeriods:    conf.ShortMAPeriods,
		LongMAPeriod:      conf.LongMAPeriod,
		TopGainers:        conf.TopGainers,
		TakeProfitPercent: conf.TakeProfitPercent,
		MinOrderValue:     conf.MinOrderValue,
		SizingDivisor:     conf.SizingDivisor,
	}
}
