package pivot

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
	collectorMock "github.com/vadiminshakov/marti-upbit/mocks/collector"
	pricerMock "github.com/vadiminshakov/marti-upbit/mocks/pricer"
	traderMock "github.com/vadiminshakov/marti-upbit/mocks/trader"
)

var (
	krwBTC = domain.NewMarket("KRW", "BTC")
	krwETH = domain.NewMarket("KRW", "ETH")
	krwXRP = domain.NewMarket("KRW", "XRP")
)

func decimalMatcher(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(actual decimal.Decimal) bool {
		return expected.Equal(actual)
	})
}

func candle(high, low, closePrice float64) domain.Candle {
	return domain.Candle{
		Open:  decimal.NewFromFloat(closePrice),
		High:  decimal.NewFromFloat(high),
		Low:   decimal.NewFromFloat(low),
		Close: decimal.NewFromFloat(closePrice),
	}
}

func closes(values ...float64) []domain.Candle {
	candles := make([]domain.Candle, len(values))
	for i, v := range values {
		candles[i] = candle(v, v, v)
	}
	return candles
}

func flat(n int, value float64) []domain.Candle {
	values := make([]float64, n)
	for i := range values {
		values[i] = value
	}
	return closes(values...)
}

type recordingJournal struct {
	mu     sync.Mutex
	events []domain.OrderEvent
}

func (j *recordingJournal) Append(event domain.OrderEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, event)
	return nil
}

func (j *recordingJournal) actions() []domain.OrderAction {
	j.mu.Lock()
	defer j.mu.Unlock()
	actions := make([]domain.OrderAction, len(j.events))
	for i, e := range j.events {
		actions[i] = e.Action
	}
	return actions
}

type fixture struct {
	pricer  *pricerMock.Pricer
	klines  *collectorMock.KlineProvider
	trader  *traderMock.Trader
	journal *recordingJournal
	s       *PivotStrategy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		pricer:  pricerMock.NewPricer(t),
		klines:  collectorMock.NewKlineProvider(t),
		trader:  traderMock.NewTrader(t),
		journal: &recordingJournal{},
	}

	s, err := NewPivotStrategy(zap.NewNop(), DefaultParams(), f.pricer, f.klines, f.trader, f.journal)
	require.NoError(t, err)
	f.s = s

	return f
}

func TestNewPivotStrategy(t *testing.T) {
	pricer := pricerMock.NewPricer(t)
	klines := collectorMock.NewKlineProvider(t)
	trader := traderMock.NewTrader(t)

	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr string
	}{
		{name: "defaults", mutate: func(p *Params) {}},
		{name: "no quote", mutate: func(p *Params) { p.Quote = "" }, wantErr: "quote and benchmark"},
		{name: "no short periods", mutate: func(p *Params) { p.ShortMAPeriods = nil }, wantErr: "short moving average"},
		{name: "zero long period", mutate: func(p *Params) { p.LongMAPeriod = 0 }, wantErr: "must be positive"},
		{name: "zero gainers", mutate: func(p *Params) { p.TopGainers = 0 }, wantErr: "top gainers"},
		{name: "zero divisor", mutate: func(p *Params) { p.SizingDivisor = decimal.Zero }, wantErr: "sizing divisor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			tt.mutate(&params)

			s, err := NewPivotStrategy(zap.NewNop(), params, pricer, klines, trader, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}

	_, err := NewPivotStrategy(zap.NewNop(), DefaultParams(), nil, klines, trader, nil)
	require.Error(t, err)
}

func TestPivotStrategy_ExecuteNoGate(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.s.Execute(context.Background(), domain.GateNone))
	f.trader.AssertNotCalled(t, "OpenOrders", mock.Anything, mock.Anything)
	f.trader.AssertNotCalled(t, "Balances", mock.Anything)
}

func TestPivotStrategy_ExecuteDispatchesCancel(t *testing.T) {
	f := newFixture(t)
	f.trader.On("OpenOrders", mock.Anything, domain.OrderStateWait).Return([]domain.Order{}, nil).Once()

	require.NoError(t, f.s.Execute(context.Background(), domain.GateCancel))
}

func TestPivotStrategy_CancelStaleOrders(t *testing.T) {
	f := newFixture(t)

	orders := []domain.Order{
		{ID: "a", Market: krwBTC, Side: domain.SideBuy, State: domain.OrderStateWait},
		{ID: "b", Market: krwETH, Side: domain.SideSell, State: domain.OrderStateWait},
		{ID: "c", Market: krwXRP, Side: domain.SideBuy, State: domain.OrderStateWait},
	}
	f.trader.On("OpenOrders", mock.Anything, domain.OrderStateWait).Return(orders, nil).Once()
	f.trader.On("CancelOrder", mock.Anything, "a").Return(nil).Once()
	f.trader.On("CancelOrder", mock.Anything, "b").
		Return(domain.NewExchangeError(domain.KindOther, "cancel order", assert.AnError)).Once()
	f.trader.On("CancelOrder", mock.Anything, "c").Return(nil).Once()

	cancelled, err := f.s.CancelStaleOrders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOther)
	assert.Equal(t, 2, cancelled)
	assert.Equal(t, []domain.OrderAction{
		domain.OrderActionCancelled,
		domain.OrderActionFailed,
		domain.OrderActionCancelled,
	}, f.journal.actions())
}

func TestPivotStrategy_CancelStaleOrdersListFailure(t *testing.T) {
	f := newFixture(t)
	f.trader.On("OpenOrders", mock.Anything, domain.OrderStateWait).
		Return(nil, domain.NewExchangeError(domain.KindTimeout, "list orders", context.DeadlineExceeded)).Once()

	cancelled, err := f.s.CancelStaleOrders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.Zero(t, cancelled)
	f.trader.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything)
}
