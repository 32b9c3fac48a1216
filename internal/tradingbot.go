package internal

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/config"
	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

// TradingStrategy runs the action selected for the current minute.
type TradingStrategy interface {
	Execute(ctx context.Context, gate domain.Gate) error
}

// TradingBot polls the clock and triggers the strategy inside the daily window.
type TradingBot struct {
	Config config.Config

	tradingStrategy TradingStrategy
	journal         io.Closer
	l               *zap.Logger
	now             func() time.Time
}

func newTradingBot(conf config.Config, tradingStrategy TradingStrategy, journal io.Closer, l *zap.Logger) *TradingBot {
	if conf.Location == nil {
		conf.Location = time.Local
	}
	return &TradingBot{
		Config:          conf,
		tradingStrategy: tradingStrategy,
		journal:         journal,
		l:               l,
		now:             time.Now,
	}
}

// Close releases the order journal.
func (b *TradingBot) Close() error {
	if b.journal == nil {
		return nil
	}
	return b.journal.Close()
}

// Run polls until ctx is cancelled. The first poll happens immediately.
// Strategy errors are logged and never stop the loop.
func (b *TradingBot) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.Config.PollInterval)
	defer ticker.Stop()

	b.l.Info("Starting trading loop",
		zap.Duration("poll_interval", b.Config.PollInterval),
		zap.String("window_start", b.Config.Schedule.WindowStart.String()),
		zap.String("window_end", b.Config.Schedule.WindowEnd.String()),
		zap.String("location", b.Config.Location.String()),
		zap.Bool("dry_run", b.Config.DryRun))

	b.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			b.l.Info("Context done, stopping trading bot run loop.")
			return ctx.Err()
		case <-ticker.C:
			b.poll(ctx)
		}
	}
}

func (b *TradingBot) poll(ctx context.Context) {
	now := b.now().In(b.Config.Location)

	if !b.Config.Schedule.InWindow(now) {
		b.l.Debug("Outside trading window", zap.Time("now", now))
		return
	}

	gate := b.Config.Schedule.GateAt(now)
	if gate == domain.GateNone {
		b.l.Debug("Inside trading window, no action this minute", zap.Time("now", now))
		return
	}

	b.l.Info("Running trading routine", zap.String("gate", gate.String()), zap.Time("now", now))
	if err := b.tradingStrategy.Execute(ctx, gate); err != nil {
		b.l.Error("Trading routine failed",
			zap.String("gate", gate.String()),
			zap.String("kind", domain.KindOf(err).String()),
			zap.Error(err))
	}
}
