// Command marti-upbit runs the daily pivot trading bot on the Upbit KRW market.
// Around 09:00 it cancels stale orders, places exit orders for held assets
// and buys the top gainers when the BTC trend filter allows.
//
// Usage:
//
//	marti-upbit                      (built-in defaults)
//	marti-upbit --config config.yaml
//	marti-upbit --setup              (configuration wizard)
//
// Required environment variables (may be placed in .env):
//
//	UPBIT_ACCESS_KEY, UPBIT_SECRET_KEY
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vadiminshakov/marti-upbit/config"
	"github.com/vadiminshakov/marti-upbit/internal"
	"github.com/vadiminshakov/marti-upbit/internal/logger"
	"github.com/vadiminshakov/marti-upbit/internal/setup"
)

func main() {
	conf, opts, err := config.Get(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if opts.Setup {
		path, err := setup.RunTUI()
		if err != nil {
			log.Fatal(err)
		}
		if conf, err = config.Load(path); err != nil {
			log.Fatal(err)
		}
	}

	l, err := logger.New(conf.LogLevel, conf.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()

	bot, err := internal.NewTradingBot(conf, l)
	if err != nil {
		l.Fatal("failed to create trading bot", zap.Error(err))
	}
	defer func() {
		if err := bot.Close(); err != nil {
			l.Error("failed to close trading bot", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Error("trading bot stopped", zap.Error(err))
	}
}
