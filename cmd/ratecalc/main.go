package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/chess-vn/slrating/internal/app/ratecalc"
	"github.com/chess-vn/slrating/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	flags := ratecalc.NewFlagSet("ratecalc")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: ratecalc [flags] <games.pgn>")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := ratecalc.LoadConfig(flags)
	if err != nil {
		logging.Fatal("couldn't load config", zap.Error(err))
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.Warn("invalid log level", zap.String("level", cfg.LogLevel), zap.Error(err))
	}
	defer logging.Sync()

	f, err := os.Open(flags.Arg(0))
	if err != nil {
		logging.Fatal("couldn't open games", zap.Error(err))
	}
	defer f.Close()

	app, err := ratecalc.NewApp(cfg)
	if err != nil {
		logging.Fatal("couldn't initialize app", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx, f, os.Stdout); err != nil {
		logging.Fatal("rating failed", zap.Error(err))
	}
}
