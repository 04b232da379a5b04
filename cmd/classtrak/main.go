package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/ryanbastic/classtrak/internal/client"
	"github.com/ryanbastic/classtrak/internal/config"
	"github.com/ryanbastic/classtrak/internal/console"
	"github.com/ryanbastic/classtrak/internal/table"
)

var (
	app = kingpin.New("classtrak", "Browse and edit ClassTrak students from the terminal.")

	serverURL = app.Flag("server", "Base URL of the ClassTrak server.").
			Default("http://localhost:8080").Envar("CLASSTRAK_URL").String()
	timeout = app.Flag("timeout", "Per-request timeout, 0 for none.").
		Default("0s").Envar("CLASSTRAK_TIMEOUT").Duration()
	breakerFailures = app.Flag("breaker-failures", "Consecutive server failures before failing fast, 0 to disable.").
			Default("5").Envar("CLASSTRAK_BREAKER_FAILURES").Int()
	breakerReset = app.Flag("breaker-reset", "How long to fail fast before trying the server again.").
			Default("30s").Envar("CLASSTRAK_BREAKER_RESET").Duration()
	logLevel = app.Flag("log-level", "debug, info, warn or error.").
			Default("warn").Envar("CLASSTRAK_LOG_LEVEL").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLogLevel(*logLevel)}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(*serverURL,
		client.WithTimeout(*timeout),
		client.WithBreaker(*breakerFailures, *breakerReset),
	)
	ctrl := table.NewController(c, table.NewCache(), table.NewTextRenderer(os.Stdout), logger,
		func(op string, err error) {
			logger.Debug("failure hook", "op", op, "breaker", c.BreakerState().String(), "error", err)
		})

	fmt.Printf("Connecting to %s (type help for commands)\n", *serverURL)
	// A failed first load is already on screen; the user can retry with load.
	_ = ctrl.Load(ctx)

	if err := console.Run(ctx, os.Stdin, os.Stdout, ctrl); err != nil && ctx.Err() == nil {
		logger.Error("console", "error", err)
		os.Exit(1)
	}
}
