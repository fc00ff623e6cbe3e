package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/chesstrail/chesstrail/internal/mockapi"
	"github.com/chesstrail/chesstrail/pkg/logger"
)

// Default configuration constants.
const (
	defaultPlayers = 50
	defaultSeed    = 42
)

func main() {
	var (
		addr       = flag.String("addr", ":9040", "Listen address for the mock API")
		players    = flag.Int("players", defaultPlayers, "Number of synthetic players on the board")
		seed       = flag.Int64("seed", defaultSeed, "RNG seed for reproducible fixtures")
		discipline = flag.String("discipline", "Classical", "Rating-history block name to serve")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mockapi.NewServer(&mockapi.Config{
		Addr:       *addr,
		Players:    *players,
		Seed:       *seed,
		Discipline: *discipline,
	})
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Get().Error(ctx, "mock upstream failed", logger.Error(err))
		os.Exit(1)
	}
}
