package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chesstrail/chesstrail/internal/adapters/export"
	"github.com/chesstrail/chesstrail/internal/adapters/lichess"
	"github.com/chesstrail/chesstrail/internal/adapters/report"
	service "github.com/chesstrail/chesstrail/internal/app"
	"github.com/chesstrail/chesstrail/internal/config"
	"github.com/chesstrail/chesstrail/pkg/logger"
	"github.com/chesstrail/chesstrail/pkg/metrics"
)

// Metrics listener timeout constants.
const (
	metricsReadTimeout       = 5 * time.Second
	metricsReadHeaderTimeout = 2 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optionally expose /metrics while the run is in flight so batch
	// schedulers can scrape it.
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, log, cfg.MetricsAddr)
	}

	client := lichess.New(
		lichess.WithBaseURL(cfg.BaseURL),
		lichess.WithTimeout(time.Duration(cfg.HTTPTimeoutMS)*time.Millisecond),
		lichess.WithUserAgent(cfg.UserAgent),
	)

	svc := service.New(
		service.WithLogger(log),
		service.WithFetcher(client),
		service.WithExporter(export.NewCSVWriter(export.WithPath(cfg.OutputFile))),
		service.WithReporter(report.New()),
		service.WithTopCount(cfg.TopCount),
		service.WithPerfType(cfg.PerfType),
		service.WithDiscipline(cfg.Discipline),
	)

	if err := svc.Run(ctx); err != nil {
		log.Error(ctx, "export run failed", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "wrote export file", logger.String("output_file", cfg.OutputFile))
}

// serveMetrics exposes the run's Prometheus registry until ctx ends.
func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       metricsReadTimeout,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics listener failed", logger.Error(err))
	}
}
