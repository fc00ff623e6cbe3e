// Package config defines run configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error sentinels.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// BaseURL is the upstream ranking service, e.g. "https://lichess.org".
	BaseURL string `koanf:"base_url"`

	// TopCount is the leaderboard size to fetch.
	TopCount int `koanf:"top_count"`

	// PerfType is the leaderboard perf segment in URL form, e.g. "classical".
	PerfType string `koanf:"perf_type"`

	// Discipline is the rating-history block name to track, e.g. "Classical".
	Discipline string `koanf:"discipline"`

	// OutputFile is the CSV export path.
	OutputFile string `koanf:"output_file"`

	// HTTPTimeoutMS bounds each upstream request.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`

	// UserAgent identifies the client to the upstream service.
	UserAgent string `koanf:"user_agent"`

	// MetricsAddr exposes /metrics during the run when non-empty,
	// e.g. ":9090". Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`
}

// Default configuration values.
const (
	defaultTopCount      = 50
	defaultHTTPTimeoutMS = 30_000
)

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		BaseURL:       "https://lichess.org",
		TopCount:      defaultTopCount,
		PerfType:      "classical",
		Discipline:    "Classical",
		OutputFile:    "top_50_classical_players_ratings.csv",
		HTTPTimeoutMS: defaultHTTPTimeoutMS,
		UserAgent:     "chesstrail/1.0",
		MetricsAddr:   "",
	}
}
