package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if CHESSTRAIL_CONFIG is set
//  3. env (prefix CHESSTRAIL_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CHESSTRAIL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CHESSTRAIL_TOP_COUNT, CHESSTRAIL_BASE_URL, ...
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("CHESSTRAIL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "chesstrail_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base_url must not be empty", ErrInvalidConfig)
	}
	if cfg.TopCount <= 0 {
		return nil, fmt.Errorf("%w: top_count must be positive", ErrInvalidConfig)
	}
	if cfg.Discipline == "" {
		return nil, fmt.Errorf("%w: discipline must not be empty", ErrInvalidConfig)
	}
	if cfg.OutputFile == "" {
		return nil, fmt.Errorf("%w: output_file must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
