// Package export serializes a batch of player series into a fixed-schema
// CSV file.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/chesstrail/chesstrail/internal/domain/model"
	"github.com/chesstrail/chesstrail/internal/domain/window"
)

// Default export configuration constants.
const (
	defaultPath = "top_50_classical_players_ratings.csv"

	// identifierHeader labels the first column.
	identifierHeader = "username"
)

// CSVWriter writes batches to a CSV file.
type CSVWriter struct {
	path string
}

// Option applies a configuration option to the CSVWriter.
type Option func(*CSVWriter)

// WithPath sets the output file path.
func WithPath(path string) Option {
	return func(w *CSVWriter) {
		if path != "" {
			w.path = path
		}
	}
}

// NewCSVWriter creates a CSVWriter with configuration options.
func NewCSVWriter(opts ...Option) *CSVWriter {
	w := &CSVWriter{
		path: defaultPath,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Path returns the configured output file path.
func (w *CSVWriter) Path() string {
	return w.path
}

// Write serializes the batch to the configured file, truncating any
// previous run's output.
//
// The header is the identifier column followed by the 30 window dates
// ascending and one extra column for today. Each row repeats the last
// window value in the today column: today's own observation cannot exist
// yet, so yesterday's known or filled rating stands in for it. Row width
// is always 32 regardless of how sparse the source history was.
func (w *CSVWriter) Write(ctx context.Context, batch model.Batch, today model.Date) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export cancelled: %w", err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	header := make([]string, 0, window.Days+2)
	header = append(header, identifierHeader)
	for _, day := range window.Window(today) {
		header = append(header, day.String())
	}
	header = append(header, today.String())
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, ps := range batch {
		row := make([]string, 0, window.Days+2)
		row = append(row, ps.Username)
		for _, e := range ps.Series {
			row = append(row, fmt.Sprintf("%d", e.Rating))
		}
		row = append(row, fmt.Sprintf("%d", ps.Series.Last().Rating))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", ps.Username, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", w.path, err)
	}
	return nil
}
