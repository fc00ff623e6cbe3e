// Package report renders human-readable run output. It is advisory only:
// nothing machine-readable should be built on its format.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chesstrail/chesstrail/internal/domain/model"
)

// Reporter writes run output to a writer, os.Stdout by default.
type Reporter struct {
	out io.Writer
}

// Option applies a configuration option to the Reporter.
type Option func(*Reporter)

// WithWriter sets the destination writer.
func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		if w != nil {
			r.out = w
		}
	}
}

// New creates a Reporter with configuration options.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		out: os.Stdout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Banner prints a section heading.
func (r *Reporter) Banner(text string) {
	fmt.Fprintln(r.out, text)
}

// Usernames prints each player's username on its own line, in
// leaderboard order.
func (r *Reporter) Usernames(usernames []string) {
	for _, u := range usernames {
		fmt.Fprintln(r.out, u)
	}
}

// InlineSeries prints one player's series on a single line as
// "name, {Jan 02: 1500, Jan 03: 1500, ...}". The series is ordered by
// construction; the rendering never depends on map iteration order.
func (r *Reporter) InlineSeries(ps model.PlayerSeries) {
	var b strings.Builder
	b.WriteString(ps.Username)
	b.WriteString(", {")
	for i, e := range ps.Series {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", e.Date.Label(), e.Rating)
	}
	b.WriteString("}")
	fmt.Fprintln(r.out, b.String())
}
