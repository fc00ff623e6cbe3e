// Package dedupe tracks already-processed player identifiers so a batch
// never contains the same player twice.
package dedupe

import "context"

// Guard records seen identifiers within a single batch run.
type Guard interface {
	// SeenAndRecord checks whether id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Size returns the number of recorded identifiers.
	Size() int
}

// seenSet implements Guard with a plain map. Batch runs are sequential,
// so no locking is needed; maxSize bounds memory against a misbehaving
// leaderboard payload.
type seenSet struct {
	seen    map[string]struct{}
	maxSize int
}

// Option applies a configuration option to the seen-set guard.
type Option func(*seenSet)

// WithMaxSize caps the number of identifiers recorded. Once the cap is
// reached, new identifiers are reported as unseen but not recorded.
// A cap of 0 or less means unbounded.
func WithMaxSize(maxSize int) Option {
	return func(s *seenSet) {
		s.maxSize = maxSize
	}
}

// defaultMaxSize comfortably covers any leaderboard the service requests.
const defaultMaxSize = 1000

// NewSeenSet creates a new in-memory guard with configuration options.
func NewSeenSet(opts ...Option) Guard {
	s := &seenSet{
		seen:    make(map[string]struct{}),
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SeenAndRecord checks whether id was seen and records it if not.
func (s *seenSet) SeenAndRecord(_ context.Context, id string) bool {
	if _, ok := s.seen[id]; ok {
		return true
	}
	if s.maxSize > 0 && len(s.seen) >= s.maxSize {
		return false
	}
	s.seen[id] = struct{}{}
	return false
}

// Size returns the number of recorded identifiers.
func (s *seenSet) Size() int {
	return len(s.seen)
}
