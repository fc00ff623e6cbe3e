package mockapi

// Config holds configuration for the mock upstream server.
type Config struct {
	Addr       string // listen address
	Players    int    // number of synthetic players on the board
	Seed       int64  // RNG seed; same seed, same board and histories
	Discipline string // rating-history block name, e.g. "Classical"
}
