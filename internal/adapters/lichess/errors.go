package lichess

import "errors"

// Sentinel kinds for Lichess API errors.
var (
	// ErrStatus marks a non-success HTTP status from the API.
	ErrStatus = errors.New("unexpected response status")

	// ErrNoDiscipline marks a rating history with no block for the
	// tracked discipline.
	ErrNoDiscipline = errors.New("discipline not present in rating history")
)
