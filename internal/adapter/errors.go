package adapter

import "errors"

var (
	// ErrUnauthorized is returned when the server rejects the bearer
	// credential (401). Surfaced upward for re-login; the sync engine
	// never retries it.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound is returned for 404 responses. For the inventory
	// existence probe a not-found answer is an expected outcome, not a
	// failure.
	ErrNotFound = errors.New("resource not found")
)
