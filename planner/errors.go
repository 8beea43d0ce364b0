package planner

import "errors"

// Error taxonomy. Every failure a mutation or generation can surface
// wraps one of these so handlers can map them to HTTP statuses with
// errors.Is. All are terminal for the current request; there is no I/O
// inside the engine, so nothing is worth retrying.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrConflict          = errors.New("conflict")
	ErrNoVotedActivities = errors.New("no voted suggestions")
)
