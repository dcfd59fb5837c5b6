package domain

import "errors"

// Sentinel errors for the engine's failure taxonomy. Callers classify
// with errors.Is; messages wrapped around them carry the entity detail.
var (
	// ErrNotFound entity absent (area/block/property/user/log).
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference a supplied identifier is not a well-formed key.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrAlreadyVisited the property was already visited this cycle.
	ErrAlreadyVisited = errors.New("property already visited this cycle")

	// ErrNoActivityFound no visits and no worked blocks for the daily key.
	// Absence of data, not a caller fault.
	ErrNoActivityFound = errors.New("no activity found")

	// ErrNoDailyLogsFound no daily logs for the weekly key.
	ErrNoDailyLogsFound = errors.New("no daily logs found")

	// ErrForbidden the caller role does not allow the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidDate unparseable date input.
	ErrInvalidDate = errors.New("invalid date")
)
