package blockers

import "errors"

var (
	// ErrInvalidArgument is returned for missing or malformed caller input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when the referenced summary does not exist.
	ErrNotFound = errors.New("summary not found")
)
