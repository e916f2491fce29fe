package random

import "errors"

var (
	// ErrInvalidArgument indicates a malformed bound or range.
	ErrInvalidArgument = errors.New("random: invalid argument")

	// ErrZeroState indicates that a seed derived an all-zero engine state.
	// The engine cannot recover from it; a different seed must be used.
	ErrZeroState = errors.New("random: engine state cannot be zero")
)
