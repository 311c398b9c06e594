package planner

import "errors"

var (
	// ErrMalformedShape reports a shape definition the planner cannot normalize:
	// no anchor, several anchors, or conflicting cell offsets.
	ErrMalformedShape = errors.New("malformed shape")

	// ErrInvalidCount reports a target anchor count below one.
	ErrInvalidCount = errors.New("anchor count must be at least 1")

	// ErrSearchLimit reports a search that expanded more nodes than Options.MaxNodes.
	ErrSearchLimit = errors.New("search node limit exceeded")
)
