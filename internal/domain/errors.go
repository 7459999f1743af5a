package domain

import "errors"

var (
	// ErrFormat reports a malformed area label.
	ErrFormat = errors.New("malformed area label")

	// ErrShape reports mismatched or empty inputs to the error metrics.
	ErrShape = errors.New("invalid series shape")

	// ErrEmptySeries reports an aggregation over no samples.
	ErrEmptySeries = errors.New("empty series")

	// ErrDomain reports a percentage outside [0, 100].
	ErrDomain = errors.New("value outside domain")

	// ErrUnordered reports a time series whose timestamps are not strictly increasing.
	ErrUnordered = errors.New("timestamps not strictly increasing")
)
