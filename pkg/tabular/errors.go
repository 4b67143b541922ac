package tabular

import "errors"

var (
	// ErrRosterInput marks a roster file that is missing, empty or malformed
	ErrRosterInput = errors.New("invalid roster input")

	// ErrUnsupportedFormat is returned for roster files with an unknown extension
	ErrUnsupportedFormat = errors.New("unsupported roster format")
)
