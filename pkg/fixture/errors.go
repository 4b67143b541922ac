package fixture

import "errors"

// Sentinel errors for generation
var (
	// Configuration errors
	ErrInvalidCount    = errors.New("invalid entity count")
	ErrEmptyCandidates = errors.New("candidate set is empty")
	ErrInvalidRange    = errors.New("invalid enrollment range")
	ErrTableLength     = errors.New("distribution table length does not match course count")
	ErrUnknownStrategy = errors.New("unknown enrollment strategy")

	// Input errors
	ErrDuplicateStudent = errors.New("duplicate student identifier")
)
