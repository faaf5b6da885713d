package core

import "errors"

// Validation and invariant errors surfaced by the aggregator and the pair
// enumeration engine. All of them are fatal: trial generation is a pure
// computation over a fixed input snapshot, so a violation is a data-quality
// or programming error, never a transient condition. Callers match with
// errors.Is; the wrapped message carries the offending identifier(s).
var (
	ErrDuplicateSample    = errors.New("duplicate sample id")
	ErrMissingLabel       = errors.New("missing label")
	ErrInconsistentGender = errors.New("inconsistent gender")
	ErrInvalidGender      = errors.New("invalid gender")
	ErrDuplicatePair      = errors.New("duplicate pair")
)
