package habitability

import "errors"

// Sentinel errors for parameter access. Scoring itself never fails.
var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrKindMismatch     = errors.New("parameter kind mismatch")
)
