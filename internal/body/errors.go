package body

import "errors"

// Construction errors. Once a body exists every per-frame operation on it is
// total, so these are the only failures the package reports.
var (
	ErrInvalidMass     = errors.New("body: mass must be positive")
	ErrInvalidRadius   = errors.New("body: radius must be positive")
	ErrInvalidPosition = errors.New("body: position must be finite")
)
