package guess

import (
	"errors"

	"github.com/larsks/pilab/internal/actuator"
)

// Game errors
var (
	// ErrInvalidInput is returned for a line that is not an integer. The
	// controller reports it and asks again.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEndOfInput means the operator's input stream closed.
	ErrEndOfInput = errors.New("end of input")

	// ErrActuator wraps any failure of the feedback hardware.
	ErrActuator = actuator.ErrActuator
)

// Setup errors
var (
	ErrInvalidRange   = errors.New("invalid target range")
	ErrUnknownVariant = errors.New("unknown feedback variant")
	ErrInvalidPolicy  = errors.New("invalid feedback policy")
)
