package tone

import "errors"

// Tone configuration errors
var (
	ErrInvalidFrequency = errors.New("frequency must be greater than 0 and at most 1MHz")
	ErrInvalidDutyCycle = errors.New("duty cycle must be between 0 and 100")
	ErrOutputRequired   = errors.New("output is required")
)

// Tone operation errors
var (
	ErrStart     = errors.New("failed to start tone")
	ErrStop      = errors.New("failed to stop tone")
	ErrFrequency = errors.New("failed to change tone frequency")
)
