package actuator

import "errors"

var (
	// ErrActuator wraps every failure of a physical actuator.
	ErrActuator = errors.New("actuator failure")

	ErrMissingActuator = errors.New("actuator not acquired")
	ErrInvalidAction   = errors.New("invalid action")
	ErrReleased        = errors.New("actuator set already released")
)
