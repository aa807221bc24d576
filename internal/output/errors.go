package output

import "errors"

// Hardware errors
var (
	ErrPinNotFound       = errors.New("failed to find pin")
	ErrLineRequestFailed = errors.New("failed to request GPIO line")
	ErrPinOutputMode     = errors.New("failed to set pin to output mode")
)

// Output operation errors
var (
	ErrTurnOn   = errors.New("failed to turn on output")
	ErrTurnOff  = errors.New("failed to turn off output")
	ErrGetState = errors.New("failed to get output state")
	ErrClosed   = errors.New("output is closed")
)
