package gpio

import "errors"

// Pin specification errors
var (
	ErrInvalidPinSpec   = errors.New("invalid GPIO pin specification")
	ErrInvalidPinNumber = errors.New("invalid GPIO pin")
	ErrNotAGPIOPin      = errors.New("header position is not a GPIO pin")
	ErrUnknownPinOption = errors.New("unknown pin option")
)
