package drivers

import "errors"

// Registry errors
var (
	ErrUnknownDriver    = errors.New("unknown driver")
	ErrDriverRegistered = errors.New("driver already registered")
	ErrInvalidConfig    = errors.New("invalid driver configuration")
)

// Hardware initialization errors
var (
	ErrChipOpenFailed = errors.New("failed to open GPIO chip")
	ErrHostInit       = errors.New("failed to initialize periph.io")
	ErrInputMode      = errors.New("failed to set pin to input mode")
)
