package matrix

import "errors"

var (
	ErrInvalidPixelCount = errors.New("pixel list must contain exactly 64 pixels")
	ErrOutOfBounds       = errors.New("pixel coordinates out of bounds")
	ErrInvalidColour     = errors.New("invalid colour")
	ErrNoDevice          = errors.New("no LED matrix framebuffer found")
	ErrWrite             = errors.New("failed to write LED matrix")
)
