package matrix

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var namedColours = map[string]color.RGBA{
	"black":   Black,
	"white":   White,
	"red":     Red,
	"green":   Green,
	"blue":    Blue,
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"orange":  {255, 128, 0, 255},
	"purple":  {128, 0, 128, 255},
}

// ParseColour accepts a colour name ("red"), a decimal triple ("255,0,0")
// or a hex triple ("#ff0000").
func ParseColour(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))

	if c, ok := namedColours[spec]; ok {
		return c, nil
	}

	if hex, ok := strings.CutPrefix(spec, "#"); ok {
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("%w: %s", ErrInvalidColour, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %s", ErrInvalidColour, s)
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
	}

	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("%w: %s (expected a name, r,g,b or #rrggbb)", ErrInvalidColour, s)
	}

	var rgb [3]uint8
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %s", ErrInvalidColour, s)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}
