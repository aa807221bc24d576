package gpio

import (
	"fmt"
	"strconv"
	"strings"
)

// Polarity represents the electrical polarity of a GPIO pin
type Polarity int

const (
	ActiveHigh Polarity = iota
	ActiveLow
)

// PullMode represents the pull resistor configuration
type PullMode int

const (
	PullNone PullMode = iota
	PullUp
	PullDown
	PullAuto // Automatically choose based on polarity
)

// boardToBCM maps physical 40-pin header positions to BCM GPIO line numbers.
// Power and ground positions are absent.
var boardToBCM = map[int]int{
	3: 2, 5: 3, 7: 4, 8: 14, 10: 15, 11: 17, 12: 18, 13: 27,
	15: 22, 16: 23, 18: 24, 19: 10, 21: 9, 22: 25, 23: 11, 24: 8,
	26: 7, 27: 0, 28: 1, 29: 5, 31: 6, 32: 12, 33: 13, 35: 19,
	36: 16, 37: 26, 38: 20, 40: 21,
}

// PinSpec represents a parsed GPIO pin specification
type PinSpec struct {
	// LineNum is the BCM GPIO line number (e.g., 12 for GPIO12 / header pin 32)
	LineNum int

	Polarity Polarity
	PullMode PullMode
}

// ParsePin parses a GPIO pin specification string
// Format: "pin[:active-high|active-low][:pull-none|pull-up|pull-down|pull-auto]"
// Examples: "GPIO18", "PIN32", "BOARD11:active-low", "6:active-low:pull-up"
func ParsePin(pinSpec string) (*PinSpec, error) {
	parts := strings.Split(pinSpec, ":")

	lineNum, err := ParsePinNumber(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPinSpec, err)
	}

	spec := &PinSpec{
		LineNum:  lineNum,
		Polarity: ActiveHigh,
		PullMode: PullAuto,
	}

	for _, part := range parts[1:] {
		param := strings.ToLower(strings.TrimSpace(part))
		switch param {
		case "active-high":
			spec.Polarity = ActiveHigh
		case "active-low":
			spec.Polarity = ActiveLow
		case "pull-none":
			spec.PullMode = PullNone
		case "pull-up":
			spec.PullMode = PullUp
		case "pull-down":
			spec.PullMode = PullDown
		case "pull-auto":
			spec.PullMode = PullAuto
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownPinOption, param)
		}
	}

	return spec, nil
}

// ParsePinNumber parses a pin name and returns the BCM line number.
// "GPIO16" and "16" name BCM lines directly; "PIN36", "BOARD36" and
// "P1_36" name physical header positions.
func ParsePinNumber(pinName string) (int, error) {
	if lineNum, err := strconv.Atoi(pinName); err == nil {
		if lineNum < 0 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidPinNumber, pinName)
		}
		return lineNum, nil
	}

	upper := strings.ToUpper(pinName)
	for _, prefix := range []string{"BOARD", "PIN", "P1_"} {
		if strings.HasPrefix(upper, prefix) {
			return boardPin(strings.TrimPrefix(upper, prefix), pinName)
		}
	}

	if strings.HasPrefix(upper, "GPIO") {
		if lineNum, err := strconv.Atoi(strings.TrimPrefix(upper, "GPIO")); err == nil && lineNum >= 0 {
			return lineNum, nil
		}
	}

	return 0, fmt.Errorf("%w: %s (expected GPIO<number>, <number> or PIN<header position>)", ErrInvalidPinNumber, pinName)
}

func boardPin(numStr, pinName string) (int, error) {
	position, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPinNumber, pinName)
	}
	lineNum, ok := boardToBCM[position]
	if !ok {
		return 0, fmt.Errorf("%w: header pin %d", ErrNotAGPIOPin, position)
	}
	return lineNum, nil
}

// Name returns the BCM name of the pin, as used by periph's gpioreg.
func (ps *PinSpec) Name() string {
	return fmt.Sprintf("GPIO%d", ps.LineNum)
}

// OnLevel returns the line value that makes the pin active.
func (ps *PinSpec) OnLevel() int {
	if ps.Polarity == ActiveLow {
		return 0
	}
	return 1
}

// OffLevel returns the line value that makes the pin inactive.
func (ps *PinSpec) OffLevel() int {
	return 1 - ps.OnLevel()
}

// EffectivePull resolves PullAuto: an active-high input idles low, so it
// gets a pull-down, and an active-low input gets a pull-up.
func (ps *PinSpec) EffectivePull() PullMode {
	if ps.PullMode != PullAuto {
		return ps.PullMode
	}
	if ps.Polarity == ActiveLow {
		return PullUp
	}
	return PullDown
}

// String returns a string representation of the polarity
func (p Polarity) String() string {
	switch p {
	case ActiveHigh:
		return "active-high"
	case ActiveLow:
		return "active-low"
	default:
		return "unknown"
	}
}

// String returns a string representation of the pull mode
func (pm PullMode) String() string {
	switch pm {
	case PullNone:
		return "pull-none"
	case PullUp:
		return "pull-up"
	case PullDown:
		return "pull-down"
	case PullAuto:
		return "pull-auto"
	default:
		return "unknown"
	}
}

// String returns a string representation of the pin specification
func (ps *PinSpec) String() string {
	return fmt.Sprintf("GPIO%d:%s:%s", ps.LineNum, ps.Polarity, ps.PullMode)
}
