// Package tone drives a passive piezo buzzer with a square wave.
package tone

import "fmt"

// DefaultFrequency is the frequency a buzzer starts with until told otherwise.
const DefaultFrequency = 1000.0

// Tone is a pulse-width-modulated output. A frequency change while the tone
// is active takes effect without restarting it.
type Tone interface {
	// Start begins the tone at the given duty cycle (percent). Starting an
	// active tone changes its duty cycle.
	Start(dutyCycle float64) error
	SetFrequency(hz float64) error
	// Stop silences the tone. Stopping a silent tone is a no-op.
	Stop() error
	IsActive() bool
	Frequency() float64
	Close() error
	String() string
}

func validateFrequency(hz float64) error {
	if !(hz > 0) || hz > 1e6 {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, hz)
	}
	return nil
}

func validateDutyCycle(dutyCycle float64) error {
	if !(dutyCycle >= 0 && dutyCycle <= 100) {
		return fmt.Errorf("%w: %v", ErrInvalidDutyCycle, dutyCycle)
	}
	return nil
}
