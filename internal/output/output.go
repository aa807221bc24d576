// Package output drives single digital output pins such as an LED.
package output

// Output is a boolean sink attached to one pin. Writes are idempotent.
type Output interface {
	TurnOn() error
	TurnOff() error
	Set(on bool) error
	GetState() (bool, error)
	// Close drives the pin to its inactive level and releases it.
	Close() error
	String() string
}

func set(o Output, on bool) error {
	if on {
		return o.TurnOn()
	}
	return o.TurnOff()
}
