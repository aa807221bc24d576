// Package touch watches a digital input, such as a capacitive touch sensor,
// and reports debounced press and release events.
package touch

import (
	"time"
)

// DefaultDebounce is how long a new level must hold before it is reported.
const DefaultDebounce = 50 * time.Millisecond

// DefaultPollInterval is how often the input is sampled.
const DefaultPollInterval = time.Millisecond

// EventType represents the type of sensor event
type EventType int

const (
	Pressed EventType = iota
	Released
)

// Event represents a touch or release of a sensor
type Event struct {
	// Source identifies which sensor generated the event
	Source string

	// Type indicates if this is a press or release event
	Type EventType

	// Timestamp when the event occurred
	Timestamp time.Time
}

// Sensor is a source of debounced events.
type Sensor interface {
	// Events returns a channel that delivers sensor events
	Events() <-chan Event

	// Start begins monitoring for sensor events
	Start() error

	// Stop stops monitoring and closes the events channel
	Stop()

	// IsPressed reports the last debounced state
	IsPressed() bool

	String() string
}

func (t EventType) String() string {
	switch t {
	case Pressed:
		return "PRESSED"
	case Released:
		return "RELEASED"
	default:
		return "UNKNOWN"
	}
}

// IsPressed returns true if this is a press event
func (e Event) IsPressed() bool {
	return e.Type == Pressed
}
