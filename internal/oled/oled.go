// Package oled shows short status lines on an SSD1306 OLED display.
package oled

import (
	"fmt"
	"log"
	"sync"

	"github.com/larsks/display1306/v2/display"
	"github.com/larsks/display1306/v2/display/fakedriver"
)

// Display is a line oriented view of an SSD1306.
type Display struct {
	display *display.Display
	lines   []string
	mutex   sync.Mutex
	closed  bool
}

// New builds and initializes a display. With dryRun set it uses an
// in-memory driver instead of the I2C device.
func New(dryRun bool) (*Display, error) {
	var (
		d   *display.Display
		err error
	)
	if dryRun {
		d, err = display.NewDisplay().WithDriver(fakedriver.NewFakeSSD1306()).Build()
	} else {
		d, err = display.NewDisplay().Build()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	return Wrap(d)
}

// Wrap initializes an already built display.
func Wrap(d *display.Display) (*Display, error) {
	if err := d.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	if err := d.ClearScreen(); err != nil {
		return nil, fmt.Errorf("failed to clear display: %w", err)
	}
	return &Display{display: d}, nil
}

// ShowLines replaces the screen contents with lines.
func (d *Display) ShowLines(lines ...string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if err := d.display.ClearScreen(); err != nil {
		return fmt.Errorf("failed to clear display: %w", err)
	}
	if err := d.display.PrintLines(0, lines); err != nil {
		return fmt.Errorf("failed to print lines to display: %w", err)
	}
	if err := d.display.Update(); err != nil {
		return fmt.Errorf("failed to update display: %w", err)
	}
	d.lines = append([]string(nil), lines...)
	return nil
}

// Lines returns what was last shown.
func (d *Display) Lines() []string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return append([]string(nil), d.lines...)
}

func (d *Display) Clear() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if err := d.display.ClearScreen(); err != nil {
		return fmt.Errorf("failed to clear display: %w", err)
	}
	d.lines = nil
	return nil
}

// Close blanks the screen and releases the device. Only the first call
// has any effect.
func (d *Display) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.display.ClearScreen(); err != nil {
		log.Printf("failed to clear display: %v", err)
	}
	return d.display.Close()
}
