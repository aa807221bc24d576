// Package matrix drives an 8x8 RGB LED matrix such as the one on the
// Raspberry Pi Sense HAT.
package matrix

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"
)

const (
	Width  = 8
	Height = 8

	// PixelCount is the number of pixels SetPixels expects.
	PixelCount = Width * Height
)

// Some frequently used colours.
var (
	Black = color.RGBA{0, 0, 0, 255}
	White = color.RGBA{255, 255, 255, 255}
	Red   = color.RGBA{255, 0, 0, 255}
	Green = color.RGBA{0, 255, 0, 255}
	Blue  = color.RGBA{0, 0, 255, 255}
)

// Driver pushes a full frame to the hardware. Pixels are in row-major
// order, top left first.
type Driver interface {
	Write(pixels []color.RGBA) error
	Close() error
}

// Matrix is a frame buffer for the LED matrix. Every change is written to
// the driver immediately.
type Matrix struct {
	driver Driver
	pixels [PixelCount]color.RGBA
	mutex  sync.Mutex
	closed bool
}

func New(driver Driver) *Matrix {
	m := &Matrix{driver: driver}
	for i := range m.pixels {
		m.pixels[i] = Black
	}
	return m
}

func (m *Matrix) flush() error {
	if err := m.driver.Write(m.pixels[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// SetPixels replaces the whole frame.
func (m *Matrix) SetPixels(pixels []color.RGBA) error {
	if len(pixels) != PixelCount {
		return fmt.Errorf("%w: got %d", ErrInvalidPixelCount, len(pixels))
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	copy(m.pixels[:], pixels)
	return m.flush()
}

func (m *Matrix) SetPixel(x, y int, c color.RGBA) error {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.pixels[y*Width+x] = c
	return m.flush()
}

func (m *Matrix) Pixel(x, y int) (color.RGBA, error) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return color.RGBA{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.pixels[y*Width+x], nil
}

// Pixels returns a copy of the current frame.
func (m *Matrix) Pixels() []color.RGBA {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]color.RGBA(nil), m.pixels[:]...)
}

func (m *Matrix) Fill(c color.RGBA) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := range m.pixels {
		m.pixels[i] = c
	}
	return m.flush()
}

func (m *Matrix) Clear() error {
	return m.Fill(Black)
}

// ShowLetter draws a single character in fg on a bg background.
func (m *Matrix) ShowLetter(r rune, fg, bg color.RGBA) error {
	return m.SetPixels(glyphFrame(r, fg, bg))
}

// ShowMessage scrolls text from right to left, moving one column every
// speed. It returns early with the context's error if ctx is cancelled.
func (m *Matrix) ShowMessage(ctx context.Context, text string, speed time.Duration, fg, bg color.RGBA) error {
	strip := messageStrip(text)

	for offset := 0; offset+Width <= len(strip); offset++ {
		if err := m.SetPixels(window(strip, offset, fg, bg)); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(speed):
		}
	}
	return nil
}

// Close blanks the matrix and closes the driver. Calling Close more than
// once is a no-op.
func (m *Matrix) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	for i := range m.pixels {
		m.pixels[i] = Black
	}
	if err := m.flush(); err != nil {
		log.Printf("failed to clear LED matrix: %v", err)
	}
	return m.driver.Close()
}

// Open returns a matrix on the framebuffer device, or on a FakeDriver when
// dryRun is set. An empty device finds the Sense HAT.
func Open(device string, dryRun bool) (*Matrix, error) {
	if dryRun {
		return New(NewFakeDriver()), nil
	}

	driver, err := NewFramebufferDriver(device)
	if err != nil {
		return nil, err
	}
	return New(driver), nil
}
