package matrix

import (
	"image/color"
	"sync"
)

// FakeDriver keeps every frame written to it. It is used for dry runs and
// tests.
type FakeDriver struct {
	frames     [][]color.RGBA
	closeCount int
	mutex      sync.Mutex

	// WriteErr, when non-nil, is returned by Write.
	WriteErr error
}

func NewFakeDriver() *FakeDriver {
	return &FakeDriver{}
}

func (d *FakeDriver) Write(pixels []color.RGBA) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.WriteErr != nil {
		return d.WriteErr
	}
	d.frames = append(d.frames, append([]color.RGBA(nil), pixels...))
	return nil
}

// Frames returns every frame written so far.
func (d *FakeDriver) Frames() [][]color.RGBA {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return append([][]color.RGBA(nil), d.frames...)
}

// LastFrame returns the most recent frame, or nil.
func (d *FakeDriver) LastFrame() []color.RGBA {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

func (d *FakeDriver) CloseCount() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.closeCount
}

func (d *FakeDriver) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.closeCount++
	return nil
}
