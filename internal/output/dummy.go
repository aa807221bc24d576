package output

import (
	"fmt"
	"log"
	"sync"
)

// DummyOutput is an in-memory output for dry runs and tests.
type DummyOutput struct {
	name       string
	state      bool
	history    []bool
	closeCount int
	mutex      sync.RWMutex

	// SetErr, when non-nil, is returned by TurnOn and TurnOff.
	SetErr error
}

func NewDummyOutput(name string) *DummyOutput {
	return &DummyOutput{name: name}
}

func (d *DummyOutput) TurnOn() error {
	return d.write(true)
}

func (d *DummyOutput) TurnOff() error {
	return d.write(false)
}

func (d *DummyOutput) Set(on bool) error {
	return set(d, on)
}

func (d *DummyOutput) write(on bool) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.SetErr != nil {
		if on {
			return fmt.Errorf("%w %s: %v", ErrTurnOn, d, d.SetErr)
		}
		return fmt.Errorf("%w %s: %v", ErrTurnOff, d, d.SetErr)
	}

	if on {
		log.Printf("turning on dummy output %s", d.name)
	} else {
		log.Printf("turning off dummy output %s", d.name)
	}
	d.state = on
	d.history = append(d.history, on)
	return nil
}

func (d *DummyOutput) GetState() (bool, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.state, nil
}

// History returns every value written, in order.
func (d *DummyOutput) History() []bool {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return append([]bool(nil), d.history...)
}

// CloseCount returns the number of times Close was called.
func (d *DummyOutput) CloseCount() int {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.closeCount
}

func (d *DummyOutput) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	log.Printf("closing dummy output %s", d.name)
	d.closeCount++
	d.state = false
	return nil
}

func (d *DummyOutput) String() string {
	return fmt.Sprintf("dummy:%s", d.name)
}
