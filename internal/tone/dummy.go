package tone

import (
	"fmt"
	"log"
	"sync"
)

// DummyTone records what it is asked to do instead of making a sound.
type DummyTone struct {
	name       string
	frequency  float64
	dutyCycle  float64
	active     bool
	calls      []string
	closeCount int
	mutex      sync.RWMutex

	// Injected failures for tests.
	StartErr     error
	FrequencyErr error
	StopErr      error
}

func NewDummyTone(name string, frequency float64) *DummyTone {
	return &DummyTone{name: name, frequency: frequency}
}

func (t *DummyTone) Start(dutyCycle float64) error {
	if err := validateDutyCycle(dutyCycle); err != nil {
		return err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.StartErr != nil {
		return fmt.Errorf("%w on %s: %v", ErrStart, t, t.StartErr)
	}
	log.Printf("starting dummy tone %s at %v%% duty, %vHz", t.name, dutyCycle, t.frequency)
	t.calls = append(t.calls, fmt.Sprintf("start %v", dutyCycle))
	t.dutyCycle = dutyCycle
	t.active = true
	return nil
}

func (t *DummyTone) SetFrequency(hz float64) error {
	if err := validateFrequency(hz); err != nil {
		return err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.FrequencyErr != nil {
		return fmt.Errorf("%w on %s: %v", ErrFrequency, t, t.FrequencyErr)
	}
	t.calls = append(t.calls, fmt.Sprintf("frequency %v", hz))
	t.frequency = hz
	return nil
}

func (t *DummyTone) Stop() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.StopErr != nil {
		return fmt.Errorf("%w on %s: %v", ErrStop, t, t.StopErr)
	}
	if !t.active {
		return nil
	}
	log.Printf("stopping dummy tone %s", t.name)
	t.calls = append(t.calls, "stop")
	t.active = false
	return nil
}

func (t *DummyTone) IsActive() bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.active
}

func (t *DummyTone) Frequency() float64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.frequency
}

// Calls returns the recorded start/frequency/stop calls, in order.
func (t *DummyTone) Calls() []string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return append([]string(nil), t.calls...)
}

// CloseCount returns the number of times Close was called.
func (t *DummyTone) CloseCount() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.closeCount
}

func (t *DummyTone) Close() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.closeCount++
	t.active = false
	return nil
}

func (t *DummyTone) String() string {
	return fmt.Sprintf("dummy:%s", t.name)
}

var _ Tone = (*DummyTone)(nil)
