package tone

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/larsks/pilab/internal/output"
)

// SoftTone generates a square wave by toggling an ordinary digital output
// from a goroutine. It is good enough for a piezo buzzer on pins without
// hardware PWM.
type SoftTone struct {
	out       output.Output
	frequency float64
	dutyCycle float64
	stopCh    chan struct{}
	doneCh    chan struct{}
	mutex     sync.RWMutex
	running   bool
}

// NewSoftTone creates a silent tone on out with the given initial frequency.
func NewSoftTone(out output.Output, frequency float64) (*SoftTone, error) {
	if out == nil {
		return nil, ErrOutputRequired
	}
	if err := validateFrequency(frequency); err != nil {
		return nil, err
	}

	return &SoftTone{
		out:       out,
		frequency: frequency,
		dutyCycle: 50,
	}, nil
}

func (t *SoftTone) Start(dutyCycle float64) error {
	if err := validateDutyCycle(dutyCycle); err != nil {
		return err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.dutyCycle = dutyCycle
	if t.running {
		return nil
	}

	t.running = true
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	go t.toneLoop(t.stopCh, t.doneCh)

	return nil
}

func (t *SoftTone) SetFrequency(hz float64) error {
	if err := validateFrequency(hz); err != nil {
		return err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.frequency = hz
	return nil
}

func (t *SoftTone) Stop() error {
	t.mutex.Lock()
	if !t.running {
		t.mutex.Unlock()
		return nil
	}
	close(t.stopCh)
	doneCh := t.doneCh
	t.running = false
	t.mutex.Unlock()

	// the loop takes the read lock, so wait without holding the write lock
	<-doneCh

	if err := t.out.TurnOff(); err != nil {
		return fmt.Errorf("%w: %v", ErrStop, err)
	}
	return nil
}

func (t *SoftTone) IsActive() bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.running
}

func (t *SoftTone) Frequency() float64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.frequency
}

// DutyCycle returns the most recently requested duty cycle.
func (t *SoftTone) DutyCycle() float64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.dutyCycle
}

func (t *SoftTone) Close() error {
	err := t.Stop()
	if closeErr := t.out.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (t *SoftTone) String() string {
	return fmt.Sprintf("soft tone on %s", t.out)
}

// halfPeriods returns how long the output stays high and low in one cycle
// at the current settings.
func (t *SoftTone) halfPeriods() (time.Duration, time.Duration) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	period := time.Duration(float64(time.Second) / t.frequency)
	onTime := time.Duration(float64(period) * t.dutyCycle / 100)
	return onTime, period - onTime
}

func (t *SoftTone) toneLoop(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	clock := time.NewTimer(0)
	defer clock.Stop()

	state := false

	for {
		select {
		case <-stopCh:
			return
		case <-clock.C:
			onTime, offTime := t.halfPeriods()

			state = !state
			switch {
			case onTime == 0:
				state = false
			case offTime == 0:
				state = true
			}

			if err := t.out.Set(state); err != nil {
				log.Printf("tone failed to drive %s: %v", t.out, err)
			}

			if state {
				clock.Reset(onTime)
			} else {
				clock.Reset(offTime)
			}
		}
	}
}

var _ Tone = (*SoftTone)(nil)
