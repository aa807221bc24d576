package tone

import (
	"fmt"
	"log"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// PWMTone drives a buzzer from a hardware PWM capable pin through periph.io.
// On a Raspberry Pi these are GPIO12, GPIO13, GPIO18 and GPIO19.
type PWMTone struct {
	pin       gpio.PinOut
	frequency float64
	dutyCycle float64
	active    bool
	mutex     sync.RWMutex
}

// NewPWMTone creates a silent tone on pin with the given initial frequency.
func NewPWMTone(pin gpio.PinOut, frequency float64) (*PWMTone, error) {
	if pin == nil {
		return nil, ErrOutputRequired
	}
	if err := validateFrequency(frequency); err != nil {
		return nil, err
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStop, pin.Name(), err)
	}

	return &PWMTone{
		pin:       pin,
		frequency: frequency,
		dutyCycle: 50,
	}, nil
}

func toDuty(percent float64) gpio.Duty {
	return gpio.Duty(float64(gpio.DutyMax) * percent / 100)
}

func toFrequency(hz float64) physic.Frequency {
	return physic.Frequency(hz * float64(physic.Hertz))
}

func (t *PWMTone) Start(dutyCycle float64) error {
	if err := validateDutyCycle(dutyCycle); err != nil {
		return err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if err := t.pin.PWM(toDuty(dutyCycle), toFrequency(t.frequency)); err != nil {
		return fmt.Errorf("%w on %s: %v", ErrStart, t.pin.Name(), err)
	}
	t.dutyCycle = dutyCycle
	t.active = true
	return nil
}

func (t *PWMTone) SetFrequency(hz float64) error {
	if err := validateFrequency(hz); err != nil {
		return err
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.active {
		if err := t.pin.PWM(toDuty(t.dutyCycle), toFrequency(hz)); err != nil {
			return fmt.Errorf("%w on %s: %v", ErrFrequency, t.pin.Name(), err)
		}
	}
	t.frequency = hz
	return nil
}

func (t *PWMTone) Stop() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.active {
		return nil
	}
	if err := t.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w on %s: %v", ErrStop, t.pin.Name(), err)
	}
	t.active = false
	return nil
}

func (t *PWMTone) IsActive() bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.active
}

func (t *PWMTone) Frequency() float64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.frequency
}

func (t *PWMTone) Close() error {
	err := t.Stop()
	if haltErr := t.pin.Halt(); haltErr != nil {
		log.Printf("failed to halt %s: %v", t.pin.Name(), haltErr)
	}
	return err
}

func (t *PWMTone) String() string {
	return fmt.Sprintf("pwm tone on %s", t.pin.Name())
}

var _ Tone = (*PWMTone)(nil)
