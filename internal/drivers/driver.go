// Package drivers provides the hardware back ends that hand out outputs,
// tones and sensors for pin specifications such as "PIN11" or
// "GPIO6:active-low".
package drivers

import (
	"fmt"
	"time"

	"github.com/larsks/pilab/internal/output"
	"github.com/larsks/pilab/internal/tone"
	"github.com/larsks/pilab/internal/touch"
	"github.com/mitchellh/mapstructure"
)

// Driver hands out pins from one GPIO back end. Outputs, tones and sensors
// it returns are owned by the caller and must be closed (or stopped) before
// the driver itself.
type Driver interface {
	Output(pinSpec string) (output.Output, error)
	Tone(pinSpec string, frequency float64) (tone.Tone, error)
	Sensor(name, pinSpec string, debounce time.Duration) (touch.Sensor, error)
	Close() error
	String() string
}

// decodeConfig decodes a driver configuration map into target, rejecting
// keys the driver does not know about.
func decodeConfig(config map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
