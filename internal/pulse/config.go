package pulse

import (
	"fmt"
	"time"

	"github.com/larsks/pilab/internal/actuator"
	"github.com/larsks/pilab/internal/config"
	"github.com/larsks/pilab/internal/drivers"
	"github.com/larsks/pilab/internal/gpio"
	"github.com/larsks/pilab/internal/tone"
	"github.com/spf13/pflag"
)

const Program = "pulse"

// Config holds the pulse configuration
type Config struct {
	ConfigFile string `mapstructure:"config"`

	drivers.HardwareConfig `mapstructure:",squash"`

	LEDPin     string        `mapstructure:"led-pin"`
	BuzzerPin  string        `mapstructure:"buzzer-pin"`
	Frequency  float64       `mapstructure:"frequency"`
	DutyCycle  float64       `mapstructure:"duty-cycle"`
	LEDTime    time.Duration `mapstructure:"led-time"`
	BuzzerTime time.Duration `mapstructure:"buzzer-time"`

	strict bool
}

func NewConfig() *Config {
	return &Config{
		ConfigFile:     config.DefaultConfigFile(Program),
		HardwareConfig: drivers.NewHardwareConfig(),
		LEDPin:         "PIN11",
		BuzzerPin:      "PIN32",
		Frequency:      tone.DefaultFrequency,
		DutyCycle:      50,
		LEDTime:        2 * time.Second,
		BuzzerTime:     time.Second,
	}
}

func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Config file to use")
	c.HardwareConfig.AddFlags(fs)
	fs.StringVar(&c.LEDPin, "led-pin", c.LEDPin, "LED pin")
	fs.StringVar(&c.BuzzerPin, "buzzer-pin", c.BuzzerPin, "Buzzer pin")
	fs.Float64Var(&c.Frequency, "frequency", c.Frequency, "Buzzer frequency in Hz")
	fs.Float64Var(&c.DutyCycle, "duty-cycle", c.DutyCycle, "Buzzer duty cycle in percent")
	fs.DurationVar(&c.LEDTime, "led-time", c.LEDTime, "How long the LED stays on")
	fs.DurationVar(&c.BuzzerTime, "buzzer-time", c.BuzzerTime, "How long the buzzer sounds")
}

func (c *Config) SetStrictMode(strict bool) {
	c.strict = strict
}

func (c *Config) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	configFile, err := config.ResolveConfigFile(c.ConfigFile, config.DefaultConfigFile(Program))
	if err != nil {
		return err
	}

	loader := config.NewConfigLoader()
	loader.SetConfigFile(configFile)
	loader.SetStrictMode(c.strict)
	loader.SetDefaults(c.HardwareConfig.Defaults())
	loader.SetDefaults(map[string]any{
		"led-pin":     "PIN11",
		"buzzer-pin":  "PIN32",
		"frequency":   tone.DefaultFrequency,
		"duty-cycle":  50.0,
		"led-time":    2 * time.Second,
		"buzzer-time": time.Second,
	})

	return loader.LoadConfigWithFlagSet(c, fs)
}

func (c *Config) Validate() error {
	if _, err := gpio.ParsePin(c.LEDPin); err != nil {
		return fmt.Errorf("led-pin: %w", err)
	}
	if _, err := gpio.ParsePin(c.BuzzerPin); err != nil {
		return fmt.Errorf("buzzer-pin: %w", err)
	}
	return c.HardwareConfig.Validate()
}

// Sequence returns the actions that pulse the named target.
func (c *Config) Sequence(target string) (actuator.Sequence, error) {
	var seq actuator.Sequence
	switch target {
	case "led":
		seq = actuator.Sequence{
			actuator.LED{On: true, Hold: c.LEDTime},
			actuator.LED{On: false},
		}
	case "buzzer":
		seq = actuator.Sequence{
			actuator.Tone{Frequency: c.Frequency, DutyCycle: c.DutyCycle, Hold: c.BuzzerTime},
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}

	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return seq, nil
}
