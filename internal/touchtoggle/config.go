package touchtoggle

import (
	"fmt"
	"time"

	"github.com/larsks/pilab/internal/config"
	"github.com/larsks/pilab/internal/drivers"
	"github.com/larsks/pilab/internal/gpio"
	"github.com/larsks/pilab/internal/tone"
	"github.com/larsks/pilab/internal/touch"
	"github.com/spf13/pflag"
)

const Program = "touch-toggle"

// Config holds the touch-toggle configuration
type Config struct {
	ConfigFile string `mapstructure:"config"`

	drivers.HardwareConfig `mapstructure:",squash"`

	TouchPin  string        `mapstructure:"touch-pin"`
	LEDPin    string        `mapstructure:"led-pin"`
	BuzzerPin string        `mapstructure:"buzzer-pin"`
	Buzzer    bool          `mapstructure:"buzzer"`
	Frequency float64       `mapstructure:"frequency"`
	DutyCycle float64       `mapstructure:"duty-cycle"`
	Debounce  time.Duration `mapstructure:"debounce"`

	strict bool
}

func NewConfig() *Config {
	return &Config{
		ConfigFile:     config.DefaultConfigFile(Program),
		HardwareConfig: drivers.NewHardwareConfig(),
		TouchPin:       "PIN31:active-low",
		LEDPin:         "PIN11",
		BuzzerPin:      "PIN32",
		Frequency:      tone.DefaultFrequency,
		DutyCycle:      50,
		Debounce:       touch.DefaultDebounce,
	}
}

func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Config file to use")
	c.HardwareConfig.AddFlags(fs)
	fs.StringVar(&c.TouchPin, "touch-pin", c.TouchPin, "Touch sensor pin")
	fs.StringVar(&c.LEDPin, "led-pin", c.LEDPin, "LED pin")
	fs.StringVar(&c.BuzzerPin, "buzzer-pin", c.BuzzerPin, "Buzzer pin")
	fs.BoolVar(&c.Buzzer, "buzzer", c.Buzzer, "Sound the buzzer while the sensor is touched")
	fs.Float64Var(&c.Frequency, "frequency", c.Frequency, "Buzzer frequency in Hz")
	fs.Float64Var(&c.DutyCycle, "duty-cycle", c.DutyCycle, "Buzzer duty cycle in percent")
	fs.DurationVar(&c.Debounce, "debounce", c.Debounce, "Touch sensor debounce interval")
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
		"touch-pin":  "PIN31:active-low",
		"led-pin":    "PIN11",
		"buzzer-pin": "PIN32",
		"buzzer":     false,
		"frequency":  tone.DefaultFrequency,
		"duty-cycle": 50.0,
		"debounce":   touch.DefaultDebounce,
	})

	return loader.LoadConfigWithFlagSet(c, fs)
}

func (c *Config) Validate() error {
	for _, pin := range []struct{ name, spec string }{
		{"touch-pin", c.TouchPin},
		{"led-pin", c.LEDPin},
		{"buzzer-pin", c.BuzzerPin},
	} {
		if _, err := gpio.ParsePin(pin.spec); err != nil {
			return fmt.Errorf("%s: %w", pin.name, err)
		}
	}
	if !(c.Frequency > 0) {
		return fmt.Errorf("%w: %v", tone.ErrInvalidFrequency, c.Frequency)
	}
	if c.DutyCycle <= 0 || c.DutyCycle > 100 {
		return fmt.Errorf("%w: %v", tone.ErrInvalidDutyCycle, c.DutyCycle)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: negative debounce %s", drivers.ErrInvalidConfig, c.Debounce)
	}
	return c.HardwareConfig.Validate()
}
