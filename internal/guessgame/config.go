package guessgame

import (
	"fmt"

	"github.com/larsks/pilab/internal/config"
	"github.com/larsks/pilab/internal/drivers"
	"github.com/larsks/pilab/internal/gpio"
	"github.com/larsks/pilab/internal/guess"
	"github.com/larsks/pilab/internal/tone"
	"github.com/spf13/pflag"
)

// Program is the name used for the default config file.
const Program = "guess"

// Config holds the guess configuration
type Config struct {
	ConfigFile string `mapstructure:"config"`

	drivers.HardwareConfig `mapstructure:",squash"`

	LEDPin    string  `mapstructure:"led-pin"`
	BuzzerPin string  `mapstructure:"buzzer-pin"`
	Frequency float64 `mapstructure:"frequency"`
	DutyCycle float64 `mapstructure:"duty-cycle"`
	Variant   string  `mapstructure:"variant"`
	Min       int     `mapstructure:"min"`
	Max       int     `mapstructure:"max"`

	// MatrixDevice is the LED matrix framebuffer; empty finds the Sense HAT.
	MatrixDevice string `mapstructure:"matrix-device"`

	strict bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		ConfigFile:     config.DefaultConfigFile(Program),
		HardwareConfig: drivers.NewHardwareConfig(),
		LEDPin:         "PIN11",
		BuzzerPin:      "PIN32",
		Frequency:      tone.DefaultFrequency,
		DutyCycle:      50,
		Variant:        guess.DefaultVariant,
		Min:            guess.DefaultRange.Min,
		Max:            guess.DefaultRange.Max,
	}
}

// AddFlags adds command-line flags for all configuration options
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Config file to use")
	c.HardwareConfig.AddFlags(fs)
	fs.StringVar(&c.LEDPin, "led-pin", c.LEDPin, "LED pin")
	fs.StringVar(&c.BuzzerPin, "buzzer-pin", c.BuzzerPin, "Passive buzzer pin")
	fs.Float64Var(&c.Frequency, "frequency", c.Frequency, "Initial buzzer frequency in Hz")
	fs.Float64Var(&c.DutyCycle, "duty-cycle", c.DutyCycle, "Buzzer duty cycle in percent")
	fs.StringVar(&c.Variant, "variant", c.Variant, fmt.Sprintf("Feedback variant (%v)", guess.VariantNames()))
	fs.IntVar(&c.Min, "min", c.Min, "Smallest possible target")
	fs.IntVar(&c.Max, "max", c.Max, "Largest possible target")
	fs.StringVar(&c.MatrixDevice, "matrix-device", c.MatrixDevice, "LED matrix framebuffer device (default: auto-detect)")
}

// SetStrictMode makes loading fail on unknown config file keys.
func (c *Config) SetStrictMode(strict bool) {
	c.strict = strict
}

// LoadConfigWithFlagSet loads configuration with precedence defaults <
// config file < explicitly set flags.
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
		"led-pin":       "PIN11",
		"buzzer-pin":    "PIN32",
		"frequency":     tone.DefaultFrequency,
		"duty-cycle":    50.0,
		"variant":       guess.DefaultVariant,
		"min":           guess.DefaultRange.Min,
		"max":           guess.DefaultRange.Max,
		"matrix-device": "",
	})

	return loader.LoadConfigWithFlagSet(c, fs)
}

// Range is the range the target is drawn from.
func (c *Config) Range() guess.Range {
	return guess.Range{Min: c.Min, Max: c.Max}
}

func (c *Config) Validate() error {
	if _, err := guess.Variant(c.Variant); err != nil {
		return err
	}
	if err := c.Range().Validate(); err != nil {
		return err
	}
	if _, err := gpio.ParsePin(c.LEDPin); err != nil {
		return fmt.Errorf("led-pin: %w", err)
	}
	if _, err := gpio.ParsePin(c.BuzzerPin); err != nil {
		return fmt.Errorf("buzzer-pin: %w", err)
	}
	if !(c.Frequency > 0) {
		return fmt.Errorf("%w: %v", tone.ErrInvalidFrequency, c.Frequency)
	}
	if c.DutyCycle <= 0 || c.DutyCycle > 100 {
		return fmt.Errorf("%w: %v", tone.ErrInvalidDutyCycle, c.DutyCycle)
	}
	return c.HardwareConfig.Validate()
}
