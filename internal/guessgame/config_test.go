package guessgame

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/larsks/pilab/internal/config"
	"github.com/larsks/pilab/internal/drivers"
	"github.com/larsks/pilab/internal/gpio"
	"github.com/larsks/pilab/internal/guess"
	"github.com/larsks/pilab/internal/tone"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T, strict bool, args ...string) (*Config, error) {
	t.Helper()
	cfg := NewConfig()
	cfg.SetStrictMode(strict)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cfg, cfg.LoadConfigWithFlagSet(fs)
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(t, true, "--config", "")
	require.NoError(t, err)

	assert.Equal(t, "gpiocdev", cfg.Driver)
	assert.Equal(t, drivers.DefaultChip, cfg.Gpiocdev.Chip)
	assert.Equal(t, "PIN11", cfg.LEDPin)
	assert.Equal(t, "PIN32", cfg.BuzzerPin)
	assert.Equal(t, tone.DefaultFrequency, cfg.Frequency)
	assert.Equal(t, 50.0, cfg.DutyCycle)
	assert.Equal(t, guess.DefaultVariant, cfg.Variant)
	assert.Equal(t, guess.DefaultRange, cfg.Range())
	assert.False(t, cfg.DryRun)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join("testdata", "guess.toml")

	cfg, err := loadConfig(t, true, "--config", path, "--max", "30", "-n")
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "periph", cfg.Driver)
	assert.Equal(t, "gpiochip4", cfg.Gpiocdev.Chip)
	assert.Equal(t, "GPIO22", cfg.LEDPin)
	assert.Equal(t, "buzzer", cfg.Variant)
	assert.Equal(t, 30, cfg.Max, "flags win over the file")
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "dummy", cfg.DriverName())
}

func TestConfigMissingFile(t *testing.T) {
	_, err := loadConfig(t, false, "--config", filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func TestConfigStrictMode(t *testing.T) {
	path := filepath.Join("testdata", "unknown-key.toml")

	cfg, err := loadConfig(t, false, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "tones", cfg.Variant)

	_, err = loadConfig(t, true, "--config", path)
	assert.ErrorIs(t, err, config.ErrConfigUnmarshal)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "defaults", modify: func(c *Config) {}},
		{name: "unknown variant", modify: func(c *Config) { c.Variant = "fanfare" }, wantErr: guess.ErrUnknownVariant},
		{name: "empty range", modify: func(c *Config) { c.Min, c.Max = 10, 1 }, wantErr: guess.ErrInvalidRange},
		{name: "bad led pin", modify: func(c *Config) { c.LEDPin = "PIN2" }, wantErr: gpio.ErrInvalidPinSpec},
		{name: "bad buzzer pin", modify: func(c *Config) { c.BuzzerPin = "nope" }, wantErr: gpio.ErrInvalidPinSpec},
		{name: "zero frequency", modify: func(c *Config) { c.Frequency = 0 }, wantErr: tone.ErrInvalidFrequency},
		{name: "duty cycle", modify: func(c *Config) { c.DutyCycle = 120 }, wantErr: tone.ErrInvalidDutyCycle},
		{name: "zero duty cycle", modify: func(c *Config) { c.DutyCycle = 0 }, wantErr: tone.ErrInvalidDutyCycle},
		{name: "range too wide", modify: func(c *Config) { c.Min, c.Max = 0, math.MaxInt }, wantErr: guess.ErrInvalidRange},
		{name: "unknown driver", modify: func(c *Config) { c.Driver = "piface" }, wantErr: drivers.ErrUnknownDriver},
		{name: "dry run ignores driver", modify: func(c *Config) { c.Driver = "piface"; c.DryRun = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
