package drivers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Drivers(t *testing.T) {
	assert.Equal(t, []string{"dummy", "gpiocdev", "periph"}, ListDrivers())
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("dummy", &DummyFactory{}))

	err := r.Register("dummy", &DummyFactory{})
	assert.ErrorIs(t, err, ErrDriverRegistered)
}

func TestRegistry_Create(t *testing.T) {
	driver, err := Create("dummy", nil)
	require.NoError(t, err)
	assert.Equal(t, "dummy", driver.String())

	_, err = Create("piface", nil)
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		config  map[string]any
		wantErr error
	}{
		{name: "dummy without config", driver: "dummy", config: nil},
		{name: "dummy with option", driver: "dummy", config: map[string]any{"press-on-start": true}},
		{name: "dummy with unknown key", driver: "dummy", config: map[string]any{"switch-count": 4}, wantErr: ErrInvalidConfig},
		{name: "gpiocdev with chip", driver: "gpiocdev", config: map[string]any{"chip": "gpiochip4"}},
		{name: "gpiocdev with unknown key", driver: "gpiocdev", config: map[string]any{"spidev": "/dev/spidev0.0"}, wantErr: ErrInvalidConfig},
		{name: "periph without config", driver: "periph", config: map[string]any{}},
		{name: "periph with unknown key", driver: "periph", config: map[string]any{"chip": "gpiochip0"}, wantErr: ErrInvalidConfig},
		{name: "unknown driver", driver: "tasmota", config: nil, wantErr: ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.driver, tt.config)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGpiocdevFactory_DefaultChip(t *testing.T) {
	cfg, err := (&GpiocdevFactory{}).parseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultChip, cfg.Chip)
}
