package drivers

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHardwareConfig(t *testing.T) {
	h := NewHardwareConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	h.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--gpiocdev.chip", "gpiochip4"}))

	assert.Equal(t, "gpiocdev", h.DriverName())
	assert.Equal(t, map[string]any{"chip": "gpiochip4"}, h.driverConfig())
	assert.NoError(t, h.Validate())

	require.NoError(t, fs.Parse([]string{"-n"}))
	assert.Equal(t, "dummy", h.DriverName())
	assert.Nil(t, h.driverConfig())

	driver, err := h.Open()
	require.NoError(t, err)
	assert.IsType(t, &DummyDriver{}, driver)
}

func TestHardwareConfigUnknownDriver(t *testing.T) {
	h := NewHardwareConfig()
	h.Driver = "piface"

	assert.ErrorIs(t, h.Validate(), ErrUnknownDriver)
	_, err := h.Open()
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
