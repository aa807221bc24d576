package oled

import (
	"testing"

	"github.com/larsks/display1306/v2/display"
	"github.com/larsks/display1306/v2/display/fakedriver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRunDisplay(t *testing.T) {
	d, err := New(true)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.ShowLines("guess: 4", "too low"))
	assert.Equal(t, []string{"guess: 4", "too low"}, d.Lines())

	require.NoError(t, d.Clear())
	assert.Empty(t, d.Lines())
}

func TestWrapAndClose(t *testing.T) {
	built, err := display.NewDisplay().WithDriver(fakedriver.NewFakeSSD1306()).Build()
	require.NoError(t, err)

	d, err := Wrap(built)
	require.NoError(t, err)

	require.NoError(t, d.ShowLines("you guessed it"))
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
}
