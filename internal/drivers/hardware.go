package drivers

import (
	"fmt"
	"log"

	"github.com/spf13/pflag"
)

// HardwareConfig selects a driver. Program configs embed it with
// `mapstructure:",squash"` so its keys sit at the top level of the file.
type HardwareConfig struct {
	Driver   string         `mapstructure:"driver"`
	Gpiocdev GpiocdevConfig `mapstructure:"gpiocdev"`
	DryRun   bool           `mapstructure:"dry-run"`
}

func NewHardwareConfig() HardwareConfig {
	return HardwareConfig{
		Driver:   "gpiocdev",
		Gpiocdev: GpiocdevConfig{Chip: DefaultChip},
	}
}

func (h *HardwareConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&h.Driver, "driver", h.Driver, fmt.Sprintf("GPIO driver (%v)", ListDrivers()))
	fs.StringVar(&h.Gpiocdev.Chip, "gpiocdev.chip", h.Gpiocdev.Chip, "GPIO chip used by the gpiocdev driver")
	fs.BoolVarP(&h.DryRun, "dry-run", "n", h.DryRun, "Use in-memory devices instead of hardware")
}

// Defaults returns the config loader defaults for the hardware keys.
func (h *HardwareConfig) Defaults() map[string]any {
	return map[string]any{
		"driver":        "gpiocdev",
		"gpiocdev.chip": DefaultChip,
		"dry-run":       false,
	}
}

// DriverName is the driver Open will create.
func (h *HardwareConfig) DriverName() string {
	if h.DryRun {
		return "dummy"
	}
	return h.Driver
}

func (h *HardwareConfig) driverConfig() map[string]any {
	if h.DriverName() == "gpiocdev" {
		return map[string]any{"chip": h.Gpiocdev.Chip}
	}
	return nil
}

func (h *HardwareConfig) Validate() error {
	return ValidateConfig(h.DriverName(), h.driverConfig())
}

// Open creates the selected driver from the default registry.
func (h *HardwareConfig) Open() (Driver, error) {
	driver, err := Create(h.DriverName(), h.driverConfig())
	if err != nil {
		return nil, err
	}
	log.Printf("using %s driver", driver)
	return driver, nil
}
