package hat

import (
	"fmt"
	"image/color"
	"time"

	"github.com/larsks/pilab/internal/config"
	"github.com/larsks/pilab/internal/matrix"
	"github.com/spf13/pflag"
)

const Program = "hat"

// Config holds the hat configuration
type Config struct {
	ConfigFile string        `mapstructure:"config"`
	Device     string        `mapstructure:"device"`
	DryRun     bool          `mapstructure:"dry-run"`
	Foreground string        `mapstructure:"fg"`
	Background string        `mapstructure:"bg"`
	Speed      time.Duration `mapstructure:"speed"`
	LetterTime time.Duration `mapstructure:"letter-time"`
	ImageTime  time.Duration `mapstructure:"image-time"`

	strict bool
}

func NewConfig() *Config {
	return &Config{
		ConfigFile: config.DefaultConfigFile(Program),
		Foreground: "white",
		Background: "black",
		Speed:      50 * time.Millisecond,
		LetterTime: time.Second,
		ImageTime:  5 * time.Second,
	}
}

func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Config file to use")
	fs.StringVar(&c.Device, "device", c.Device, "Framebuffer device (default: find the Sense HAT)")
	fs.BoolVarP(&c.DryRun, "dry-run", "n", c.DryRun, "Draw into memory instead of the framebuffer")
	fs.StringVar(&c.Foreground, "fg", c.Foreground, "Text colour (name, r,g,b or #rrggbb)")
	fs.StringVar(&c.Background, "bg", c.Background, "Background colour")
	fs.DurationVar(&c.Speed, "speed", c.Speed, "Time per column when scrolling a message")
	fs.DurationVar(&c.LetterTime, "letter-time", c.LetterTime, "Time each letter is shown")
	fs.DurationVar(&c.ImageTime, "image-time", c.ImageTime, "Time the image is shown")
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
	loader.SetDefaults(map[string]any{
		"device":      "",
		"dry-run":     false,
		"fg":          "white",
		"bg":          "black",
		"speed":       50 * time.Millisecond,
		"letter-time": time.Second,
		"image-time":  5 * time.Second,
	})

	return loader.LoadConfigWithFlagSet(c, fs)
}

// Colours parses the foreground and background colours.
func (c *Config) Colours() (fg, bg color.RGBA, err error) {
	if fg, err = matrix.ParseColour(c.Foreground); err != nil {
		return fg, bg, fmt.Errorf("fg: %w", err)
	}
	if bg, err = matrix.ParseColour(c.Background); err != nil {
		return fg, bg, fmt.Errorf("bg: %w", err)
	}
	return fg, bg, nil
}

func (c *Config) Validate() error {
	if _, _, err := c.Colours(); err != nil {
		return err
	}
	for name, d := range map[string]time.Duration{
		"speed":       c.Speed,
		"letter-time": c.LetterTime,
		"image-time":  c.ImageTime,
	} {
		if d < 0 {
			return fmt.Errorf("%s: negative duration %s", name, d)
		}
	}
	return nil
}
