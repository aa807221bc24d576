package matrix

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// SenseHatFramebufferName is what the Sense HAT kernel driver reports in
// /sys/class/graphics/fbN/name.
const SenseHatFramebufferName = "RPi-Sense FB"

// FramebufferDriver writes frames to a Linux framebuffer device in RGB565.
type FramebufferDriver struct {
	file *os.File
	buf  []byte
}

// FindFramebuffer returns the device node of the framebuffer whose name is
// name, searching under sysfsRoot (normally /sys/class/graphics).
func FindFramebuffer(sysfsRoot, name string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(sysfsRoot, "fb*", "name"))
	if err != nil {
		return "", err
	}

	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(content)) == name {
			return filepath.Join("/dev", filepath.Base(filepath.Dir(path))), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoDevice, name)
}

// NewFramebufferDriver opens device. An empty device selects the Sense HAT
// framebuffer.
func NewFramebufferDriver(device string) (*FramebufferDriver, error) {
	if device == "" {
		found, err := FindFramebuffer("/sys/class/graphics", SenseHatFramebufferName)
		if err != nil {
			return nil, err
		}
		device = found
	}

	file, err := os.OpenFile(device, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", device, err)
	}

	log.Printf("using LED matrix framebuffer %s", device)
	return &FramebufferDriver{
		file: file,
		buf:  make([]byte, PixelCount*2),
	}, nil
}

// rgb565 packs c into the Sense HAT's 16-bit pixel format.
func rgb565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

func encodeFrame(buf []byte, pixels []color.RGBA) {
	for i, c := range pixels {
		binary.LittleEndian.PutUint16(buf[i*2:], rgb565(c))
	}
}

func (d *FramebufferDriver) Write(pixels []color.RGBA) error {
	encodeFrame(d.buf, pixels)
	_, err := d.file.WriteAt(d.buf, 0)
	return err
}

func (d *FramebufferDriver) Close() error {
	return d.file.Close()
}
