package matrix

import (
	"image/color"
	"math/rand/v2"
)

// FlagImage is a small red, white and blue flag.
func FlagImage() []color.RGBA {
	r, b, w := Red, Blue, White
	return []color.RGBA{
		b, b, b, b, r, r, r, r,
		b, b, b, b, w, w, w, w,
		b, b, b, b, r, r, r, r,
		b, b, b, b, w, w, w, w,
		r, r, r, r, r, r, r, r,
		w, w, w, w, w, w, w, w,
		r, r, r, r, r, r, r, r,
		w, w, w, w, w, w, w, w,
	}
}

// RandomIntensity returns the grey, green and blue shades used by the
// random letter loop, all at one random intensity.
func RandomIntensity(rng *rand.Rand) (grey, green, blue color.RGBA) {
	v := uint8(rng.IntN(256))
	return color.RGBA{v, v, v, 255}, color.RGBA{0, v, 0, 255}, color.RGBA{0, 0, v, 255}
}
