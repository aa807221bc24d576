package matrix

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// basicfont's 7x13 face has an ascent of 11; rows 2 through 11 hold
// everything but the lowest descenders and the empty top rows.
var glyphSource = image.Rect(0, 2, 7, 12)

// glyphWidth is the width of a letter after scaling, leaving the last
// column as spacing.
const glyphWidth = 7

// glyphMask renders r and scales it to the height of the matrix. The
// result is Width columns wide.
func glyphMask(r rune) *image.Alpha {
	face := basicfont.Face7x13

	full := image.NewAlpha(image.Rect(0, 0, face.Advance, face.Height))
	d := &font.Drawer{
		Dst:  full,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(string(r))

	mask := image.NewAlpha(image.Rect(0, 0, Width, Height))
	draw.NearestNeighbor.Scale(mask, image.Rect(0, 0, glyphWidth, Height), full, glyphSource, draw.Src, nil)
	return mask
}

func lit(mask *image.Alpha, x, y int) bool {
	return mask.AlphaAt(x, y).A >= 0x80
}

func glyphFrame(r rune, fg, bg color.RGBA) []color.RGBA {
	mask := glyphMask(r)

	pixels := make([]color.RGBA, PixelCount)
	for y := range Height {
		for x := range Width {
			if lit(mask, x, y) {
				pixels[y*Width+x] = fg
			} else {
				pixels[y*Width+x] = bg
			}
		}
	}
	return pixels
}

// messageStrip lays text out as a sequence of columns, each a bitmap of
// lit rows, padded with a blank screen on both sides so the message
// scrolls fully in and out.
func messageStrip(text string) [][Height]bool {
	strip := make([][Height]bool, Width)

	for _, r := range text {
		mask := glyphMask(r)
		for x := range Width {
			var column [Height]bool
			for y := range Height {
				column[y] = lit(mask, x, y)
			}
			strip = append(strip, column)
		}
	}

	return append(strip, make([][Height]bool, Width)...)
}

func window(strip [][Height]bool, offset int, fg, bg color.RGBA) []color.RGBA {
	pixels := make([]color.RGBA, PixelCount)
	for x := range Width {
		column := strip[offset+x]
		for y := range Height {
			if column[y] {
				pixels[y*Width+x] = fg
			} else {
				pixels[y*Width+x] = bg
			}
		}
	}
	return pixels
}
