package rasterimage

import (
	"image"
	"image/color"
	"math"

	"github.com/brackenfield/objmeasure/internal/measure"
)

// DecodeLabelImage reads an object-id raster from an ordinary
// image.Image, treating each pixel's 16-bit grayscale value (after
// conversion through color.Gray16Model) as the object id. This is the
// convention most labeled-image tooling uses for fewer than 65536
// objects; callers with larger label spaces should build a LabelImage
// directly instead of decoding through image.Image.
func DecodeLabelImage(img image.Image, pixelSize [2]float64) *LabelImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := NewLabelImage(width, height, pixelSize)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			out.Set(x, y, measure.ObjectID(c.Y))
		}
	}
	return out
}

// DecodeGreyImage reads a single-channel intensity raster from an
// ordinary image.Image, using the HSV value channel (max of the
// normalized R/G/B components) as the per-pixel intensity, scaled to
// 0..65535 to match color.Gray16 range.
func DecodeGreyImage(img image.Image) *GreyImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := NewGreyImage(width, height, 1)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			rf := float64(r) / 65535.0
			gf := float64(g) / 65535.0
			bf := float64(b) / 65535.0
			v := math.Max(rf, math.Max(gf, bf))
			out.Set(x, y, 0, v*65535.0)
		}
	}
	return out
}
