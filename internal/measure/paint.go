package measure

import (
	"image"
	"image/color"
	"math"
)

// ObjectToMeasurement paints one feature's values back onto the label
// image's grid, producing a k-channel float64 raster where k is the
// feature's value count: each pixel takes its object's row from view,
// and background/unrecognized object ids are left at zero. This mirrors
// DIPlib's object-to-measurement image, used to visualize or threshold
// on a computed feature without re-walking the table by hand.
//
// Only 2-D label images are supported; higher-dimensionality callers
// should walk the table directly instead.
func ObjectToMeasurement(label LabelImage, view FeatureView) (*PlanarFeatureImage, error) {
	if label.Dimensionality() != 2 {
		return nil, NewInvalidInputError("object_to_measurement requires a 2-D label image", nil)
	}
	sizes := label.Sizes()
	width, height := sizes[0], sizes[1]
	channels := view.ValueCount()

	out := &PlanarFeatureImage{
		Width:    width,
		Height:   height,
		Channels: channels,
		Data:     make([]float64, width*height*channels),
	}

	coords := make([]int, 2)
	for y := 0; y < height; y++ {
		coords[1] = y
		for x := 0; x < width; x++ {
			coords[0] = x
			id := label.Label(coords)
			if id == 0 {
				continue
			}
			values, ok := view.ByObjectID(id)
			if !ok {
				continue
			}
			base := (y*width + x) * channels
			copy(out.Data[base:base+channels], values)
		}
	}
	return out, nil
}

// PlanarFeatureImage is a dense, channel-interleaved float64 raster —
// the result of ObjectToMeasurement. It implements image.Image over its
// first channel so callers can hand it straight to the standard
// library's image/draw or PNG encoders for a quick-look render.
type PlanarFeatureImage struct {
	Width, Height, Channels int
	Data                    []float64
}

// At returns channel 0 of the pixel at (x, y), scaled into a grayscale
// color for display purposes. Use Channel for the raw values.
func (p *PlanarFeatureImage) At(x, y int) color.Color {
	base := (y*p.Width + x) * p.Channels
	v := p.Data[base]
	if v < 0 {
		v = 0
	}
	if v > 65535 {
		v = 65535
	}
	return color.Gray16{Y: uint16(math.Round(v))}
}

// Channel returns the full slice of values at pixel (x, y), one entry
// per feature value column.
func (p *PlanarFeatureImage) Channel(x, y int) []float64 {
	base := (y*p.Width + x) * p.Channels
	return p.Data[base : base+p.Channels]
}

// Bounds satisfies image.Image.
func (p *PlanarFeatureImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// ColorModel satisfies image.Image.
func (p *PlanarFeatureImage) ColorModel() color.Model {
	return color.Gray16Model
}
