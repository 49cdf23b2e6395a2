// Package rasterimage provides dense, flat-slice-backed concrete
// implementations of measure.LabelImage and measure.GreyImage, plus
// loaders that decode ordinary image.Image rasters into them. The
// measure package treats labeled/intensity images as opaque external
// collaborators; this package is the "someone has to
// implement that interface" piece.
package rasterimage

import "github.com/brackenfield/objmeasure/internal/measure"

// LabelImage is a dense, row-major object-id raster.
type LabelImage struct {
	width, height int
	pixelSize     [2]float64
	data          []uint32
}

// NewLabelImage allocates a zero-filled (all-background) label image.
func NewLabelImage(width, height int, pixelSize [2]float64) *LabelImage {
	if pixelSize[0] == 0 {
		pixelSize[0] = 1
	}
	if pixelSize[1] == 0 {
		pixelSize[1] = 1
	}
	return &LabelImage{
		width:     width,
		height:    height,
		pixelSize: pixelSize,
		data:      make([]uint32, width*height),
	}
}

// Set writes the object id at (x, y).
func (l *LabelImage) Set(x, y int, id measure.ObjectID) {
	l.data[y*l.width+x] = uint32(id)
}

func (l *LabelImage) Dimensionality() int      { return 2 }
func (l *LabelImage) Sizes() []int             { return []int{l.width, l.height} }
func (l *LabelImage) Strides() []int           { return []int{1, l.width} }
func (l *LabelImage) PixelSize() []float64     { return []float64{l.pixelSize[0], l.pixelSize[1]} }
func (l *LabelImage) DataType() measure.DataType { return measure.DataTypeUint32 }

func (l *LabelImage) Label(coords []int) measure.ObjectID {
	return measure.ObjectID(l.data[coords[1]*l.width+coords[0]])
}

// GreyImage is a dense, row-major, channel-interleaved intensity
// raster.
type GreyImage struct {
	width, height, channels int
	data                    []float64
}

// NewGreyImage allocates a zero-filled intensity image.
func NewGreyImage(width, height, channels int) *GreyImage {
	if channels < 1 {
		channels = 1
	}
	return &GreyImage{
		width: width, height: height, channels: channels,
		data: make([]float64, width*height*channels),
	}
}

// Set writes the value of one channel at (x, y).
func (g *GreyImage) Set(x, y, channel int, value float64) {
	g.data[(y*g.width+x)*g.channels+channel] = value
}

func (g *GreyImage) Dimensionality() int      { return 2 }
func (g *GreyImage) Sizes() []int             { return []int{g.width, g.height} }
func (g *GreyImage) Strides() []int           { return []int{1, g.width} }
func (g *GreyImage) Channels() int            { return g.channels }
func (g *GreyImage) DataType() measure.DataType { return measure.DataTypeFloat64 }

func (g *GreyImage) Value(coords []int, channel int) float64 {
	return g.data[(coords[1]*g.width+coords[0])*g.channels+channel]
}
