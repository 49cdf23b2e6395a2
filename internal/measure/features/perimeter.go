package features

import (
	"math"

	"github.com/brackenfield/objmeasure/internal/measure"
)

// chainCodeLength is the Euclidean length of retracing a Freeman chain
// code, weighting diagonal steps by sqrt(2) relative to axis-aligned
// ones and honoring anisotropic pixel sizes.
func chainCodeLength(cc *measure.ChainCode) float64 {
	px, py := 1.0, 1.0
	if cc.PixelSize[0] != 0 {
		px = cc.PixelSize[0]
	}
	if cc.PixelSize[1] != 0 {
		py = cc.PixelSize[1]
	}
	var length float64
	for _, code := range cc.Codes {
		switch code % 8 {
		case 0, 4: // E, W
			length += px
		case 2, 6: // N, S
			length += py
		default: // diagonal
			length += math.Hypot(px, py)
		}
	}
	return length
}

// perimeterFeature measures an object's boundary length from its chain
// code, following DIPlib's chain-code boundary-length convention: axis-
// aligned steps contribute the pixel size along that axis, diagonal
// steps contribute the Euclidean diagonal.
type perimeterFeature struct{}

func NewPerimeter() measure.Feature { return &perimeterFeature{} }

func (f *perimeterFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "Perimeter",
		Description: "Length of the object's outer boundary",
		NeedsGrey:   false,
		Kind:        measure.ChainCodeBased,
	}
}

func (f *perimeterFeature) Initialize(_ measure.LabelImage, _ measure.GreyImage, _ int) ([]measure.ValueDescriptor, error) {
	return []measure.ValueDescriptor{{ShortName: "Perimeter", Units: measure.Pixel}}, nil
}

func (f *perimeterFeature) Cleanup() {}

func (f *perimeterFeature) MeasureChainCode(cc *measure.ChainCode, out []float64) error {
	out[0] = chainCodeLength(cc)
	return nil
}
