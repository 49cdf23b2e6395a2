package features

import (
	"math"

	"github.com/brackenfield/objmeasure/internal/measure"
)

// circularityFeature derives a 0..1-ish shape-compactness score from
// Size and Perimeter (4*pi*area / perimeter^2, equal to 1 for a perfect
// disc). A Composite feature, with Size/Perimeter as its declared
// dependencies.
type circularityFeature struct{}

func NewCircularity() measure.Feature { return &circularityFeature{} }

func (f *circularityFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "Circularity",
		Description: "4*pi*Size / Perimeter^2",
		NeedsGrey:   false,
		Kind:        measure.Composite,
	}
}

func (f *circularityFeature) Initialize(_ measure.LabelImage, _ measure.GreyImage, _ int) ([]measure.ValueDescriptor, error) {
	return []measure.ValueDescriptor{{ShortName: "Circularity", Units: measure.Dimensionless}}, nil
}

func (f *circularityFeature) Cleanup() {}

func (f *circularityFeature) Dependencies() []string {
	return []string{"Size", "Perimeter"}
}

func (f *circularityFeature) MeasureComposite(deps measure.ObjectRowView, out []float64) error {
	size, ok := deps.ByFeatureName("Size")
	if !ok {
		return measure.NewUnknownFeatureError("Size")
	}
	perimeter, ok := deps.ByFeatureName("Perimeter")
	if !ok {
		return measure.NewUnknownFeatureError("Perimeter")
	}
	if perimeter[0] == 0 {
		out[0] = 0
		return nil
	}
	out[0] = 4 * math.Pi * size[0] / (perimeter[0] * perimeter[0])
	return nil
}

// solidityFeature derives Size / ConvexArea, a measure of how much of
// the convex hull the object actually fills.
type solidityFeature struct{}

func NewSolidity() measure.Feature { return &solidityFeature{} }

func (f *solidityFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "Solidity",
		Description: "Size / ConvexArea",
		NeedsGrey:   false,
		Kind:        measure.Composite,
	}
}

func (f *solidityFeature) Initialize(_ measure.LabelImage, _ measure.GreyImage, _ int) ([]measure.ValueDescriptor, error) {
	return []measure.ValueDescriptor{{ShortName: "Solidity", Units: measure.Dimensionless}}, nil
}

func (f *solidityFeature) Cleanup() {}

func (f *solidityFeature) Dependencies() []string {
	return []string{"Size", "ConvexArea"}
}

func (f *solidityFeature) MeasureComposite(deps measure.ObjectRowView, out []float64) error {
	size, ok := deps.ByFeatureName("Size")
	if !ok {
		return measure.NewUnknownFeatureError("Size")
	}
	convexArea, ok := deps.ByFeatureName("ConvexArea")
	if !ok {
		return measure.NewUnknownFeatureError("ConvexArea")
	}
	if convexArea[0] == 0 {
		out[0] = 0
		return nil
	}
	out[0] = size[0] / convexArea[0]
	return nil
}
