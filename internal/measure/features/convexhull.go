package features

import (
	"math"

	"github.com/brackenfield/objmeasure/internal/measure"
)

// polygonArea is the shoelace-formula area of a closed polygon given in
// vertex order.
func polygonArea(vertices [][2]float64) float64 {
	if len(vertices) < 3 {
		return 0
	}
	var sum float64
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += vertices[i][0]*vertices[j][1] - vertices[j][0]*vertices[i][1]
	}
	return math.Abs(sum) / 2
}

// polygonPerimeter sums the edge lengths of a closed polygon.
func polygonPerimeter(vertices [][2]float64) float64 {
	if len(vertices) < 2 {
		return 0
	}
	var sum float64
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dx := vertices[j][0] - vertices[i][0]
		dy := vertices[j][1] - vertices[i][1]
		sum += math.Hypot(dx, dy)
	}
	return sum
}

// convexAreaFeature measures the area of an object's convex hull, a
// ConvexHullBased feature.
type convexAreaFeature struct{}

func NewConvexArea() measure.Feature { return &convexAreaFeature{} }

func (f *convexAreaFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "ConvexArea",
		Description: "Area enclosed by the object's convex hull",
		NeedsGrey:   false,
		Kind:        measure.ConvexHullBased,
	}
}

func (f *convexAreaFeature) Initialize(_ measure.LabelImage, _ measure.GreyImage, _ int) ([]measure.ValueDescriptor, error) {
	return []measure.ValueDescriptor{{ShortName: "ConvexArea", Units: measure.Pixel.Pow(2)}}, nil
}

func (f *convexAreaFeature) Cleanup() {}

func (f *convexAreaFeature) MeasureConvexHull(hull *measure.ConvexHull, out []float64) error {
	out[0] = polygonArea(hull.Vertices)
	return nil
}

// convexPerimeterFeature measures the perimeter of an object's convex
// hull.
type convexPerimeterFeature struct{}

func NewConvexPerimeter() measure.Feature { return &convexPerimeterFeature{} }

func (f *convexPerimeterFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "ConvexPerimeter",
		Description: "Perimeter of the object's convex hull",
		NeedsGrey:   false,
		Kind:        measure.ConvexHullBased,
	}
}

func (f *convexPerimeterFeature) Initialize(_ measure.LabelImage, _ measure.GreyImage, _ int) ([]measure.ValueDescriptor, error) {
	return []measure.ValueDescriptor{{ShortName: "ConvexPerimeter", Units: measure.Pixel}}, nil
}

func (f *convexPerimeterFeature) Cleanup() {}

func (f *convexPerimeterFeature) MeasureConvexHull(hull *measure.ConvexHull, out []float64) error {
	out[0] = polygonPerimeter(hull.Vertices)
	return nil
}
