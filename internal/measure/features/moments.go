package features

import "github.com/brackenfield/objmeasure/internal/measure"

// momentXFeature accumulates sum(x * intensity) per object; paired with
// momentYFeature and massFeature it supplies centerOfMassFeature's
// dependencies. Grounded on the same FeatureMass accumulator-cache
// shape, generalized to also track the scan position.
type momentXFeature struct {
	data []float64
}

func NewMomentX() measure.Feature { return &momentXFeature{} }

func (f *momentXFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "MomentX",
		Description: "Sum of x-coordinate weighted by object intensity",
		NeedsGrey:   true,
		Kind:        measure.LineBased,
	}
}

func (f *momentXFeature) Initialize(label measure.LabelImage, _ measure.GreyImage, nObjects int) ([]measure.ValueDescriptor, error) {
	if label.Dimensionality() != 2 {
		return nil, measure.NewInvalidInputError("MomentX requires a 2-D label image", nil)
	}
	f.data = make([]float64, nObjects)
	return []measure.ValueDescriptor{{ShortName: "MomentX", Units: measure.Dimensionless}}, nil
}

func (f *momentXFeature) ScanLine(labelIter measure.LabelLineIterator, greyIter measure.GreyLineIterator, _ []int, _ int, index *measure.ObjectIndexView) {
	if greyIter == nil {
		return
	}
	var currentID measure.ObjectID
	var row int
	haveRow := false

	n := labelIter.Len()
	for i := 0; i < n; i++ {
		id := labelIter.At(i)
		if id == 0 {
			continue
		}
		if id != currentID {
			currentID = id
			row, haveRow = index.RowOf(id)
		}
		if haveRow {
			f.data[row] += float64(i) * greyIter.At(i)
		}
	}
}

func (f *momentXFeature) Finish(row int, out []float64) { out[0] = f.data[row] }
func (f *momentXFeature) Cleanup()                      { f.data = nil }

// momentYFeature accumulates sum(y * intensity) per object. The scan
// axis is x (axis 0), so y is constant for the whole line and is read
// once from the line's starting coordinates.
type momentYFeature struct {
	data []float64
}

func NewMomentY() measure.Feature { return &momentYFeature{} }

func (f *momentYFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "MomentY",
		Description: "Sum of y-coordinate weighted by object intensity",
		NeedsGrey:   true,
		Kind:        measure.LineBased,
	}
}

func (f *momentYFeature) Initialize(label measure.LabelImage, _ measure.GreyImage, nObjects int) ([]measure.ValueDescriptor, error) {
	if label.Dimensionality() != 2 {
		return nil, measure.NewInvalidInputError("MomentY requires a 2-D label image", nil)
	}
	f.data = make([]float64, nObjects)
	return []measure.ValueDescriptor{{ShortName: "MomentY", Units: measure.Dimensionless}}, nil
}

func (f *momentYFeature) ScanLine(labelIter measure.LabelLineIterator, greyIter measure.GreyLineIterator, coords []int, _ int, index *measure.ObjectIndexView) {
	if greyIter == nil {
		return
	}
	y := float64(coords[1])
	var currentID measure.ObjectID
	var row int
	haveRow := false

	n := labelIter.Len()
	for i := 0; i < n; i++ {
		id := labelIter.At(i)
		if id == 0 {
			continue
		}
		if id != currentID {
			currentID = id
			row, haveRow = index.RowOf(id)
		}
		if haveRow {
			f.data[row] += y * greyIter.At(i)
		}
	}
}

func (f *momentYFeature) Finish(row int, out []float64) { out[0] = f.data[row] }
func (f *momentYFeature) Cleanup()                       { f.data = nil }

// centerOfMassFeature derives the object's intensity-weighted centroid
// from Mass, MomentX and MomentY: a Composite feature that exists
// specifically to consume those accumulators.
type centerOfMassFeature struct{}

func NewCenterOfMass() measure.Feature { return &centerOfMassFeature{} }

func (f *centerOfMassFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "CenterOfMass",
		Description: "Intensity-weighted centroid (x, y)",
		NeedsGrey:   true,
		Kind:        measure.Composite,
	}
}

func (f *centerOfMassFeature) Initialize(_ measure.LabelImage, _ measure.GreyImage, _ int) ([]measure.ValueDescriptor, error) {
	return []measure.ValueDescriptor{
		{ShortName: "CenterOfMass.X", Units: measure.Pixel},
		{ShortName: "CenterOfMass.Y", Units: measure.Pixel},
	}, nil
}

func (f *centerOfMassFeature) Cleanup() {}

func (f *centerOfMassFeature) Dependencies() []string {
	return []string{"Mass", "MomentX", "MomentY"}
}

func (f *centerOfMassFeature) MeasureComposite(deps measure.ObjectRowView, out []float64) error {
	mass, ok := deps.ByFeatureName("Mass")
	if !ok {
		return measure.NewUnknownFeatureError("Mass")
	}
	momentX, ok := deps.ByFeatureName("MomentX")
	if !ok {
		return measure.NewUnknownFeatureError("MomentX")
	}
	momentY, ok := deps.ByFeatureName("MomentY")
	if !ok {
		return measure.NewUnknownFeatureError("MomentY")
	}
	if mass[0] == 0 {
		out[0], out[1] = 0, 0
		return nil
	}
	out[0] = momentX[0] / mass[0]
	out[1] = momentY[0] / mass[0]
	return nil
}
