// Package features supplies the built-in measurement plug-ins and the
// default-registered constructor for a measure.MeasurementTool. It
// lives under the driver package rather than beside it so the driver
// itself never has to import its own plug-ins.
package features

import "github.com/brackenfield/objmeasure/internal/measure"

// sizeFeature counts object pixels, mirroring DIPlib's FeatureMass
// accumulator-cache shape: ScanLine tracks the last object id seen so
// consecutive same-object pixels skip the map lookup, Finish copies
// the accumulator out.
type sizeFeature struct {
	data []float64
}

// NewSize returns the Size plug-in: pixel count per object.
func NewSize() measure.Feature { return &sizeFeature{} }

func (f *sizeFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "Size",
		Description: "Number of pixels in the object",
		NeedsGrey:   false,
		Kind:        measure.LineBased,
	}
}

func (f *sizeFeature) Initialize(label measure.LabelImage, grey measure.GreyImage, nObjects int) ([]measure.ValueDescriptor, error) {
	f.data = make([]float64, nObjects)
	units := measure.Pixel.Pow(label.Dimensionality())
	return []measure.ValueDescriptor{{ShortName: "Size", Units: units}}, nil
}

func (f *sizeFeature) ScanLine(labelIter measure.LabelLineIterator, _ measure.GreyLineIterator, _ []int, _ int, index *measure.ObjectIndexView) {
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
			f.data[row]++
		}
	}
}

func (f *sizeFeature) Finish(row int, out []float64) {
	out[0] = f.data[row]
}

func (f *sizeFeature) Cleanup() {
	f.data = nil
}

// massFeature sums intensity over an object's pixels, the same
// accumulator-cache ScanLine shape as sizeFeature but reading the grey
// line instead of just counting.
type massFeature struct {
	data []float64
}

// NewMass returns the Mass plug-in: sum of intensity per object.
func NewMass() measure.Feature { return &massFeature{} }

func (f *massFeature) Description() measure.FeatureDescription {
	return measure.FeatureDescription{
		Name:        "Mass",
		Description: "Sum of object intensity",
		NeedsGrey:   true,
		Kind:        measure.LineBased,
	}
}

func (f *massFeature) Initialize(_ measure.LabelImage, _ measure.GreyImage, nObjects int) ([]measure.ValueDescriptor, error) {
	f.data = make([]float64, nObjects)
	return []measure.ValueDescriptor{{ShortName: "Mass", Units: measure.Dimensionless}}, nil
}

func (f *massFeature) ScanLine(labelIter measure.LabelLineIterator, greyIter measure.GreyLineIterator, _ []int, _ int, index *measure.ObjectIndexView) {
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
			f.data[row] += greyIter.At(i)
		}
	}
}

func (f *massFeature) Finish(row int, out []float64) {
	out[0] = f.data[row]
}

func (f *massFeature) Cleanup() {
	f.data = nil
}
