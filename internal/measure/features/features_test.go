package features

import (
	"context"
	"testing"

	"github.com/brackenfield/objmeasure/internal/geometry"
	"github.com/brackenfield/objmeasure/internal/measure"
	"github.com/brackenfield/objmeasure/internal/rasterimage"
)

// buildSquare builds a 4x4 label image with a single 2x2 object (id 1)
// in the top-left corner, and a matching grey image whose intensities
// are the pixel's column index plus one, so Mass/MeanIntensity have a
// hand-checkable answer.
func buildSquare(t *testing.T) (*rasterimage.LabelImage, *rasterimage.GreyImage) {
	t.Helper()
	label := rasterimage.NewLabelImage(4, 4, [2]float64{1, 1})
	grey := rasterimage.NewGreyImage(4, 4, 1)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			label.Set(x, y, 1)
			grey.Set(x, y, 0, float64(x+1))
		}
	}
	return label, grey
}

func measureAll(t *testing.T, label *rasterimage.LabelImage, grey *rasterimage.GreyImage, names []string) *measure.Table {
	t.Helper()
	tool := measure.NewMeasurementTool()
	RegisterDefaults(tool)
	tool.SetChainCodeExtractor(geometry.DefaultChainCodeExtractor)
	tool.SetConvexHullExtractor(geometry.DefaultConvexHullExtractor)

	var g measure.GreyImage
	if grey != nil {
		g = grey
	}
	table, err := tool.Measure(context.Background(), label, g, names, nil, 8)
	if err != nil {
		t.Fatalf("Measure(%v): %v", names, err)
	}
	return table
}

func objectValue(t *testing.T, table *measure.Table, feature string, id measure.ObjectID) []float64 {
	t.Helper()
	obj, ok := table.Object(id)
	if !ok {
		t.Fatalf("object %d not present", id)
	}
	values, ok := obj.ByFeatureName(feature)
	if !ok {
		t.Fatalf("feature %q not present on object %d", feature, id)
	}
	return values
}

func TestSizeFeature(t *testing.T) {
	label, _ := buildSquare(t)
	table := measureAll(t, label, nil, []string{"Size"})
	got := objectValue(t, table, "Size", 1)
	if got[0] != 4 {
		t.Fatalf("Size = %v, want [4]", got)
	}
}

func TestMassFeature(t *testing.T) {
	label, grey := buildSquare(t)
	table := measureAll(t, label, grey, []string{"Mass"})
	// two columns of intensity 1 and 2, two rows each => 2*1 + 2*2 = 6
	got := objectValue(t, table, "Mass", 1)
	if got[0] != 6 {
		t.Fatalf("Mass = %v, want [6]", got)
	}
}

func TestMomentsAndCenterOfMass(t *testing.T) {
	label, grey := buildSquare(t)
	table := measureAll(t, label, grey, []string{"CenterOfMass"})

	com := objectValue(t, table, "CenterOfMass", 1)
	// x=0 column has intensity 1, x=1 column has intensity 2; mass=6.
	// momentX = sum(x*intensity) over the 2x2 block = (0*1+1*2)*2 = 4
	// momentY = sum(y*intensity) = 0*(1+2) + 1*(1+2) = 3; only the X
	// centroid (4/6) is asserted below.
	if com[0] <= 0 || com[0] >= 1 {
		t.Fatalf("CenterOfMass.X = %v, expected weighted toward column 1 (0<x<1)", com[0])
	}
}

func TestMeanIntensityAndStdDev(t *testing.T) {
	label, grey := buildSquare(t)
	table := measureAll(t, label, grey, []string{"MeanIntensity", "IntensityStdDev"})

	mean := objectValue(t, table, "MeanIntensity", 1)
	if mean[0] != 1.5 {
		t.Fatalf("MeanIntensity = %v, want [1.5]", mean)
	}
	stddev := objectValue(t, table, "IntensityStdDev", 1)
	if stddev[0] <= 0 {
		t.Fatalf("IntensityStdDev = %v, want > 0 for a mixed-intensity object", stddev)
	}
}

func TestIntensityStdDevSinglePixelObjectStaysZero(t *testing.T) {
	label := rasterimage.NewLabelImage(2, 2, [2]float64{1, 1})
	grey := rasterimage.NewGreyImage(2, 2, 1)
	label.Set(0, 0, 1)
	grey.Set(0, 0, 0, 42)

	table := measureAll(t, label, grey, []string{"IntensityStdDev"})
	got := objectValue(t, table, "IntensityStdDev", 1)
	if got[0] != 0 {
		t.Fatalf("IntensityStdDev for a single-pixel object = %v, want [0] (undefined variance skipped)", got)
	}
}

func TestPerimeterConvexAreaAndPerimeter(t *testing.T) {
	label, _ := buildSquare(t)
	table := measureAll(t, label, nil, []string{"Perimeter", "ConvexArea", "ConvexPerimeter"})

	// A chain code retraces pixel centers, so a 2x2 block of object
	// pixels traces the unit square joining those centers: perimeter 4,
	// convex hull area 1, convex hull perimeter 4 - not the 2x2
	// bounding box's own perimeter/area.
	perimeter := objectValue(t, table, "Perimeter", 1)
	if perimeter[0] != 4 {
		t.Fatalf("Perimeter of a 2x2 square = %v, want [4]", perimeter)
	}
	area := objectValue(t, table, "ConvexArea", 1)
	if area[0] != 1 {
		t.Fatalf("ConvexArea of a 2x2 square = %v, want [1]", area)
	}
	convexPerimeter := objectValue(t, table, "ConvexPerimeter", 1)
	if convexPerimeter[0] != 4 {
		t.Fatalf("ConvexPerimeter of a 2x2 square = %v, want [4]", convexPerimeter)
	}
}

func TestCircularityAndSolidity(t *testing.T) {
	label, _ := buildSquare(t)
	table := measureAll(t, label, nil, []string{"Circularity", "Solidity"})

	circularity := objectValue(t, table, "Circularity", 1)
	// Size=4, Perimeter=4 (see TestPerimeterConvexAreaAndPerimeter):
	// 4*pi*4 / 4^2 = pi.
	want := 3.141592653589793
	if diff := circularity[0] - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("Circularity = %v, want %v", circularity[0], want)
	}

	solidity := objectValue(t, table, "Solidity", 1)
	if solidity[0] != 4 {
		t.Fatalf("Solidity = %v, want [4] (Size=4 over a unit convex hull area of 1)", solidity)
	}
}

func TestRegisterDefaultsCoversAllBuiltins(t *testing.T) {
	tool := NewDefaultTool()
	names := make(map[string]bool)
	for _, d := range tool.Features() {
		names[d.Name] = true
	}
	want := []string{
		"Size", "Mass", "MomentX", "MomentY", "CenterOfMass",
		"MeanIntensity", "IntensityStdDev", "Perimeter",
		"ConvexArea", "ConvexPerimeter", "Circularity", "Solidity",
	}
	for _, name := range want {
		if !names[name] {
			t.Fatalf("expected built-in feature %q to be registered", name)
		}
	}
}
