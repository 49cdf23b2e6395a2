package rasterimage

import (
	"testing"

	"github.com/brackenfield/objmeasure/internal/measure"
)

func TestLabelImageSetAndLabel(t *testing.T) {
	img := NewLabelImage(3, 2, [2]float64{0.5, 0.25})
	img.Set(1, 0, 7)
	img.Set(2, 1, 3)

	if got := img.Label([]int{1, 0}); got != 7 {
		t.Fatalf("Label(1,0) = %d, want 7", got)
	}
	if got := img.Label([]int{2, 1}); got != 3 {
		t.Fatalf("Label(2,1) = %d, want 3", got)
	}
	if got := img.Label([]int{0, 0}); got != 0 {
		t.Fatalf("Label(0,0) = %d, want 0 (background)", got)
	}
	if got := img.Sizes(); got[0] != 3 || got[1] != 2 {
		t.Fatalf("Sizes() = %v, want [3 2]", got)
	}
	if got := img.PixelSize(); got[0] != 0.5 || got[1] != 0.25 {
		t.Fatalf("PixelSize() = %v, want [0.5 0.25]", got)
	}
	if img.DataType() != measure.DataTypeUint32 {
		t.Fatalf("DataType() = %v, want DataTypeUint32", img.DataType())
	}
}

func TestLabelImageDefaultsPixelSizeToOne(t *testing.T) {
	img := NewLabelImage(2, 2, [2]float64{0, 0})
	if got := img.PixelSize(); got[0] != 1 || got[1] != 1 {
		t.Fatalf("PixelSize() with zero input = %v, want [1 1]", got)
	}
}

func TestGreyImageSetAndValue(t *testing.T) {
	img := NewGreyImage(2, 2, 3)
	img.Set(0, 1, 2, 9.5)

	if got := img.Value([]int{0, 1}, 2); got != 9.5 {
		t.Fatalf("Value(0,1,ch2) = %v, want 9.5", got)
	}
	if got := img.Value([]int{0, 1}, 0); got != 0 {
		t.Fatalf("Value(0,1,ch0) = %v, want 0 (untouched channel)", got)
	}
	if img.Channels() != 3 {
		t.Fatalf("Channels() = %d, want 3", img.Channels())
	}
	if img.DataType() != measure.DataTypeFloat64 {
		t.Fatalf("DataType() = %v, want DataTypeFloat64", img.DataType())
	}
}

func TestGreyImageDefaultsToOneChannel(t *testing.T) {
	img := NewGreyImage(2, 2, 0)
	if img.Channels() != 1 {
		t.Fatalf("Channels() with n<1 input = %d, want 1", img.Channels())
	}
}
