package rasterimage

import (
	"image"
	"image/color"
	"testing"
)

func TestDecodeLabelImageUsesGray16Value(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 2, 2))
	src.SetGray16(0, 0, color.Gray16{Y: 5})
	src.SetGray16(1, 1, color.Gray16{Y: 12})

	out := DecodeLabelImage(src, [2]float64{1, 1})
	if got := out.Label([]int{0, 0}); got != 5 {
		t.Fatalf("Label(0,0) = %d, want 5", got)
	}
	if got := out.Label([]int{1, 1}); got != 12 {
		t.Fatalf("Label(1,1) = %d, want 12", got)
	}
	if got := out.Label([]int{1, 0}); got != 0 {
		t.Fatalf("Label(1,0) = %d, want 0 (untouched pixel)", got)
	}
}

func TestDecodeLabelImageHonorsNonZeroOrigin(t *testing.T) {
	src := image.NewGray16(image.Rect(5, 5, 7, 7))
	src.SetGray16(5, 5, color.Gray16{Y: 3})

	out := DecodeLabelImage(src, [2]float64{1, 1})
	if got := out.Label([]int{0, 0}); got != 3 {
		t.Fatalf("Label(0,0) = %d, want 3 (bounds.Min offset must be normalized away)", got)
	}
}

func TestDecodeGreyImageUsesMaxChannelAsValue(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	out := DecodeGreyImage(src)
	got := out.Value([]int{0, 0}, 0)
	if got != 65535 {
		t.Fatalf("Value(0,0) = %v, want 65535 (max of R/G/B normalized to Gray16 range)", got)
	}
}

func TestDecodeGreyImageBlackPixelIsZero(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})

	out := DecodeGreyImage(src)
	if got := out.Value([]int{0, 0}, 0); got != 0 {
		t.Fatalf("Value(0,0) = %v, want 0", got)
	}
}
