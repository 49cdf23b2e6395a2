package measure

// The line-based scan engine: decomposes a label (and
// optional grey) image into maximal 1-D runs along axis 0 (the fastest
// axis, by convention sizes()[0]/strides()[0]), and for each run hands
// every LineBasedFeature a LabelLineIterator/GreyLineIterator pair plus
// the line's starting coordinate vector. Lines containing only
// background are still visited; plug-ins are expected to tolerate that.

// labelLineSlice and greyLineSlice are the LabelLineIterator and
// GreyLineIterator implementations: each walks axis 0 of the image at a fixed higher-order
// coordinate, mutating a single coordinate buffer per call. Reuse is
// safe because the line-based contract forbids reentrancy and the
// engine only ever advances one line at a time.
type labelLineSlice struct {
	label  LabelImage
	coords []int
	length int
}

func (s *labelLineSlice) Len() int { return s.length }

func (s *labelLineSlice) At(i int) ObjectID {
	s.coords[0] = i
	return s.label.Label(s.coords)
}

type greyLineSlice struct {
	grey   GreyImage
	coords []int
	length int
}

func (s *greyLineSlice) Len() int { return s.length }

func (s *greyLineSlice) At(i int) float64 {
	s.coords[0] = i
	return s.grey.Value(s.coords, 0)
}

// forEachLine decomposes label's grid into axis-0 runs and invokes fn
// once per line with the line's label/grey iterators and its starting
// coordinate vector (coords[0] is always 0 on entry to fn; callers that
// need the starting point keep their own copy before mutating it).
// cancel is polled between lines; if it returns true, forEachLine stops
// and returns false.
func forEachLine(label LabelImage, grey GreyImage, cancel func() bool, fn func(li LabelLineIterator, gi GreyLineIterator, coords []int)) bool {
	sizes := label.Sizes()
	if len(sizes) == 0 {
		return true
	}
	lineLen := sizes[0]
	coords := make([]int, len(sizes))

	var walk func(dim int) bool
	walk = func(dim int) bool {
		if dim == 0 {
			if cancel != nil && cancel() {
				return false
			}
			coords[0] = 0
			li := &labelLineSlice{label: label, coords: coords, length: lineLen}
			var gi GreyLineIterator
			if grey != nil {
				gi = &greyLineSlice{grey: grey, coords: coords, length: lineLen}
			}
			startCoords := make([]int, len(coords))
			copy(startCoords, coords)
			fn(li, gi, startCoords)
			return true
		}
		for coords[dim] = 0; coords[dim] < sizes[dim]; coords[dim]++ {
			if !walk(dim - 1) {
				return false
			}
		}
		return true
	}

	return walk(len(sizes) - 1)
}

// forEachPixel visits every coordinate vector of an image's grid,
// calling fn with each one. Used for whole-image object discovery
// where no per-line decomposition is needed.
func forEachPixel(sizes []int, fn func(coords []int)) {
	if len(sizes) == 0 {
		return
	}
	coords := make([]int, len(sizes))
	var walk func(dim int)
	walk = func(dim int) {
		if dim < 0 {
			fn(coords)
			return
		}
		for coords[dim] = 0; coords[dim] < sizes[dim]; coords[dim]++ {
			walk(dim - 1)
		}
	}
	walk(len(sizes) - 1)
}
