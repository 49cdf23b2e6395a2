// Package geometry supplies default implementations of the
// measure.ChainCodeExtractor and measure.ConvexHullExtractor
// collaborators that internal/measure treats as opaque external
// inputs: Moore-neighbor boundary tracing and Andrew's monotone chain,
// walking explicit (dx, dy) neighbor offsets around each object's
// contour.
package geometry

import "github.com/brackenfield/objmeasure/internal/measure"

type offset struct{ dx, dy int }

// neighborsCW8 lists the 8-neighborhood in clockwise order starting at
// north; neighborsCW4 is the 4-connected subset in the same order.
// Freeman codes (E=0, NE=1, N=2, NW=3, W=4, SW=5, S=6, SE=7, per
// measure.ChainCode's doc comment) are derived from (dx, dy) by
// freemanCode, not from position in this list.
var neighborsCW8 = []offset{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

var neighborsCW4 = []offset{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
}

func freemanCode(dx, dy int) uint8 {
	switch {
	case dx == 1 && dy == 0:
		return 0
	case dx == 1 && dy == -1:
		return 1
	case dx == 0 && dy == -1:
		return 2
	case dx == -1 && dy == -1:
		return 3
	case dx == -1 && dy == 0:
		return 4
	case dx == -1 && dy == 1:
		return 5
	case dx == 0 && dy == 1:
		return 6
	default: // dx == 1 && dy == 1
		return 7
	}
}

// DefaultChainCodeExtractor implements measure.ChainCodeExtractor
// using Moore boundary tracing. It only supports 2-D label images.
func DefaultChainCodeExtractor(label measure.LabelImage, objectIDs []measure.ObjectID, connectivity int) (map[measure.ObjectID]*measure.ChainCode, error) {
	if label.Dimensionality() != 2 {
		return nil, measure.NewInvalidInputError("chain code extraction requires a 2-D label image", nil)
	}
	neighbors := neighborsCW8
	if connectivity == 4 {
		neighbors = neighborsCW4
	}

	sizes := label.Sizes()
	width, height := sizes[0], sizes[1]
	pixelSize := label.PixelSize()
	px, py := 1.0, 1.0
	if len(pixelSize) > 0 {
		px = pixelSize[0]
	}
	if len(pixelSize) > 1 {
		py = pixelSize[1]
	}

	inBounds := func(x, y int) bool { return x >= 0 && x < width && y >= 0 && y < height }

	wanted := make(map[measure.ObjectID]struct{}, len(objectIDs))
	for _, id := range objectIDs {
		wanted[id] = struct{}{}
	}

	starts := make(map[measure.ObjectID][2]int)
	coords := make([]int, 2)
	for y := 0; y < height; y++ {
		coords[1] = y
		for x := 0; x < width; x++ {
			coords[0] = x
			id := label.Label(coords)
			if id == 0 {
				continue
			}
			if _, ok := wanted[id]; !ok {
				continue
			}
			if _, already := starts[id]; !already {
				starts[id] = [2]int{x, y}
			}
		}
	}

	result := make(map[measure.ObjectID]*measure.ChainCode, len(starts))
	for id, start := range starts {
		isObject := func(x, y int) bool {
			if !inBounds(x, y) {
				return false
			}
			coords[0], coords[1] = x, y
			return label.Label(coords) == id
		}
		codes := traceBoundary(start[0], start[1], isObject, neighbors)
		result[id] = &measure.ChainCode{
			Start:     start,
			Codes:     codes,
			PixelSize: [2]float64{px, py},
		}
	}
	return result, nil
}

// traceBoundary runs Moore-neighbor boundary tracing starting at
// (startX, startY), which must be the topmost-leftmost pixel of its
// object (guaranteed by the scan order in DefaultChainCodeExtractor, so the
// pixel immediately to the west is always background or off-grid —
// a safe initial backtrack direction). Tracing stops when it returns
// to the start pixel, or after visiting more points than the bounding
// neighborhood search could possibly require.
func traceBoundary(startX, startY int, isObject func(x, y int) bool, neighbors []offset) []uint8 {
	n := len(neighbors)
	westIdx := 0
	for i, o := range neighbors {
		if o.dx == -1 && o.dy == 0 {
			westIdx = i
			break
		}
	}

	x, y := startX, startY
	backtrack := westIdx
	var codes []uint8

	const maxSteps = 1 << 20
	for step := 0; step < maxSteps; step++ {
		found := -1
		for k := 1; k <= n; k++ {
			idx := (backtrack + k) % n
			nx, ny := x+neighbors[idx].dx, y+neighbors[idx].dy
			if isObject(nx, ny) {
				found = idx
				break
			}
		}
		if found == -1 {
			// isolated single pixel: no boundary to trace.
			return codes
		}
		off := neighbors[found]
		codes = append(codes, freemanCode(off.dx, off.dy))
		x, y = x+off.dx, y+off.dy
		backtrack = (found + n/2) % n

		if x == startX && y == startY {
			return codes
		}
	}
	return codes
}
