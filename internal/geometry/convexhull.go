package geometry

import (
	"sort"

	"github.com/brackenfield/objmeasure/internal/measure"
)

var codeOffsets = [8]offset{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// boundaryPoints reconstructs the pixel coordinates a chain code
// retraces, starting from its Start point.
func boundaryPoints(cc *measure.ChainCode) [][2]float64 {
	points := make([][2]float64, 0, len(cc.Codes)+1)
	x, y := cc.Start[0], cc.Start[1]
	points = append(points, [2]float64{float64(x), float64(y)})
	for _, code := range cc.Codes {
		o := codeOffsets[code%8]
		x += o.dx
		y += o.dy
		points = append(points, [2]float64{float64(x), float64(y)})
	}
	return points
}

func cross(o, a, b [2]float64) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

// DefaultConvexHullExtractor implements measure.ConvexHullExtractor
// using Andrew's monotone chain algorithm over the chain code's
// retraced boundary points: the standard O(n log n) convex hull
// construction, preferred here over ad hoc pixel heuristics.
func DefaultConvexHullExtractor(cc *measure.ChainCode) (*measure.ConvexHull, error) {
	points := boundaryPoints(cc)
	if len(cc.Codes) == 0 {
		return &measure.ConvexHull{PixelSize: cc.PixelSize}, nil
	}

	unique := dedupe(points)
	sort.Slice(unique, func(i, j int) bool {
		if unique[i][0] != unique[j][0] {
			return unique[i][0] < unique[j][0]
		}
		return unique[i][1] < unique[j][1]
	})

	if len(unique) < 3 {
		return &measure.ConvexHull{Vertices: unique, PixelSize: cc.PixelSize}, nil
	}

	n := len(unique)
	hull := make([][2]float64, 0, 2*n)

	for _, p := range unique {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := unique[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]

	return &measure.ConvexHull{Vertices: hull, PixelSize: cc.PixelSize}, nil
}

func dedupe(points [][2]float64) [][2]float64 {
	seen := make(map[[2]float64]struct{}, len(points))
	out := make([][2]float64, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
