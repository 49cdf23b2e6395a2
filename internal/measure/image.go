package measure

// DataType identifies the scalar storage type of an image's samples.
type DataType int

const (
	DataTypeUnknown DataType = iota
	DataTypeUint8
	DataTypeUint16
	DataTypeUint32
	DataTypeFloat32
	DataTypeFloat64
)

// IsUnsignedInteger reports whether the type is one of the scalar
// unsigned-integer kinds a LabelImage must carry.
func (d DataType) IsUnsignedInteger() bool {
	switch d {
	case DataTypeUint8, DataTypeUint16, DataTypeUint32:
		return true
	default:
		return false
	}
}

// IsReal reports whether the type is one of the real-valued kinds a
// GreyImage must carry.
func (d DataType) IsReal() bool {
	switch d {
	case DataTypeFloat32, DataTypeFloat64:
		return true
	default:
		return false
	}
}

// LabelImage is the minimum interface the engine needs from a labeled
// raster: each sample is an unsigned integer object identifier, 0 for
// background. Sizes/Strides are ordered fastest-axis-first (axis 0 is
// the axis line-based scanning walks). This is an external collaborator:
// labeling, decoding, and storage are out of scope for this package;
// internal/rasterimage supplies a concrete implementation.
type LabelImage interface {
	Dimensionality() int
	Sizes() []int
	Strides() []int
	PixelSize() []float64
	DataType() DataType
	Label(coords []int) ObjectID
}

// GreyImage is the minimum interface the engine needs from an optional
// intensity raster. Channels() > 1 describes a tensor image; built-in
// features in this repository only consume channel 0, but the interface
// does not forbid multi-channel grey images.
type GreyImage interface {
	Dimensionality() int
	Sizes() []int
	Strides() []int
	Channels() int
	DataType() DataType
	Value(coords []int, channel int) float64
}

// SameGeometry reports whether a LabelImage and GreyImage describe the
// same grid (dimensionality and sizes match). Pixel size is read from
// the LabelImage only.
func SameGeometry(label LabelImage, grey GreyImage) bool {
	if label.Dimensionality() != grey.Dimensionality() {
		return false
	}
	ls, gs := label.Sizes(), grey.Sizes()
	for i := range ls {
		if ls[i] != gs[i] {
			return false
		}
	}
	return true
}

// ChainCode is an opaque Freeman chain-code boundary trace for a single
// object: a starting pixel plus a sequence of 8-connectivity direction
// codes (0=E, 1=NE, 2=N, 3=NW, 4=W, 5=SW, 6=S, 7=SE) that retraces its
// contour. Computation is an external collaborator;
// internal/geometry supplies a default extractor.
type ChainCode struct {
	Start     [2]int
	Codes     []uint8
	PixelSize [2]float64
}

// ConvexHull is an opaque convex polygon (vertices in order, the
// closing edge implied between the last and first vertex) bounding a
// single object. Computation is an external collaborator;
// internal/geometry supplies a default extractor.
type ConvexHull struct {
	Vertices  [][2]float64
	PixelSize [2]float64
}

// ChainCodeExtractor computes one ChainCode per requested object from a
// 2-D label image, honoring the given connectivity. The driver passes 2
// when none is given; internal/geometry's default extractor traces
// 4-connected boundaries for 4 and 8-connected ones for any other value.
type ChainCodeExtractor func(label LabelImage, objectIDs []ObjectID, connectivity int) (map[ObjectID]*ChainCode, error)

// ConvexHullExtractor computes the convex hull bounding a single
// object's chain code.
type ConvexHullExtractor func(cc *ChainCode) (*ConvexHull, error)
