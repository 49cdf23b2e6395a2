package measure

// This file is the feature plug-in contract surface: one
// shared Feature interface plus five kind-specific capability
// interfaces. The driver dispatches by FeatureKind and only calls the
// methods of the interface that kind implements — a tagged capability
// set rather than a class hierarchy.

// LabelLineIterator walks one 1-D run of label values. Implementations
// are produced by the line-based scan engine (internal to this
// package); plug-ins only consume the interface.
type LabelLineIterator interface {
	Len() int
	At(i int) ObjectID
}

// GreyLineIterator walks one 1-D run of intensity values, synchronized
// with the corresponding LabelLineIterator.
type GreyLineIterator interface {
	Len() int
	At(i int) float64
}

// Feature is the capability every plug-in kind shares.
type Feature interface {
	// Description returns this feature's static metadata.
	Description() FeatureDescription

	// Initialize validates the input images (returning InvalidInput if
	// unsupported), sizes any internal per-object accumulators to
	// nObjects, and returns the value descriptors this feature will
	// produce. grey is nil when no intensity image was supplied; a
	// feature whose Description().NeedsGrey is true is only invoked by
	// the driver when grey is non-nil and geometry-matched.
	Initialize(label LabelImage, grey GreyImage, nObjects int) ([]ValueDescriptor, error)

	// Cleanup releases per-image transient state. Called once after the
	// measurement completes (successfully or not).
	Cleanup()
}

// LineBasedFeature streams over 1-D image lines along the fastest axis.
// ScanLine is called once per line; it is not required to be reentrant
// — the driver serializes calls to a given plug-in. Finish is called
// once per object row, after all lines have been scanned, to move
// accumulated state into the table.
type LineBasedFeature interface {
	Feature
	ScanLine(labelIter LabelLineIterator, greyIter GreyLineIterator, coords []int, axis int, index *ObjectIndexView)
	Finish(row int, out []float64)
}

// ImageBasedFeature is handed the whole label/grey image in a single
// call and writes one row of values per object through col.
type ImageBasedFeature interface {
	Feature
	Measure(label LabelImage, grey GreyImage, col FeatureColumnView) error
}

// ChainCodeBasedFeature is handed one object's chain code at a time.
type ChainCodeBasedFeature interface {
	Feature
	MeasureChainCode(cc *ChainCode, out []float64) error
}

// ConvexHullBasedFeature is handed one object's convex hull at a time.
type ConvexHullBasedFeature interface {
	Feature
	MeasureConvexHull(hull *ConvexHull, out []float64) error
}

// CompositeFeature is derived from other, already-computed features.
// Dependencies declares the feature names this composite needs; the
// driver calls it while resolving the dependency closure, before any
// Initialize; MeasureComposite is called once per object with
// a row view restricted by convention to those declared names.
type CompositeFeature interface {
	Feature
	Dependencies() []string
	MeasureComposite(deps ObjectRowView, out []float64) error
}

// KindOf returns the FeatureKind a plug-in actually implements, by
// capability probing. Used by the registry/driver to dispatch without
// requiring plug-ins to duplicate their kind in two places; a plug-in
// whose Description().Kind disagrees with what it implements is a
// programmer error the driver surfaces as InvalidInput during
// Initialize rather than silently picking one over the other.
func KindOf(f Feature) (FeatureKind, bool) {
	switch f.(type) {
	case LineBasedFeature:
		return LineBased, true
	case ImageBasedFeature:
		return ImageBased, true
	case ChainCodeBasedFeature:
		return ChainCodeBased, true
	case ConvexHullBasedFeature:
		return ConvexHullBased, true
	case CompositeFeature:
		return Composite, true
	default:
		return 0, false
	}
}
