package measure

import (
	"context"
	"fmt"
	"sort"
)

// Logger is the narrow structured-logging seam the driver accepts
// through SetLogger; its method set is a subset of logrus's *Entry, and
// internal/logger's MeasureAdapter wraps a *logrus.Entry to provide it.
// Measure itself emits no log entries through it. A nil Logger is replaced by a no-op at construction, keeping
// this package free of a direct logging dependency behind a small
// interface.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

// Parallelizer runs a batch of independent tasks, returning the first
// error encountered (if any) once every task has finished. The default
// is a plain sequential loop; callers wire in a worker-pool-backed
// implementation (internal/worker) to get real concurrency for the
// ImageBased bucket.
type Parallelizer func(tasks []func() error) error

func sequentialParallelizer(tasks []func() error) error {
	var firstErr error
	for _, task := range tasks {
		if err := task(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// MeasurementTool is the bare driver: a registry with no plug-ins of
// its own. The features sub-package provides NewDefaultTool, which
// wraps this constructor and registers the built-in feature set — kept
// as a separate entry point so this package never imports its own
// plug-ins and plug-ins never need a cyclic import back to the driver
// that hosts them.
type MeasurementTool struct {
	registry            *Registry
	logger              Logger
	parallelizer        Parallelizer
	chainCodeExtractor  ChainCodeExtractor
	convexHullExtractor ConvexHullExtractor
}

// NewMeasurementTool returns an empty driver; use Register to add
// plug-ins, or construct via a higher-level factory that pre-registers
// a default set.
func NewMeasurementTool() *MeasurementTool {
	return &MeasurementTool{
		registry:     NewRegistry(),
		logger:       noopLogger{},
		parallelizer: sequentialParallelizer,
	}
}

// Register adds a plug-in to the tool's registry. First-wins on a
// duplicate name (see Registry.Register).
func (m *MeasurementTool) Register(feature Feature) {
	m.registry.Register(feature)
}

// Features lists every registered plug-in's static description, in
// registration order.
func (m *MeasurementTool) Features() []FeatureDescription {
	return m.registry.List()
}

// SetLogger installs a structured logging sink. Passing nil restores
// the no-op default.
func (m *MeasurementTool) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	m.logger = logger
}

// SetParallelizer installs the executor used for the ImageBased bucket.
// Passing nil restores sequential execution.
func (m *MeasurementTool) SetParallelizer(p Parallelizer) {
	if p == nil {
		p = sequentialParallelizer
	}
	m.parallelizer = p
}

// SetChainCodeExtractor installs the collaborator used to produce
// ChainCode boundaries on demand for the ChainCodeBased bucket and as
// the input to the convex-hull extractor.
func (m *MeasurementTool) SetChainCodeExtractor(extractor ChainCodeExtractor) {
	m.chainCodeExtractor = extractor
}

// SetConvexHullExtractor installs the collaborator used to derive
// convex hulls from chain codes for the ConvexHullBased bucket.
func (m *MeasurementTool) SetConvexHullExtractor(extractor ConvexHullExtractor) {
	m.convexHullExtractor = extractor
}

const defaultConnectivity = 2

// Measure resolves the object id set, resolves the requested
// features' dependency closure, validates grey availability,
// initializes every plug-in in closure order and forges the table,
// executes each kind-specific bucket, cleans up, and returns the
// finished table. On any error the table is discarded — callers never
// observe a partially-populated one.
func (m *MeasurementTool) Measure(ctx context.Context, label LabelImage, grey GreyImage, featureNames []string, objectIDs []ObjectID, connectivity int) (*Table, error) {
	if label == nil {
		return nil, NewInvalidInputError("label image is required", nil)
	}
	if grey != nil && !SameGeometry(label, grey) {
		return nil, NewGeometryMismatchError("grey image geometry does not match label image")
	}
	if connectivity <= 0 {
		connectivity = defaultConnectivity
	}
	if len(featureNames) == 0 {
		return nil, NewInvalidInputError("at least one feature name is required", nil)
	}

	if len(objectIDs) == 0 {
		objectIDs = m.discoverObjectIDs(label)
	} else {
		objectIDs = append([]ObjectID(nil), objectIDs...)
		sort.Slice(objectIDs, func(i, j int) bool { return objectIDs[i] < objectIDs[j] })
	}

	closure, err := m.resolveClosure(featureNames)
	if err != nil {
		return nil, err
	}

	for _, name := range closure {
		feature, _ := m.registry.Lookup(name)
		if feature.Description().NeedsGrey && grey == nil {
			return nil, NewMissingGreyError(name)
		}
	}

	table := NewTable()
	buckets := make(map[FeatureKind][]string)
	for _, name := range closure {
		feature, ok := m.registry.Lookup(name)
		if !ok {
			return nil, NewUnknownFeatureError(name)
		}
		if err := ctx.Err(); err != nil {
			m.cleanup(closure)
			return nil, NewCancelledError()
		}

		values, err := feature.Initialize(label, grey, len(objectIDs))
		if err != nil {
			m.cleanup(closure)
			return nil, err
		}
		if err := table.EnsureFeature(name, values); err != nil {
			m.cleanup(closure)
			return nil, err
		}

		kind, ok := KindOf(feature)
		if !ok {
			m.cleanup(closure)
			return nil, NewInvalidInputError(fmt.Sprintf("feature %q implements no recognized plug-in kind", name), nil)
		}
		if declared := feature.Description().Kind; declared != kind {
			m.cleanup(closure)
			return nil, NewInvalidInputError(fmt.Sprintf("feature %q declares kind %s but implements %s", name, declared, kind), nil)
		}
		buckets[kind] = append(buckets[kind], name)
	}

	if err := table.AddObjectIDs(objectIDs); err != nil {
		m.cleanup(closure)
		return nil, err
	}
	if err := table.Forge(); err != nil {
		m.cleanup(closure)
		return nil, err
	}

	cancel := func() bool { return ctx.Err() != nil }

	if names := buckets[LineBased]; len(names) > 0 {
		if err := m.runLineBased(label, grey, names, table, cancel); err != nil {
			m.cleanup(closure)
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		m.cleanup(closure)
		return nil, NewCancelledError()
	}
	if names := buckets[ImageBased]; len(names) > 0 {
		if err := m.runImageBased(label, grey, names, table); err != nil {
			m.cleanup(closure)
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		m.cleanup(closure)
		return nil, NewCancelledError()
	}

	var chainCodes map[ObjectID]*ChainCode
	if names := buckets[ChainCodeBased]; len(names) > 0 {
		chainCodes, err = m.extractChainCodes(label, objectIDs, connectivity)
		if err != nil {
			m.cleanup(closure)
			return nil, err
		}
		if err := m.runChainCodeBased(names, table, chainCodes); err != nil {
			m.cleanup(closure)
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		m.cleanup(closure)
		return nil, NewCancelledError()
	}

	if names := buckets[ConvexHullBased]; len(names) > 0 {
		if chainCodes == nil {
			chainCodes, err = m.extractChainCodes(label, objectIDs, connectivity)
			if err != nil {
				m.cleanup(closure)
				return nil, err
			}
		}
		if err := m.runConvexHullBased(names, table, chainCodes); err != nil {
			m.cleanup(closure)
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		m.cleanup(closure)
		return nil, NewCancelledError()
	}

	if names := buckets[Composite]; len(names) > 0 {
		if err := m.runComposite(names, table); err != nil {
			m.cleanup(closure)
			return nil, err
		}
	}

	m.cleanup(closure)
	return table, nil
}

func (m *MeasurementTool) cleanup(closure []string) {
	for _, name := range closure {
		if feature, ok := m.registry.Lookup(name); ok {
			feature.Cleanup()
		}
	}
}

// discoverObjectIDs scans the entire label image for distinct positive
// ids, returned sorted ascending.
func (m *MeasurementTool) discoverObjectIDs(label LabelImage) []ObjectID {
	seen := make(map[ObjectID]struct{})
	forEachPixel(label.Sizes(), func(coords []int) {
		if id := label.Label(coords); id != 0 {
			seen[id] = struct{}{}
		}
	})
	ids := make([]ObjectID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// resolveClosure expands the requested feature names to their full
// Composite dependency closure and returns it in a valid initialization
// order (dependencies before dependents), preserving the caller's
// request order among otherwise-unordered siblings. Dependencies is
// treated as a static declaration queryable before Initialize — the
// driver calls it during closure resolution, ahead of normal
// per-object dispatch.
func (m *MeasurementTool) resolveClosure(requested []string) ([]string, error) {
	const (
		stateUnvisited = 0
		stateVisiting  = 1
		stateDone      = 2
	)
	state := make(map[string]int)
	var order []string
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case stateDone:
			return nil
		case stateVisiting:
			cycle := append([]string{}, stack...)
			cycle = append(cycle, name)
			for i, n := range cycle {
				if n == name {
					cycle = cycle[i:]
					break
				}
			}
			return NewCyclicDependencyError(cycle)
		}
		feature, ok := m.registry.Lookup(name)
		if !ok {
			return NewUnknownFeatureError(name)
		}
		state[name] = stateVisiting
		stack = append(stack, name)
		if composite, ok := feature.(CompositeFeature); ok {
			for _, dep := range composite.Dependencies() {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = stateDone
		order = append(order, name)
		return nil
	}

	for _, name := range requested {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (m *MeasurementTool) runLineBased(label LabelImage, grey GreyImage, names []string, table *Table, cancel func() bool) error {
	plugins := make([]LineBasedFeature, 0, len(names))
	for _, name := range names {
		feature, _ := m.registry.Lookup(name)
		plugins = append(plugins, feature.(LineBasedFeature))
	}
	index := table.ObjectIndex()

	forEachLine(label, grey, cancel, func(li LabelLineIterator, gi GreyLineIterator, coords []int) {
		for _, plugin := range plugins {
			plugin.ScanLine(li, gi, coords, 0, index)
		}
	})
	if cancel() {
		return NewCancelledError()
	}

	for i, name := range names {
		col, err := table.ColumnView(name)
		if err != nil {
			return err
		}
		for row := 0; row < table.NumObjects(); row++ {
			plugins[i].Finish(row, col.RowValues(row))
		}
	}
	return nil
}

func (m *MeasurementTool) runImageBased(label LabelImage, grey GreyImage, names []string, table *Table) error {
	tasks := make([]func() error, 0, len(names))
	for _, name := range names {
		name := name
		tasks = append(tasks, func() error {
			feature, _ := m.registry.Lookup(name)
			col, err := table.ColumnView(name)
			if err != nil {
				return err
			}
			return feature.(ImageBasedFeature).Measure(label, grey, col)
		})
	}
	return m.parallelizer(tasks)
}

func (m *MeasurementTool) extractChainCodes(label LabelImage, objectIDs []ObjectID, connectivity int) (map[ObjectID]*ChainCode, error) {
	if m.chainCodeExtractor == nil {
		return nil, NewInvalidInputError("no chain-code extractor configured", nil)
	}
	return m.chainCodeExtractor(label, objectIDs, connectivity)
}

func (m *MeasurementTool) runChainCodeBased(names []string, table *Table, chainCodes map[ObjectID]*ChainCode) error {
	for _, name := range names {
		feature, _ := m.registry.Lookup(name)
		plugin := feature.(ChainCodeBasedFeature)
		col, err := table.ColumnView(name)
		if err != nil {
			return err
		}
		for _, id := range col.Objects() {
			cc, ok := chainCodes[id]
			if !ok {
				continue
			}
			row, _ := table.RowOf(id)
			if err := plugin.MeasureChainCode(cc, col.RowValues(row)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *MeasurementTool) runConvexHullBased(names []string, table *Table, chainCodes map[ObjectID]*ChainCode) error {
	if m.convexHullExtractor == nil {
		return NewInvalidInputError("no convex-hull extractor configured", nil)
	}
	hulls := make(map[ObjectID]*ConvexHull, len(chainCodes))
	for id, cc := range chainCodes {
		hull, err := m.convexHullExtractor(cc)
		if err != nil {
			return err
		}
		hulls[id] = hull
	}

	for _, name := range names {
		feature, _ := m.registry.Lookup(name)
		plugin := feature.(ConvexHullBasedFeature)
		col, err := table.ColumnView(name)
		if err != nil {
			return err
		}
		for _, id := range col.Objects() {
			hull, ok := hulls[id]
			if !ok {
				continue
			}
			row, _ := table.RowOf(id)
			if err := plugin.MeasureConvexHull(hull, col.RowValues(row)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *MeasurementTool) runComposite(names []string, table *Table) error {
	for _, name := range names {
		feature, _ := m.registry.Lookup(name)
		plugin := feature.(CompositeFeature)
		col, err := table.ColumnView(name)
		if err != nil {
			return err
		}
		for row := 0; row < table.NumObjects(); row++ {
			deps := table.ObjectAt(row)
			if err := plugin.MeasureComposite(deps, col.RowValues(row)); err != nil {
				return err
			}
		}
	}
	return nil
}
