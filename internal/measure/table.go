package measure

// Table is a forge-once, row=object / column=feature-group measurement
// store: a dense row-major buffer of float64 cells, with named feature
// column groups and an ordered object-id row index. This file
// implements the schema-build phase (AddFeature / EnsureFeature /
// AddObjectIDs / Forge) and the raw-buffer accessors. Dual
// (row/column) views live in views.go.
type Table struct {
	features     []FeatureInfo
	featureIndex map[string]int

	objects     []ObjectID
	objectIndex map[ObjectID]int

	values []ValueDescriptor
	data   []float64

	forged bool
}

// NewTable constructs an empty table in the schema-build phase.
func NewTable() *Table {
	return &Table{
		featureIndex: make(map[string]int),
		objectIndex:  make(map[ObjectID]int),
	}
}

// AddFeature appends a new feature column group. Fails with
// DuplicateName if name is already present, EmptySchema if values is
// empty, TableForged after forging.
func (t *Table) AddFeature(name string, values []ValueDescriptor) error {
	if t.forged {
		return NewTableForgedError("add_feature")
	}
	if len(values) == 0 {
		return NewEmptySchemaError(name)
	}
	if _, exists := t.featureIndex[name]; exists {
		return NewDuplicateNameError(name)
	}

	start := uint(len(t.values))
	t.features = append(t.features, FeatureInfo{
		Name:        name,
		StartColumn: start,
		ValueCount:  uint(len(values)),
	})
	t.featureIndex[name] = len(t.features) - 1
	t.values = append(t.values, values...)
	return nil
}

// EnsureFeature is a no-op if name is already present; otherwise it
// behaves like AddFeature. Used during dependency-closure resolution so
// a composite's own requested feature does not double-register.
func (t *Table) EnsureFeature(name string, values []ValueDescriptor) error {
	if _, exists := t.featureIndex[name]; exists {
		return nil
	}
	return t.AddFeature(name, values)
}

// AddObjectIDs appends object ids in order. Fails with DuplicateId on
// collision, TableForged after forging.
func (t *Table) AddObjectIDs(ids []ObjectID) error {
	if t.forged {
		return NewTableForgedError("add_object_ids")
	}
	for _, id := range ids {
		if _, exists := t.objectIndex[id]; exists {
			return NewDuplicateIDError(id)
		}
		t.objectIndex[id] = len(t.objects)
		t.objects = append(t.objects, id)
	}
	return nil
}

// Forge allocates the data buffer and freezes the schema. Fails with
// EmptyTable if either features or objects is empty. Idempotent once
// forged.
func (t *Table) Forge() error {
	if t.forged {
		return nil
	}
	if len(t.features) == 0 || len(t.objects) == 0 {
		return NewEmptyTableError()
	}
	t.data = make([]float64, len(t.objects)*len(t.values))
	t.forged = true
	return nil
}

// Forged reports whether the table has transitioned past the
// schema-build phase.
func (t *Table) Forged() bool {
	return t.forged
}

// Stride is the number of value columns; also the distance between the
// start of consecutive object rows in the flat buffer.
func (t *Table) Stride() int {
	return len(t.values)
}

// NumObjects is the number of rows.
func (t *Table) NumObjects() int {
	return len(t.objects)
}

// Features enumerates all feature column groups in insertion order.
func (t *Table) Features() []FeatureInfo {
	return t.features
}

// Objects enumerates all object ids in row order.
func (t *Table) Objects() []ObjectID {
	return t.objects
}

// Values enumerates all value descriptors, in column order.
func (t *Table) Values() []ValueDescriptor {
	return t.values
}

// RowOf returns the row index for an object id.
func (t *Table) RowOf(id ObjectID) (int, bool) {
	row, ok := t.objectIndex[id]
	return row, ok
}

// FeatureOf returns the feature-slice index for a feature name.
func (t *Table) FeatureOf(name string) (int, bool) {
	idx, ok := t.featureIndex[name]
	return idx, ok
}

// RawData returns the backing buffer for bulk kernels. The caller must
// not resize it; the table owns it exclusively. Valid only once forged.
func (t *Table) RawData() []float64 {
	return t.data
}

// cellSlice returns the data[row][startColumn:startColumn+count] slice.
// Both row/column views and the ImageBased/Composite column views build
// on this single piece of offset math (offset = row*stride + start).
func (t *Table) cellSlice(row int, startColumn, count uint) []float64 {
	offset := row*t.Stride() + int(startColumn)
	return t.data[offset : offset+int(count)]
}

// ObjectIndexView is a read-only, non-owning borrow over the
// object-id-to-row map, handed to LineBased plug-ins so they can
// resolve accumulators per-pixel without reaching into the table
// itself.
type ObjectIndexView struct {
	index map[ObjectID]int
}

// RowOf resolves an object id to its row index.
func (v *ObjectIndexView) RowOf(id ObjectID) (int, bool) {
	row, ok := v.index[id]
	return row, ok
}

// ObjectIndex returns a borrowed view over the object-id-to-row map.
// Valid only once forged (object ids are fixed at that point); callers
// must not retain it past the table's lifetime.
func (t *Table) ObjectIndex() *ObjectIndexView {
	return &ObjectIndexView{index: t.objectIndex}
}
