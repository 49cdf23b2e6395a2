package measure

// This file implements the dual (row- and column-oriented) access layer
// over a forged Table: FeatureView (a column group, walked object-major
// by its ObjectCursor) and ObjectView (a row, walked feature-major by
// its FeatureCursor). Both are non-owning borrows that share the same
// offset arithmetic as Table.cellSlice.

// FeatureView is a column group: all objects' values for one feature.
type FeatureView struct {
	table *Table
	info  FeatureInfo
}

// Feature looks up a column group by name. Requires the table to be
// forged; returns UnknownFeature otherwise absent.
func (t *Table) Feature(name string) (FeatureView, error) {
	idx, ok := t.featureIndex[name]
	if !ok {
		return FeatureView{}, NewUnknownFeatureError(name)
	}
	return FeatureView{table: t, info: t.features[idx]}, nil
}

// Name is the feature name this view is anchored on.
func (v FeatureView) Name() string { return v.info.Name }

// ValueCount is the number of scalar columns in this feature group.
func (v FeatureView) ValueCount() int { return int(v.info.ValueCount) }

// Row returns the value_count-wide slice for the given row index.
// Mutating the slice mutates the underlying table.
func (v FeatureView) Row(row int) []float64 {
	return v.table.cellSlice(row, v.info.StartColumn, v.info.ValueCount)
}

// ByObjectID returns the value slice for a given object id, or ok=false
// if the id is not a row in this table.
func (v FeatureView) ByObjectID(id ObjectID) (values []float64, ok bool) {
	row, present := v.table.objectIndex[id]
	if !present {
		return nil, false
	}
	return v.Row(row), true
}

// Cursor returns a forward-only iterator over this feature's values,
// one entry per object, in row order.
func (v FeatureView) Cursor() *FeatureObjectCursor {
	return &FeatureObjectCursor{view: v, row: 0}
}

// FeatureObjectCursor walks a FeatureView object-by-object.
type FeatureObjectCursor struct {
	view FeatureView
	row  int
}

// IsAtEnd reports whether the cursor has exhausted all objects.
func (c *FeatureObjectCursor) IsAtEnd() bool {
	return c.row >= len(c.view.table.objects)
}

// Valid is the boolean-valid predicate counterpart to IsAtEnd.
func (c *FeatureObjectCursor) Valid() bool { return !c.IsAtEnd() }

// ObjectID is the object id at the cursor's current position.
func (c *FeatureObjectCursor) ObjectID() ObjectID {
	return c.view.table.objects[c.row]
}

// Values is the current object's value slice for this feature.
func (c *FeatureObjectCursor) Values() []float64 {
	return c.view.Row(c.row)
}

// Next advances the cursor to the next object.
func (c *FeatureObjectCursor) Next() {
	c.row++
}

// ObjectView is a row: all feature values for one object.
type ObjectView struct {
	table *Table
	row   int
	id    ObjectID
}

// Object looks up a row by object id. Requires the table to be forged.
func (t *Table) Object(id ObjectID) (ObjectView, bool) {
	row, ok := t.objectIndex[id]
	if !ok {
		return ObjectView{}, false
	}
	return ObjectView{table: t, row: row, id: id}, true
}

// ObjectAt returns the row-th ObjectView directly, without a name/id
// lookup; used by scan engines that already know the row index.
func (t *Table) ObjectAt(row int) ObjectView {
	return ObjectView{table: t, row: row, id: t.objects[row]}
}

// ID is the object id this view is anchored on.
func (v ObjectView) ID() ObjectID { return v.id }

// ByFeatureName returns the value slice for a named feature within this
// object's row, or ok=false if the feature is not present.
func (v ObjectView) ByFeatureName(name string) (values []float64, ok bool) {
	idx, present := v.table.featureIndex[name]
	if !present {
		return nil, false
	}
	info := v.table.features[idx]
	return v.table.cellSlice(v.row, info.StartColumn, info.ValueCount), true
}

// Cursor returns a forward-only iterator over this object's feature
// values, one entry per feature column group, in table column order.
func (v ObjectView) Cursor() *ObjectFeatureCursor {
	return &ObjectFeatureCursor{view: v, idx: 0}
}

// ObjectFeatureCursor walks an ObjectView feature-by-feature.
type ObjectFeatureCursor struct {
	view ObjectView
	idx  int
}

// IsAtEnd reports whether the cursor has exhausted all feature groups.
func (c *ObjectFeatureCursor) IsAtEnd() bool {
	return c.idx >= len(c.view.table.features)
}

// Valid is the boolean-valid predicate counterpart to IsAtEnd.
func (c *ObjectFeatureCursor) Valid() bool { return !c.IsAtEnd() }

// FeatureName is the name of the feature group at the cursor's current
// position.
func (c *ObjectFeatureCursor) FeatureName() string {
	return c.view.table.features[c.idx].Name
}

// Values is the current feature group's value slice within this object.
func (c *ObjectFeatureCursor) Values() []float64 {
	info := c.view.table.features[c.idx]
	return c.view.table.cellSlice(c.view.row, info.StartColumn, info.ValueCount)
}

// Next advances the cursor to the next feature group.
func (c *ObjectFeatureCursor) Next() {
	c.idx++
}

// FeatureColumnView is the mutable, single-feature-wide write surface
// handed to ImageBased plug-ins: a borrow restricted to one feature's
// own columns across every object row, so two ImageBased plug-ins
// touching disjoint column groups can run concurrently without
// synchronizing on the table.
type FeatureColumnView struct {
	table *Table
	info  FeatureInfo
}

// ColumnView returns the mutable write surface for a feature by name.
// The caller (the driver) is responsible for only handing a plug-in the
// view for columns it itself registered.
func (t *Table) ColumnView(name string) (FeatureColumnView, error) {
	idx, ok := t.featureIndex[name]
	if !ok {
		return FeatureColumnView{}, NewUnknownFeatureError(name)
	}
	return FeatureColumnView{table: t, info: t.features[idx]}, nil
}

// ValueCount is the number of scalar columns in this view.
func (v FeatureColumnView) ValueCount() int { return int(v.info.ValueCount) }

// Objects enumerates the object ids in row order, for plug-ins that
// need to iterate rows themselves.
func (v FeatureColumnView) Objects() []ObjectID { return v.table.objects }

// RowValues returns the mutable value slice for the given row index.
func (v FeatureColumnView) RowValues(row int) []float64 {
	return v.table.cellSlice(row, v.info.StartColumn, v.info.ValueCount)
}

// SetByObjectID writes values into the row for the given object id,
// returning ok=false if the id is not present.
func (v FeatureColumnView) SetByObjectID(id ObjectID, values []float64) bool {
	row, ok := v.table.objectIndex[id]
	if !ok {
		return false
	}
	copy(v.RowValues(row), values)
	return true
}

// ObjectRowView is the read-only row borrow handed to Composite
// plug-ins, implemented as the ordinary row view into the whole row —
// the composite is trusted to read only the feature names it declared
// in Dependencies(), not technically prevented from reading more.
type ObjectRowView = ObjectView
