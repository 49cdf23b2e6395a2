package measure

import "testing"

func buildForgedTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable()
	if err := tbl.AddFeature("Size", []ValueDescriptor{{ShortName: "Size", Units: Pixel}}); err != nil {
		t.Fatalf("AddFeature Size: %v", err)
	}
	if err := tbl.AddFeature("CenterOfMass", []ValueDescriptor{
		{ShortName: "CenterOfMass.X", Units: Pixel},
		{ShortName: "CenterOfMass.Y", Units: Pixel},
	}); err != nil {
		t.Fatalf("AddFeature CenterOfMass: %v", err)
	}
	if err := tbl.AddObjectIDs([]ObjectID{1, 2}); err != nil {
		t.Fatalf("AddObjectIDs: %v", err)
	}
	if err := tbl.Forge(); err != nil {
		t.Fatalf("Forge: %v", err)
	}

	sizeCol, err := tbl.ColumnView("Size")
	if err != nil {
		t.Fatalf("ColumnView Size: %v", err)
	}
	sizeCol.SetByObjectID(1, []float64{10})
	sizeCol.SetByObjectID(2, []float64{20})

	comCol, err := tbl.ColumnView("CenterOfMass")
	if err != nil {
		t.Fatalf("ColumnView CenterOfMass: %v", err)
	}
	comCol.SetByObjectID(1, []float64{1, 2})
	comCol.SetByObjectID(2, []float64{3, 4})

	return tbl
}

func TestFeatureViewCursorWalksObjectsInRowOrder(t *testing.T) {
	tbl := buildForgedTable(t)
	view, err := tbl.Feature("Size")
	if err != nil {
		t.Fatalf("Feature: %v", err)
	}

	var ids []ObjectID
	var values []float64
	for c := view.Cursor(); c.Valid(); c.Next() {
		ids = append(ids, c.ObjectID())
		values = append(values, c.Values()[0])
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected id order: %v", ids)
	}
	if values[0] != 10 || values[1] != 20 {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestFeatureViewByObjectID(t *testing.T) {
	tbl := buildForgedTable(t)
	view, err := tbl.Feature("Size")
	if err != nil {
		t.Fatalf("Feature: %v", err)
	}
	values, ok := view.ByObjectID(2)
	if !ok || values[0] != 20 {
		t.Fatalf("ByObjectID(2) = (%v, %v), want (20, true)", values, ok)
	}
	if _, ok := view.ByObjectID(99); ok {
		t.Fatal("ByObjectID(99) should report not found")
	}
}

func TestObjectViewCursorWalksFeaturesInColumnOrder(t *testing.T) {
	tbl := buildForgedTable(t)
	obj, ok := tbl.Object(2)
	if !ok {
		t.Fatal("Object(2) not found")
	}

	var names []string
	for c := obj.Cursor(); c.Valid(); c.Next() {
		names = append(names, c.FeatureName())
	}
	if len(names) != 2 || names[0] != "Size" || names[1] != "CenterOfMass" {
		t.Fatalf("unexpected feature order: %v", names)
	}

	com, ok := obj.ByFeatureName("CenterOfMass")
	if !ok || com[0] != 3 || com[1] != 4 {
		t.Fatalf("ByFeatureName(CenterOfMass) = %v, want [3 4]", com)
	}
}

func TestUnknownFeatureLookup(t *testing.T) {
	tbl := buildForgedTable(t)
	if _, err := tbl.Feature("Bogus"); !IsKind(err, ErrorKindUnknownFeature) {
		t.Fatalf("expected UnknownFeature error, got %v", err)
	}
	if _, err := tbl.ColumnView("Bogus"); !IsKind(err, ErrorKindUnknownFeature) {
		t.Fatalf("expected UnknownFeature error from ColumnView, got %v", err)
	}
}

func TestObjectAtByRowIndex(t *testing.T) {
	tbl := buildForgedTable(t)
	obj := tbl.ObjectAt(1)
	if obj.ID() != 2 {
		t.Fatalf("ObjectAt(1).ID() = %d, want 2", obj.ID())
	}
}
