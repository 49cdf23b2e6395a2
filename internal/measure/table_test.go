package measure

import "testing"

func TestTableAddFeatureAndForge(t *testing.T) {
	tbl := NewTable()
	if err := tbl.AddFeature("Size", []ValueDescriptor{{ShortName: "Size", Units: Pixel}}); err != nil {
		t.Fatalf("AddFeature: %v", err)
	}
	if err := tbl.AddObjectIDs([]ObjectID{1, 2, 3}); err != nil {
		t.Fatalf("AddObjectIDs: %v", err)
	}
	if err := tbl.Forge(); err != nil {
		t.Fatalf("Forge: %v", err)
	}
	if !tbl.Forged() {
		t.Fatal("expected Forged() true after Forge")
	}
	if tbl.NumObjects() != 3 {
		t.Fatalf("NumObjects = %d, want 3", tbl.NumObjects())
	}
	if tbl.Stride() != 1 {
		t.Fatalf("Stride = %d, want 1", tbl.Stride())
	}
	// Forge is idempotent.
	if err := tbl.Forge(); err != nil {
		t.Fatalf("second Forge: %v", err)
	}
}

func TestTableAddFeatureDuplicateName(t *testing.T) {
	tbl := NewTable()
	vd := []ValueDescriptor{{ShortName: "Size", Units: Pixel}}
	if err := tbl.AddFeature("Size", vd); err != nil {
		t.Fatalf("AddFeature: %v", err)
	}
	err := tbl.AddFeature("Size", vd)
	if !IsKind(err, ErrorKindDuplicateName) {
		t.Fatalf("expected DuplicateName error, got %v", err)
	}
}

func TestTableAddFeatureEmptySchema(t *testing.T) {
	tbl := NewTable()
	err := tbl.AddFeature("Empty", nil)
	if !IsKind(err, ErrorKindEmptySchema) {
		t.Fatalf("expected EmptySchema error, got %v", err)
	}
}

func TestTableEnsureFeatureIsNoOpWhenPresent(t *testing.T) {
	tbl := NewTable()
	vd := []ValueDescriptor{{ShortName: "Size", Units: Pixel}}
	if err := tbl.AddFeature("Size", vd); err != nil {
		t.Fatalf("AddFeature: %v", err)
	}
	if err := tbl.EnsureFeature("Size", vd); err != nil {
		t.Fatalf("EnsureFeature on existing name should be a no-op: %v", err)
	}
	if len(tbl.Features()) != 1 {
		t.Fatalf("expected exactly one feature after EnsureFeature, got %d", len(tbl.Features()))
	}
}

func TestTableAddObjectIDsDuplicate(t *testing.T) {
	tbl := NewTable()
	if err := tbl.AddObjectIDs([]ObjectID{1, 2}); err != nil {
		t.Fatalf("AddObjectIDs: %v", err)
	}
	err := tbl.AddObjectIDs([]ObjectID{2})
	if !IsKind(err, ErrorKindDuplicateID) {
		t.Fatalf("expected DuplicateID error, got %v", err)
	}
}

func TestTableForgeEmptyTable(t *testing.T) {
	tbl := NewTable()
	err := tbl.Forge()
	if !IsKind(err, ErrorKindEmptyTable) {
		t.Fatalf("expected EmptyTable error, got %v", err)
	}

	tbl2 := NewTable()
	if err := tbl2.AddFeature("Size", []ValueDescriptor{{ShortName: "Size", Units: Pixel}}); err != nil {
		t.Fatalf("AddFeature: %v", err)
	}
	err = tbl2.Forge()
	if !IsKind(err, ErrorKindEmptyTable) {
		t.Fatalf("expected EmptyTable error with no objects, got %v", err)
	}
}

func TestTableMutationsRejectedAfterForge(t *testing.T) {
	tbl := NewTable()
	if err := tbl.AddFeature("Size", []ValueDescriptor{{ShortName: "Size", Units: Pixel}}); err != nil {
		t.Fatalf("AddFeature: %v", err)
	}
	if err := tbl.AddObjectIDs([]ObjectID{1}); err != nil {
		t.Fatalf("AddObjectIDs: %v", err)
	}
	if err := tbl.Forge(); err != nil {
		t.Fatalf("Forge: %v", err)
	}

	if err := tbl.AddFeature("Mass", []ValueDescriptor{{ShortName: "Mass", Units: Dimensionless}}); !IsKind(err, ErrorKindTableForged) {
		t.Fatalf("expected TableForged from AddFeature, got %v", err)
	}
	if err := tbl.AddObjectIDs([]ObjectID{2}); !IsKind(err, ErrorKindTableForged) {
		t.Fatalf("expected TableForged from AddObjectIDs, got %v", err)
	}
}

func TestTableRowOfAndFeatureOf(t *testing.T) {
	tbl := NewTable()
	if err := tbl.AddFeature("Size", []ValueDescriptor{{ShortName: "Size", Units: Pixel}}); err != nil {
		t.Fatalf("AddFeature: %v", err)
	}
	if err := tbl.AddObjectIDs([]ObjectID{5, 7}); err != nil {
		t.Fatalf("AddObjectIDs: %v", err)
	}
	if err := tbl.Forge(); err != nil {
		t.Fatalf("Forge: %v", err)
	}

	row, ok := tbl.RowOf(7)
	if !ok || row != 1 {
		t.Fatalf("RowOf(7) = (%d, %v), want (1, true)", row, ok)
	}
	if _, ok := tbl.RowOf(99); ok {
		t.Fatal("RowOf(99) should report not found")
	}

	idx, ok := tbl.FeatureOf("Size")
	if !ok || idx != 0 {
		t.Fatalf("FeatureOf(Size) = (%d, %v), want (0, true)", idx, ok)
	}
}
