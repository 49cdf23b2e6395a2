package measure

import "testing"

func TestForEachLineVisitsEveryRow(t *testing.T) {
	label := newFakeLabelImage(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			label.set(x, y, ObjectID(y+1))
		}
	}

	var lines [][]ObjectID
	forEachLine(label, nil, nil, func(li LabelLineIterator, gi GreyLineIterator, coords []int) {
		if gi != nil {
			t.Fatal("expected nil GreyLineIterator when no grey image is supplied")
		}
		row := make([]ObjectID, li.Len())
		for i := 0; i < li.Len(); i++ {
			row[i] = li.At(i)
		}
		lines = append(lines, row)
	})

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, id := range lines[0] {
		if id != 1 {
			t.Fatalf("row 0 should be all object 1, got %v", lines[0])
		}
	}
	for _, id := range lines[1] {
		if id != 2 {
			t.Fatalf("row 1 should be all object 2, got %v", lines[1])
		}
	}
}

func TestForEachLineHonorsCancel(t *testing.T) {
	label := newFakeLabelImage(2, 5)
	calls := 0
	cancel := func() bool { return calls >= 2 }
	completed := forEachLine(label, nil, cancel, func(li LabelLineIterator, gi GreyLineIterator, coords []int) {
		calls++
	})
	if completed {
		t.Fatal("expected forEachLine to report incomplete when cancelled")
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 lines processed before cancel, got %d", calls)
	}
}

func TestForEachPixelVisitsEveryCoordinate(t *testing.T) {
	count := 0
	forEachPixel([]int{3, 4}, func(coords []int) { count++ })
	if count != 12 {
		t.Fatalf("expected 12 coordinates visited, got %d", count)
	}
}
