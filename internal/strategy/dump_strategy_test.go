package strategy

import (
	"context"
	"strings"
	"testing"
)

func TestDumpStrategyDelegatesAndNamesItself(t *testing.T) {
	tool := buildTestTool()
	label := buildTestLabel()
	inner := NewSelectedMeasurementStrategy([]string{"Size"})
	s := NewDumpStrategy(inner)

	if s.GetStrategyName() != "dump_selected_measurement" {
		t.Fatalf("GetStrategyName() = %q, want dump_selected_measurement", s.GetStrategyName())
	}

	table, err := s.Measure(context.Background(), tool, label, nil, nil, 0)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if _, err := table.Feature("Size"); err != nil {
		t.Fatalf("expected Size in the delegated result: %v", err)
	}
}

func TestDumpRendersOneRowPerObjectWithHeader(t *testing.T) {
	tool := buildTestTool()
	label := buildTestLabel()
	s := NewSelectedMeasurementStrategy([]string{"Size"})

	table, err := s.Measure(context.Background(), tool, label, nil, nil, 0)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	out := Dump(table)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Dump produced %d lines, want 2 (header + 1 object): %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "object_id\tSize") {
		t.Fatalf("header line = %q, want to start with %q", lines[0], "object_id\tSize")
	}
	if !strings.HasPrefix(lines[1], "1\t4") {
		t.Fatalf("object row = %q, want to start with %q", lines[1], "1\t4")
	}
}
