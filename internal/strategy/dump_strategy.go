package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/brackenfield/objmeasure/internal/measure"
)

// DumpStrategy wraps another MeasurementStrategy for the CLI's debug
// output: Measure delegates to the wrapped strategy unchanged, and the
// name gains a "dump_" prefix. The text rendering itself is done by
// Dump and has no guaranteed format; callers that need structured
// output should use the underlying measure.Table instead of parsing
// this dump.
type DumpStrategy struct {
	inner MeasurementStrategy
}

// NewDumpStrategy wraps a MeasurementStrategy, adding a text dump.
func NewDumpStrategy(inner MeasurementStrategy) *DumpStrategy {
	return &DumpStrategy{inner: inner}
}

func (s *DumpStrategy) Measure(ctx context.Context, tool *measure.MeasurementTool, label measure.LabelImage, grey measure.GreyImage, objectIDs []measure.ObjectID, connectivity int) (*measure.Table, error) {
	return s.inner.Measure(ctx, tool, label, grey, objectIDs, connectivity)
}

func (s *DumpStrategy) GetStrategyName() string { return "dump_" + s.inner.GetStrategyName() }

// Dump renders table as a plain-text, tab-separated grid: one row per
// object, one column per scalar value, with a header naming each
// feature's columns.
func Dump(table *measure.Table) string {
	var b strings.Builder

	b.WriteString("object_id")
	for _, info := range table.Features() {
		if info.ValueCount == 1 {
			fmt.Fprintf(&b, "\t%s", info.Name)
			continue
		}
		for i := uint(0); i < info.ValueCount; i++ {
			fmt.Fprintf(&b, "\t%s[%d]", info.Name, i)
		}
	}
	b.WriteByte('\n')

	for row := 0; row < table.NumObjects(); row++ {
		view := table.ObjectAt(row)
		fmt.Fprintf(&b, "%d", view.ID())
		for cursor := view.Cursor(); cursor.Valid(); cursor.Next() {
			for _, v := range cursor.Values() {
				fmt.Fprintf(&b, "\t%g", v)
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}
