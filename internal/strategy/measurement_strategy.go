// Package strategy implements a set of interchangeable measurement
// modes layered over internal/measure.MeasurementTool, selected by a
// MeasurementContext at call time.
package strategy

import (
	"context"

	"github.com/brackenfield/objmeasure/internal/measure"
)

// MeasurementStrategy selects which features a measurement run
// computes and how it reports the result.
type MeasurementStrategy interface {
	Measure(ctx context.Context, tool *measure.MeasurementTool, label measure.LabelImage, grey measure.GreyImage, objectIDs []measure.ObjectID, connectivity int) (*measure.Table, error)
	GetStrategyName() string
}

// FullMeasurementStrategy computes every feature the tool has
// registered; when grey is nil, features that need a grey image are
// left out.
type FullMeasurementStrategy struct{}

// NewFullMeasurementStrategy creates a strategy that measures every
// registered feature.
func NewFullMeasurementStrategy() MeasurementStrategy {
	return &FullMeasurementStrategy{}
}

func (s *FullMeasurementStrategy) Measure(ctx context.Context, tool *measure.MeasurementTool, label measure.LabelImage, grey measure.GreyImage, objectIDs []measure.ObjectID, connectivity int) (*measure.Table, error) {
	names := make([]string, 0, len(tool.Features()))
	for _, desc := range tool.Features() {
		if desc.NeedsGrey && grey == nil {
			continue
		}
		names = append(names, desc.Name)
	}
	return tool.Measure(ctx, label, grey, names, objectIDs, connectivity)
}

func (s *FullMeasurementStrategy) GetStrategyName() string { return "full_measurement" }

// fastFeatureNames are the line-based and image-based features cheap
// enough to run on every request without chain-code or convex-hull
// extraction. Kept as an explicit allowlist rather than filtering by
// FeatureKind so a caller always knows exactly what "fast" means.
var fastFeatureNames = []string{"Size", "Mass", "MeanIntensity"}

// FastMeasurementStrategy computes a small, cheap feature subset,
// skipping boundary tracing and convex hull construction entirely;
// when grey is nil, the allowlisted features that need a grey image
// are left out.
type FastMeasurementStrategy struct{}

// NewFastMeasurementStrategy creates a strategy that measures only
// the cheap line-based and image-based features.
func NewFastMeasurementStrategy() MeasurementStrategy {
	return &FastMeasurementStrategy{}
}

func (s *FastMeasurementStrategy) Measure(ctx context.Context, tool *measure.MeasurementTool, label measure.LabelImage, grey measure.GreyImage, objectIDs []measure.ObjectID, connectivity int) (*measure.Table, error) {
	available := make(map[string]bool, len(tool.Features()))
	for _, desc := range tool.Features() {
		available[desc.Name] = !(desc.NeedsGrey && grey == nil)
	}

	names := make([]string, 0, len(fastFeatureNames))
	for _, name := range fastFeatureNames {
		if available[name] {
			names = append(names, name)
		}
	}
	return tool.Measure(ctx, label, grey, names, objectIDs, connectivity)
}

func (s *FastMeasurementStrategy) GetStrategyName() string { return "fast_measurement" }

// SelectedMeasurementStrategy computes exactly the caller-supplied
// feature names, for API requests that ask for a specific feature set.
type SelectedMeasurementStrategy struct {
	FeatureNames []string
}

// NewSelectedMeasurementStrategy creates a strategy that measures
// exactly featureNames.
func NewSelectedMeasurementStrategy(featureNames []string) MeasurementStrategy {
	return &SelectedMeasurementStrategy{FeatureNames: featureNames}
}

func (s *SelectedMeasurementStrategy) Measure(ctx context.Context, tool *measure.MeasurementTool, label measure.LabelImage, grey measure.GreyImage, objectIDs []measure.ObjectID, connectivity int) (*measure.Table, error) {
	return tool.Measure(ctx, label, grey, s.FeatureNames, objectIDs, connectivity)
}

func (s *SelectedMeasurementStrategy) GetStrategyName() string { return "selected_measurement" }

// MeasurementContext manages the active strategy and runs it on demand.
type MeasurementContext struct {
	strategy MeasurementStrategy
}

// NewMeasurementContext creates a new measurement context.
func NewMeasurementContext(strategy MeasurementStrategy) *MeasurementContext {
	return &MeasurementContext{strategy: strategy}
}

// SetStrategy changes the active strategy.
func (c *MeasurementContext) SetStrategy(strategy MeasurementStrategy) {
	c.strategy = strategy
}

// ExecuteMeasurement runs the active strategy.
func (c *MeasurementContext) ExecuteMeasurement(ctx context.Context, tool *measure.MeasurementTool, label measure.LabelImage, grey measure.GreyImage, objectIDs []measure.ObjectID, connectivity int) (*measure.Table, error) {
	return c.strategy.Measure(ctx, tool, label, grey, objectIDs, connectivity)
}

// GetCurrentStrategy returns the active strategy's name.
func (c *MeasurementContext) GetCurrentStrategy() string {
	return c.strategy.GetStrategyName()
}
