package features

import "github.com/brackenfield/objmeasure/internal/measure"

// NewDefaultTool returns a measure.MeasurementTool with the full
// built-in feature set pre-registered. It lives here, one layer above
// the driver, so the driver package itself stays free of a dependency
// on its own plug-ins.
func NewDefaultTool() *measure.MeasurementTool {
	tool := measure.NewMeasurementTool()
	RegisterDefaults(tool)
	return tool
}

// RegisterDefaults registers every built-in feature plug-in into an
// existing tool.
func RegisterDefaults(tool *measure.MeasurementTool) {
	tool.Register(NewSize())
	tool.Register(NewMass())
	tool.Register(NewMomentX())
	tool.Register(NewMomentY())
	tool.Register(NewCenterOfMass())
	tool.Register(NewMeanIntensity())
	tool.Register(NewIntensityStdDev())
	tool.Register(NewPerimeter())
	tool.Register(NewConvexArea())
	tool.Register(NewConvexPerimeter())
	tool.Register(NewCircularity())
	tool.Register(NewSolidity())
}
