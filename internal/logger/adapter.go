package logger

import "github.com/sirupsen/logrus"

// MeasureAdapter wraps a logrus.Entry to satisfy measure.Logger, the
// narrow logging seam internal/measure.MeasurementTool calls through.
// Kept here rather than in internal/measure itself so the engine
// package never imports logrus directly.
type MeasureAdapter struct {
	entry *logrus.Entry
}

// NewMeasureAdapter wraps entry (or the package-level Logger if entry
// is nil) for use as a measure.Logger.
func NewMeasureAdapter(entry *logrus.Entry) *MeasureAdapter {
	if entry == nil {
		entry = Logger.WithField("component", "measure")
	}
	return &MeasureAdapter{entry: entry}
}

func (a *MeasureAdapter) Debugf(format string, args ...interface{}) { a.entry.Debugf(format, args...) }
func (a *MeasureAdapter) Infof(format string, args ...interface{})  { a.entry.Infof(format, args...) }
func (a *MeasureAdapter) Warnf(format string, args ...interface{})  { a.entry.Warnf(format, args...) }
func (a *MeasureAdapter) Errorf(format string, args ...interface{}) { a.entry.Errorf(format, args...) }
