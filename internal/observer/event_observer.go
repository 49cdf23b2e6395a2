package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MeasurementEvent represents one step of a measurement run's
// lifecycle, published to every subscribed Observer.
type MeasurementEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	RunID          string                 `json:"run_id"`
	ObjectCount    int                    `json:"object_count"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of measurement event.
type EventType string

const (
	MeasurementStarted   EventType = "measurement_started"
	MeasurementCompleted EventType = "measurement_completed"
	MeasurementFailed    EventType = "measurement_failed"
	ImageFetched         EventType = "image_fetched"
	ImageFetchFailed     EventType = "image_fetch_failed"
)

// Observer defines the interface for event observers.
type Observer interface {
	OnEvent(ctx context.Context, event MeasurementEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers.
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event MeasurementEvent)
}

// LoggingObserver logs measurement events.
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer.
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles measurement events by logging them.
func (o *LoggingObserver) OnEvent(ctx context.Context, event MeasurementEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"run_id":          event.RunID,
		"object_count":    event.ObjectCount,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case MeasurementStarted:
		o.logger.WithFields(fields).Info("measurement started")
	case MeasurementCompleted:
		o.logger.WithFields(fields).Info("measurement completed")
	case MeasurementFailed:
		o.logger.WithFields(fields).Error("measurement failed")
	case ImageFetched:
		o.logger.WithFields(fields).Debug("image fetched")
	case ImageFetchFailed:
		o.logger.WithFields(fields).Error("image fetch failed")
	default:
		o.logger.WithFields(fields).Info("measurement event")
	}
}

// GetObserverName returns the observer name.
func (o *LoggingObserver) GetObserverName() string { return "logging_observer" }

// MetricsObserver collects in-process metrics from measurement events.
// Kept alongside the Prometheus observer (metrics.go) for callers that
// just want an in-memory snapshot without scraping.
type MetricsObserver struct {
	mu                   sync.RWMutex
	totalRuns            int64
	successfulRuns       int64
	failedRuns           int64
	totalProcessingTime  time.Duration
	totalObjectsMeasured int64
}

// NewMetricsObserver creates a new in-process metrics observer.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles measurement events by collecting metrics.
func (o *MetricsObserver) OnEvent(ctx context.Context, event MeasurementEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case MeasurementStarted:
		o.totalRuns++
	case MeasurementCompleted:
		o.successfulRuns++
		o.totalProcessingTime += event.ProcessingTime
		o.totalObjectsMeasured += int64(event.ObjectCount)
	case MeasurementFailed:
		o.failedRuns++
	}
}

// GetObserverName returns the observer name.
func (o *MetricsObserver) GetObserverName() string { return "metrics_observer" }

// Snapshot returns current metrics.
func (o *MetricsObserver) Snapshot() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avg := time.Duration(0)
	if o.successfulRuns > 0 {
		avg = o.totalProcessingTime / time.Duration(o.successfulRuns)
	}

	return map[string]interface{}{
		"total_runs":             o.totalRuns,
		"successful_runs":        o.successfulRuns,
		"failed_runs":            o.failedRuns,
		"total_objects_measured": o.totalObjectsMeasured,
		"avg_processing_time":    avg,
	}
}

// EventPublisher implements the Subject interface.
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{observers: make([]Observer, 0)}
}

// Subscribe adds an observer.
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer.
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event, concurrently,
// recovering from any observer panic so one bad observer cannot take
// down a measurement run.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event MeasurementEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
