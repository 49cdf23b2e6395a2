package observer

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver exports measurement run counts and durations as
// Prometheus metrics, subscribed to the same event stream as the
// logging and in-memory metrics observers.
type PrometheusObserver struct {
	runsTotal       *prometheus.CounterVec
	objectsMeasured prometheus.Counter
	runDuration     prometheus.Histogram
}

// NewPrometheusObserver builds a PrometheusObserver and registers its
// collectors with reg.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "objmeasure",
			Name:      "runs_total",
			Help:      "Total number of measurement runs, by outcome.",
		}, []string{"outcome"}),
		objectsMeasured: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "objmeasure",
			Name:      "objects_measured_total",
			Help:      "Total number of objects measured across all runs.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "objmeasure",
			Name:      "run_duration_seconds",
			Help:      "Measurement run duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(o.runsTotal, o.objectsMeasured, o.runDuration)
	return o
}

// OnEvent handles measurement events by recording Prometheus metrics.
func (o *PrometheusObserver) OnEvent(ctx context.Context, event MeasurementEvent) {
	switch event.EventType {
	case MeasurementCompleted:
		o.runsTotal.WithLabelValues("success").Inc()
		o.objectsMeasured.Add(float64(event.ObjectCount))
		o.runDuration.Observe(event.ProcessingTime.Seconds())
	case MeasurementFailed:
		o.runsTotal.WithLabelValues("failure").Inc()
	}
}

// GetObserverName returns the observer name.
func (o *PrometheusObserver) GetObserverName() string { return "prometheus_observer" }
