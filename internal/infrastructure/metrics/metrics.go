// Package metrics exports router activity as Prometheus collectors and
// serves them next to a JSON status endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bnema/sleepwatcher/internal/coordinator"
	"github.com/bnema/sleepwatcher/internal/domain/event"
)

// Collectors implements coordinator.Recorder.
type Collectors struct {
	EventsTotal         *prometheus.CounterVec
	ScriptErrorsTotal   *prometheus.CounterVec
	InhibitAcquisitions *prometheus.CounterVec
	Subscriptions       prometheus.Gauge
	Devices             prometheus.Gauge
	InhibitActive       prometheus.Gauge
	OnBattery           prometheus.Gauge
}

var _ coordinator.Recorder = (*Collectors)(nil)

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)
	return &Collectors{
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sleepwatcher_events_total",
			Help: "Total number of events processed by the router, by kind",
		}, []string{"kind"}),
		ScriptErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sleepwatcher_script_errors_total",
			Help: "Total number of script failures, by phase (load, callback, session)",
		}, []string{"phase"}),
		InhibitAcquisitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sleepwatcher_inhibit_acquisitions_total",
			Help: "Total number of hold windows opened, by whether a native inhibitor was obtained",
		}, []string{"result"}),
		Subscriptions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sleepwatcher_subscriptions",
			Help: "Number of live idle subscriptions",
		}),
		Devices: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sleepwatcher_devices",
			Help: "Number of tracked input devices",
		}),
		InhibitActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sleepwatcher_inhibit_active",
			Help: "1 while a hold window is open",
		}),
		OnBattery: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sleepwatcher_on_battery",
			Help: "1 while the system runs on battery",
		}),
	}
}

func (c *Collectors) EventProcessed(kind event.Kind) {
	c.EventsTotal.WithLabelValues(kind.String()).Inc()
}

func (c *Collectors) ScriptError(phase string) {
	if phase == "" {
		phase = "unknown"
	}
	c.ScriptErrorsTotal.WithLabelValues(phase).Inc()
}

func (c *Collectors) InhibitAcquired(held bool) {
	result := "degraded"
	if held {
		result = "held"
	}
	c.InhibitAcquisitions.WithLabelValues(result).Inc()
}

func (c *Collectors) Observe(s coordinator.Snapshot) {
	c.Subscriptions.Set(float64(s.Subscriptions))
	c.Devices.Set(float64(len(s.Devices)))
	c.InhibitActive.Set(boolGauge(s.InhibitActive))
	c.OnBattery.Set(boolGauge(s.OnBattery))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
