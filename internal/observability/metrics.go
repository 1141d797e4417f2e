package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/signalsfoundry/link-station-selector/core"
)

// Outcome label values for link_selections_total.
const (
	OutcomeSelected = "selected"
	OutcomeNone     = "none"
)

// SelectorCollector bundles Prometheus metrics for link station selection.
type SelectorCollector struct {
	gatherer prometheus.Gatherer

	Selections        *prometheus.CounterVec
	SelectedPower     prometheus.Histogram
	StationsScanned   prometheus.Histogram
	SelectionDuration prometheus.Histogram
}

// NewSelectorCollector registers selector metrics against reg, defaulting to
// the global Prometheus registry when nil.
func NewSelectorCollector(reg prometheus.Registerer) (*SelectorCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	selections, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "link_selections_total",
		Help: "Total number of best link station lookups, labeled by outcome.",
	}, []string{"outcome"}), "link_selections_total")
	if err != nil {
		return nil, err
	}

	power, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "link_selection_power",
		Help:    "Power of the selected link station.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}), "link_selection_power")
	if err != nil {
		return nil, err
	}

	scanned, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "link_selection_stations",
		Help:    "Number of candidate stations scanned per lookup.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
	}), "link_selection_stations")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "link_selection_duration_seconds",
		Help:    "Latency of a single best link station lookup in seconds.",
		Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
	}), "link_selection_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &SelectorCollector{
		gatherer:          gatherer,
		Selections:        selections,
		SelectedPower:     power,
		StationsScanned:   scanned,
		SelectionDuration: duration,
	}, nil
}

// ObserveSelection records one lookup. A nil collector is a no-op.
func (c *SelectorCollector) ObserveSelection(sel core.Selection, stations int, elapsed time.Duration) {
	if c == nil {
		return
	}
	outcome := OutcomeNone
	if sel.Selected() {
		outcome = OutcomeSelected
		if c.SelectedPower != nil {
			c.SelectedPower.Observe(sel.Power)
		}
	}
	if c.Selections != nil {
		c.Selections.WithLabelValues(outcome).Inc()
	}
	if c.StationsScanned != nil {
		c.StationsScanned.Observe(float64(stations))
	}
	if c.SelectionDuration != nil {
		c.SelectionDuration.Observe(elapsed.Seconds())
	}
}

// Gatherer returns the gatherer the collector was registered with.
func (c *SelectorCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SelectorCollector) Handler() http.Handler {
	gatherer := c.Gatherer()
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
