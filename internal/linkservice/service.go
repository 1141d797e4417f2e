// Package linkservice wraps the core selector with logging, metrics and
// tracing for use by long-running callers.
package linkservice

import (
	"context"
	"time"

	"github.com/signalsfoundry/link-station-selector/core"
	"github.com/signalsfoundry/link-station-selector/internal/logging"
	"github.com/signalsfoundry/link-station-selector/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/signalsfoundry/link-station-selector/internal/linkservice"

// Service selects link stations and reports each lookup. Safe for concurrent
// use.
type Service struct {
	selector  *core.Selector
	log       logging.Logger
	collector *observability.SelectorCollector
	tracer    trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithSelector overrides the underlying selector.
func WithSelector(s *core.Selector) Option {
	return func(svc *Service) { svc.selector = s }
}

// WithLogger sets the logger. Selections are logged at debug level.
func WithLogger(l logging.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}

// WithCollector records selections into c.
func WithCollector(c *observability.SelectorCollector) Option {
	return func(svc *Service) { svc.collector = c }
}

// WithTracerProvider sets the provider spans are created from. Defaults to
// the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(svc *Service) {
		if tp != nil {
			svc.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewService constructs a Service.
func NewService(opts ...Option) *Service {
	svc := &Service{
		selector: core.NewSelector(),
		log:      logging.Noop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer(tracerName)
	}
	return svc
}

// Select finds the best station for device.
func (s *Service) Select(ctx context.Context, device core.Point, stations []core.Station) core.Selection {
	ctx, log := logging.WithSelectionLogger(ctx, s.log)
	ctx, span := s.tracer.Start(ctx, "LinkStation/Select",
		trace.WithAttributes(
			attribute.String("selection_id", logging.SelectionIDFromContext(ctx)),
			attribute.Float64("device.x", device.X),
			attribute.Float64("device.y", device.Y),
			attribute.Int("stations.count", len(stations)),
		),
	)
	defer span.End()

	start := time.Now()
	sel := s.selector.Select(device, stations)
	elapsed := time.Since(start)

	s.collector.ObserveSelection(sel, len(stations), elapsed)

	span.SetAttributes(attribute.Bool("selected", sel.Selected()))
	if !sel.Selected() {
		log.Debug(ctx, "no link station within reach",
			logging.Float("device_x", device.X),
			logging.Float("device_y", device.Y),
			logging.Int("stations", len(stations)),
		)
		return sel
	}

	span.SetAttributes(
		attribute.Float64("station.x", sel.Station.X),
		attribute.Float64("station.y", sel.Station.Y),
		attribute.Float64("power", sel.Power),
	)
	log.Debug(ctx, "selected link station",
		logging.Float("device_x", device.X),
		logging.Float("device_y", device.Y),
		logging.Float("station_x", sel.Station.X),
		logging.Float("station_y", sel.Station.Y),
		logging.Float("power", sel.Power),
		logging.Int("stations", len(stations)),
	)
	return sel
}

// BestLinkStation returns the message describing the best station for device.
func (s *Service) BestLinkStation(ctx context.Context, device core.Point, stations []core.Station) string {
	return s.Select(ctx, device, stations).String()
}
