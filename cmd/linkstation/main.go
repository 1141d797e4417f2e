package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/signalsfoundry/link-station-selector/core"
	"github.com/signalsfoundry/link-station-selector/internal/linkservice"
	"github.com/signalsfoundry/link-station-selector/internal/logging"
	"github.com/signalsfoundry/link-station-selector/internal/observability"
)

var (
	defaultStations = []core.Station{
		{X: 0, Y: 0, Reach: 10},
		{X: 20, Y: 20, Reach: 5},
		{X: 10, Y: 0, Reach: 12},
	}
	defaultDevices = []core.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 100},
		{X: 15, Y: 10},
		{X: 18, Y: 18},
	}
)

// Config holds the parsed command line.
type Config struct {
	Devices     []core.Point
	Stations    []core.Station
	Euclidean   bool
	MetricsAddr string
}

func main() {
	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Error(ctx, "invalid arguments", logging.Error(err))
		os.Exit(2)
	}

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Error(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Error(ctx, "link station lookup failed", logging.Error(err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (Config, error) {
	var devices pointList
	var stations stationList

	fs := flag.NewFlagSet("linkstation", flag.ContinueOnError)
	fs.Var(&devices, "device", "device point as x,y (repeatable)")
	fs.Var(&stations, "station", "link station as x,y,reach (repeatable)")
	euclidean := fs.Bool("euclidean", false, "measure distance as true Euclidean distance")
	metricsAddr := fs.String("metrics-addr", "", "HTTP address for Prometheus /metrics (disabled when empty)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Devices:     devices,
		Stations:    stations,
		Euclidean:   *euclidean,
		MetricsAddr: *metricsAddr,
	}
	if len(cfg.Devices) == 0 {
		cfg.Devices = defaultDevices
	}
	if len(cfg.Stations) == 0 {
		cfg.Stations = defaultStations
	}
	return cfg, nil
}

func run(ctx context.Context, cfg Config, log logging.Logger, out io.Writer) error {
	collector, err := observability.NewSelectorCollector(nil)
	if err != nil {
		return fmt.Errorf("initialise metrics collector: %w", err)
	}
	if srv := serveMetrics(cfg.MetricsAddr, collector, log); srv != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	opts := []linkservice.Option{
		linkservice.WithLogger(log),
		linkservice.WithCollector(collector),
	}
	if cfg.Euclidean {
		opts = append(opts, linkservice.WithSelector(core.NewSelector(core.WithDistanceFunc(core.EuclideanDistance))))
	}
	svc := linkservice.NewService(opts...)

	log.Info(ctx, "evaluating link stations",
		logging.Int("devices", len(cfg.Devices)),
		logging.Int("stations", len(cfg.Stations)),
		logging.Bool("euclidean", cfg.Euclidean),
	)
	for _, device := range cfg.Devices {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, svc.BestLinkStation(ctx, device, cfg.Stations)); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}

func serveMetrics(addr string, collector *observability.SelectorCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Error(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

type pointList []core.Point

func (l *pointList) String() string {
	parts := make([]string, 0, len(*l))
	for _, p := range *l {
		parts = append(parts, fmt.Sprintf("%g,%g", p.X, p.Y))
	}
	return strings.Join(parts, " ")
}

func (l *pointList) Set(v string) error {
	vals, err := parseFloats(v, 2)
	if err != nil {
		return err
	}
	*l = append(*l, core.Point{X: vals[0], Y: vals[1]})
	return nil
}

type stationList []core.Station

func (l *stationList) String() string {
	parts := make([]string, 0, len(*l))
	for _, s := range *l {
		parts = append(parts, fmt.Sprintf("%g,%g,%g", s.X, s.Y, s.Reach))
	}
	return strings.Join(parts, " ")
}

func (l *stationList) Set(v string) error {
	vals, err := parseFloats(v, 3)
	if err != nil {
		return err
	}
	*l = append(*l, core.Station{X: vals[0], Y: vals[1], Reach: vals[2]})
	return nil
}

func parseFloats(v string, n int) ([]float64, error) {
	fields := strings.Split(v, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d comma-separated numbers, got %q", n, v)
	}
	out := make([]float64, n)
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", f, err)
		}
		out[i] = x
	}
	return out, nil
}
