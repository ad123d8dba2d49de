// Package metrics exports game server metrics to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rocketrun"

// Collector holds the game metrics. A nil *Collector is valid and records nothing.
type Collector struct {
	sessions     prometheus.Gauge
	runs         prometheus.Counter
	crashes      prometheus.Counter
	rings        prometheus.Counter
	asteroids    prometheus.Counter
	distance     prometheus.Histogram
	sessionTotal prometheus.Counter
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of connected game sessions.",
		}),
		sessionTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Game sessions accepted since start.",
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Runs started from the menu or after a crash.",
		}),
		crashes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_crashed_total",
			Help:      "Runs that ended in a collision.",
		}),
		rings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rings_spawned_total",
			Help:      "Field rings spawned across all sessions.",
		}),
		asteroids: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interior_asteroids_spawned_total",
			Help:      "Interior asteroids placed across all sessions.",
		}),
		distance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_distance_units",
			Help:      "Distance traveled per finished run.",
			Buckets:   prometheus.ExponentialBuckets(50, 2, 10),
		}),
	}

	for _, m := range []prometheus.Collector{
		c.sessions, c.sessionTotal, c.runs, c.crashes, c.rings, c.asteroids, c.distance,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SessionOpened records a new session.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessions.Inc()
	c.sessionTotal.Inc()
}

// SessionClosed records a finished session.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessions.Dec()
}

// RunStarted records a run leaving the menu or dead screen.
func (c *Collector) RunStarted() {
	if c == nil {
		return
	}
	c.runs.Inc()
}

// RunEnded records the distance of a crashed run.
func (c *Collector) RunEnded(distance float32) {
	if c == nil {
		return
	}
	c.crashes.Inc()
	c.distance.Observe(float64(distance))
}

// RingSpawned records a spawned ring and its interior asteroid count.
func (c *Collector) RingSpawned(interior int) {
	if c == nil {
		return
	}
	c.rings.Inc()
	c.asteroids.Add(float64(interior))
}

// Serve exposes g on addr under /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
