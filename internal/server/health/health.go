// Package health exposes the debug HTTP surface for a running processord:
// a liveness probe and a Prometheus scrape endpoint, grounded on the
// teacher's HealthLogger (registry + gauges, process-level metrics kept
// separate from the wire-level metrics a handler emits via runtimectx).
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Collector reports live process-level statistics from a running stream
// server. internal/stream.Server satisfies this.
type Collector interface {
	ActiveSessions() int64
}

// Snapshot is the JSON body served at /healthz.
type Snapshot struct {
	Status        string `json:"status"`
	Goroutines    int    `json:"goroutines"`
	MemAllocBytes uint64 `json:"mem_alloc_bytes"`
	ActiveSessions int64 `json:"active_sessions"`
	Timestamp     int64  `json:"timestamp"`
}

// Server serves /healthz and /metrics on a dedicated debug port.
type Server struct {
	collector Collector
	log       *logrus.Logger

	registry        *prometheus.Registry
	goroutinesGauge prometheus.Gauge
	memAllocGauge   prometheus.Gauge
	sessionsGauge   prometheus.Gauge

	router *chi.Mux
	http   *http.Server
}

// New builds a debug Server. collector may be nil, in which case
// active_sessions is always reported as zero (useful for tests that don't
// wire a full stream.Server).
func New(collector Collector, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		collector: collector,
		log:       log,
		registry:  reg,
		goroutinesGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "processord_goroutines",
			Help: "Number of running goroutines",
		}),
		memAllocGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "processord_mem_alloc_bytes",
			Help: "Current heap allocation in bytes",
		}),
		sessionsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "processord_active_sessions",
			Help: "Number of open ProcessBindingsStream connections",
		}),
	}
	reg.MustRegister(s.goroutinesGauge, s.memAllocGauge, s.sessionsGauge)

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

func (s *Server) snapshot() Snapshot {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	var sessions int64
	if s.collector != nil {
		sessions = s.collector.ActiveSessions()
	}

	s.goroutinesGauge.Set(float64(runtime.NumGoroutine()))
	s.memAllocGauge.Set(float64(mem.Alloc))
	s.sessionsGauge.Set(float64(sessions))

	return Snapshot{
		Status:         "ok",
		Goroutines:     runtime.NumGoroutine(),
		MemAllocBytes:  mem.Alloc,
		ActiveSessions: sessions,
		Timestamp:      time.Now().Unix(),
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.WithError(err).Warn("health: failed to encode snapshot")
	}
}

// Handler returns the chi router, for tests that want to drive requests
// with httptest without binding a real listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the debug server to addr and serves in the background until
// Shutdown is called. Errors other than the expected shutdown error are
// logged, matching HealthLogger.StartMetricsServer's fire-and-forget style.
func (s *Server) Start(addr string) {
	s.http = &http.Server{Addr: addr, Handler: s.router}
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Error("health: debug server failed")
		}
	}()
}

// Shutdown gracefully stops the debug server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
