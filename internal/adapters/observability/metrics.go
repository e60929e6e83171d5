package observability

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripplanner", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripplanner", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripplanner", Name: "external_requests_total", Help: "Outbound text-generation requests."},
		[]string{"provider", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripplanner", Name: "external_request_duration_seconds",
			Help: "Outbound text-generation request duration seconds.",
			// model calls take seconds, not milliseconds
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"provider"},
	)
	Estimates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripplanner", Name: "estimates_total", Help: "Cost estimates computed."},
		[]string{"tier", "season"},
	)
	ItineraryFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripplanner", Name: "itinerary_failures_total", Help: "Failed itinerary requests by kind."},
		[]string{"kind"}, // auth|unavailable|malformed
	)
)

// Serve starts a dedicated metrics listener on addr and stops it when ctx ends.
// Empty addr disables it; /metrics stays mounted on the main router either way.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, Estimates, ItineraryFailures)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveExternal records one provider call; status 0 means no HTTP response.
func ObserveExternal(provider string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(provider, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(provider).Observe(dur.Seconds())
}

func ObserveEstimate(tier, season string) { Estimates.WithLabelValues(tier, season).Inc() }

func ObserveItineraryFailure(kind string) { ItineraryFailures.WithLabelValues(kind).Inc() }
