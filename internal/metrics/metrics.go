// Package metrics exposes Prometheus counters for the outbound calls the
// client makes: postal code lookups and form submissions.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup outcomes.
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupError    = "error"
	LookupCached   = "cache_hit"
)

// Submission outcomes.
const (
	SubmissionSuccess     = "success"
	SubmissionFieldErrors = "field_errors"
	SubmissionGlobalError = "global_error"
	SubmissionTransport   = "transport_error"
)

// Recorder holds the client's collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	lookups           *prometheus.CounterVec
	submissions       *prometheus.CounterVec
	submissionLatency *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onboard",
			Name:      "address_lookups_total",
			Help:      "Postal code lookups by outcome.",
		}, []string{"outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onboard",
			Name:      "submissions_total",
			Help:      "Form submissions by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		submissionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "onboard",
			Name:      "submission_duration_seconds",
			Help:      "Time spent on a single submission attempt.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	reg.MustRegister(r.lookups, r.submissions, r.submissionLatency)
	return r
}

// Lookup counts one postal code lookup.
func (r *Recorder) Lookup(outcome string) {
	if r == nil {
		return
	}
	r.lookups.WithLabelValues(outcome).Inc()
}

// Submission counts one submission attempt and its duration.
func (r *Recorder) Submission(endpoint, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(endpoint, outcome).Inc()
	r.submissionLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// Serve exposes gatherer on addr under /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

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

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
