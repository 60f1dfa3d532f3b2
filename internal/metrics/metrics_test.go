package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.Lookup(LookupFound)
	r.Lookup(LookupFound)
	r.Lookup(LookupNotFound)
	r.Submission("partners", SubmissionSuccess, 120*time.Millisecond)
	r.Submission("partners", SubmissionFieldErrors, 80*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.lookups.WithLabelValues(LookupFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.lookups.WithLabelValues(LookupNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.submissions.WithLabelValues("partners", SubmissionSuccess)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.submissionLatency))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Lookup(LookupError)
		r.Submission("videos", SubmissionTransport, time.Second)
	})
}
