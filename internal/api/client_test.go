package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/onboard/internal/metrics"
	"rhystmorgan/onboard/internal/validation"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	mp4Header = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom\x00\x00\x00\x08free")
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL + "/"}, opts...)
	require.NoError(t, err)
	return client, &hits
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "not a url"})
	assert.Error(t, err)

	c, err := NewClient(Config{BaseURL: "http://localhost:8000"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.config.Timeout)
}

func TestEndpointJoinsWithOneSlash(t *testing.T) {
	for _, base := range []string{"http://api.test", "http://api.test/"} {
		c, err := NewClient(Config{BaseURL: base})
		require.NoError(t, err)
		assert.Equal(t, "http://api.test/api/partners/", c.Endpoint(PartnersPath))
		assert.Equal(t, "http://api.test/api/videos/", c.Endpoint("api/videos/"))
	}
}

func TestJSONSubmitterSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PartnersPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Maria Silva", body["name"])
		assert.Equal(t, "52998224725", body["cpf"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1}`))
	}, WithMetrics(rec))

	result := NewPartnerSubmitter(client).Submit(context.Background(), Payload{
		Fields: map[string]string{"name": "Maria Silva", "cpf": "52998224725"},
	})

	assert.True(t, result.Success)
	assert.JSONEq(t, `{"id": 1}`, string(result.Data))
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.True(t, client.GetStatus().Reachable)
	count, err := testutil.GatherAndCount(reg, "onboard_submissions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestJSONSubmitterFieldErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"name": ["too short"]}`))
	})

	result := NewPartnerSubmitter(client).Submit(context.Background(), Payload{
		Fields: map[string]string{"name": "A"},
	})

	assert.False(t, result.Success)
	assert.Equal(t, validation.ErrorMap{"name": "too short"}, result.Errors)
	assert.Empty(t, result.Error)
}

func TestJSONSubmitterTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := NewClient(Config{BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)

	result := NewPartnerSubmitter(client).Submit(context.Background(), Payload{})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.Errors)
	assert.False(t, client.GetStatus().Reachable)
}

func TestJSONSubmitterSingleAttemptOnServerError(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "maintenance"}`))
	})

	result := NewPartnerSubmitter(client).Submit(context.Background(), Payload{})
	assert.Equal(t, "maintenance", result.Error)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestVideoSubmitterUploadsParts(t *testing.T) {
	thumb := writeFile(t, "thumb.png", pngHeader)
	video := writeFile(t, "clip.mp4", mp4Header)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, VideosPath, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Launch", r.FormValue("title"))

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "clip.mp4", header.Filename)
		assert.Equal(t, "video/mp4", header.Header.Get("Content-Type"))
		data, _ := io.ReadAll(f)
		assert.Equal(t, mp4Header, data)

		_, thumbHeader, err := r.FormFile("thumbnail")
		require.NoError(t, err)
		assert.Equal(t, "image/png", thumbHeader.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"title": "Launch"}`))
	})

	result := NewVideoSubmitter(client).Submit(context.Background(), Payload{
		Fields: map[string]string{"title": "Launch"},
		Attachments: []Attachment{
			{Field: "thumbnail", Path: thumb},
			{Field: "file", Path: video},
		},
	})

	assert.True(t, result.Success)
}

func TestVideoSubmitterRejectsBadAttachments(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	notVideo := writeFile(t, "clip.mp4", pngHeader)

	result := NewVideoSubmitter(client).Submit(context.Background(), Payload{
		Fields: map[string]string{"title": "Launch"},
		Attachments: []Attachment{
			{Field: "thumbnail", Path: filepath.Join(t.TempDir(), "missing.png")},
			{Field: "file", Path: notVideo},
		},
	})

	assert.False(t, result.Success)
	assert.Equal(t, "File not found", result.Errors["thumbnail"])
	assert.Contains(t, result.Errors["file"], "Expected a video file")
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestListVideos(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array", `[{"title":"Launch","thumbnail":{"url":"/media/t.png"},"file":"/media/a.mp4"}]`},
		{"paginated", `{"results":[{"title":"Launch","thumbnail":"media/t.png","video_url":"/media/a.mp4"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				_, _ = w.Write([]byte(tt.body))
			})
			base := client.BaseURL()

			videos, err := client.ListVideos(context.Background())
			require.NoError(t, err)
			require.Len(t, videos, 1)
			assert.Equal(t, "Launch", videos[0].Title)
			assert.Equal(t, JoinURL(base, "/media/t.png"), videos[0].Thumbnail)
			assert.Equal(t, JoinURL(base, "/media/a.mp4"), videos[0].File)
		})
	}
}

func TestListVideosError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "storage offline"}`))
	})

	_, err := client.ListVideos(context.Background())
	require.Error(t, err)

	apiErr := ClassifyError(err)
	assert.Equal(t, ErrServerUnavailable, apiErr.Type)
	assert.Equal(t, "storage offline", apiErr.Message)
	assert.True(t, apiErr.IsRetryable())
}
