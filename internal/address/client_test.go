package address

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/onboard/internal/metrics"
)

func newViaCEPServer(t *testing.T, hits *int32, handler func(w http.ResponseWriter, cep string)) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/{cep}/json/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		handler(w, r.PathValue("cep"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLookupFound(t *testing.T) {
	var hits int32
	srv := newViaCEPServer(t, &hits, func(w http.ResponseWriter, cep string) {
		assert.Equal(t, "01310100", cep)
		_, _ = w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})

	client := NewClient(Config{BaseURL: srv.URL + "/ws/"}, WithMetrics(metrics.New(prometheus.NewRegistry())))

	addr, err := client.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.Street)
	assert.Equal(t, "Bela Vista", addr.Neighborhood)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.UF)
	assert.Equal(t, "01310100", addr.PostalCode)

	// Second lookup is served from the cache.
	_, err = client.Lookup(context.Background(), "01310100")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestLookupNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"boolean flag", `{"erro": true}`},
		{"string flag", `{"erro": "true"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			srv := newViaCEPServer(t, &hits, func(w http.ResponseWriter, cep string) {
				_, _ = w.Write([]byte(tt.body))
			})

			client := NewClient(Config{BaseURL: srv.URL + "/ws"})
			_, err := client.Lookup(context.Background(), "99999999")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLookupRejectsMalformedCode(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := client.Lookup(context.Background(), "0131010")
	assert.ErrorIs(t, err, ErrInvalidPostalCode)
}

func TestLookupTransportFailure(t *testing.T) {
	var hits int32
	srv := newViaCEPServer(t, &hits, func(w http.ResponseWriter, cep string) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := NewClient(Config{BaseURL: srv.URL + "/ws"})
	_, err := client.Lookup(context.Background(), "01310100")

	var lookupErr *LookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, http.StatusBadGateway, lookupErr.Status)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLookupCollapsesConcurrentRequests(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	srv := newViaCEPServer(t, &hits, func(w http.ResponseWriter, cep string) {
		<-release
		_, _ = w.Write([]byte(`{"logradouro":"Rua A","bairro":"Centro","localidade":"Recife","uf":"PE"}`))
	})

	client := NewClient(Config{BaseURL: srv.URL + "/ws"})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			addr, err := client.Lookup(context.Background(), "50030230")
			assert.NoError(t, err)
			assert.Equal(t, "Recife", addr.City)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&hits), int32(5))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&hits), int32(1))
}
