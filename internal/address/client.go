// Package address resolves Brazilian postal codes (CEP) to street,
// neighborhood, city and state through the ViaCEP directory.
package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"rhystmorgan/onboard/internal/metrics"
	"rhystmorgan/onboard/internal/validation"
)

const (
	DefaultBaseURL  = "https://viacep.com.br/ws"
	DefaultTimeout  = 5 * time.Second
	DefaultCacheTTL = 10 * time.Minute

	maxResponseBytes = 64 << 10
)

type Client struct {
	httpClient *http.Client
	config     Config
	cache      *Cache
	group      singleflight.Group
	logger     zerolog.Logger
	metrics    *metrics.Recorder
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = r
	}
}

func NewClient(config Config, opts ...Option) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	c := &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		cache:      NewCache(config.CacheTTL),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// StartCacheCleanup evicts expired cache entries in the background until
// ctx is done.
func (c *Client) StartCacheCleanup(ctx context.Context) {
	c.cache.StartCleanupRoutine(ctx, c.config.CacheTTL)
}

// Lookup resolves an 8-digit postal code. It returns ErrNotFound when the
// directory has no entry, ErrInvalidPostalCode for malformed codes and a
// *LookupError for transport failures. Concurrent lookups of the same
// code share one request.
func (c *Client) Lookup(ctx context.Context, postalCode string) (Address, error) {
	cep := validation.OnlyDigits(postalCode)
	if len(cep) != 8 {
		return Address{}, ErrInvalidPostalCode
	}

	if cached, found := c.cache.Get(cep); found {
		c.metrics.Lookup(metrics.LookupCached)
		return cached, nil
	}

	v, err, shared := c.group.Do(cep, func() (interface{}, error) {
		return c.fetch(ctx, cep)
	})

	logger := c.logger.With().Str("cep", cep).Bool("shared", shared).Logger()

	switch {
	case err == nil:
		addr := v.(Address)
		c.cache.Set(cep, addr)
		c.metrics.Lookup(metrics.LookupFound)
		logger.Debug().Str("city", addr.City).Str("uf", addr.UF).Int("cached", c.cache.Size()).Msg("postal code resolved")
		return addr, nil
	case errors.Is(err, ErrNotFound):
		c.metrics.Lookup(metrics.LookupNotFound)
		logger.Info().Msg("postal code not found")
		return Address{}, err
	default:
		c.metrics.Lookup(metrics.LookupError)
		logger.Warn().Err(err).Msg("postal code lookup failed")
		return Address{}, err
	}
}

func (c *Client) fetch(ctx context.Context, cep string) (Address, error) {
	url := fmt.Sprintf("%s/%s/json/", c.config.BaseURL, cep)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, &LookupError{PostalCode: cep, Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Address{}, &LookupError{PostalCode: cep, Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return Address{}, ErrInvalidPostalCode
	case resp.StatusCode == http.StatusNotFound:
		return Address{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return Address{}, &LookupError{PostalCode: cep, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Address{}, &LookupError{PostalCode: cep, Cause: err}
	}

	var payload viaCEPResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Address{}, &LookupError{PostalCode: cep, Cause: fmt.Errorf("decode response: %w", err)}
	}

	if payload.notFound() {
		return Address{}, ErrNotFound
	}

	return Address{
		PostalCode:   cep,
		Street:       payload.Logradouro,
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		UF:           payload.UF,
	}, nil
}
