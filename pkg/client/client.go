// Package client provides the shop REST API client with credential
// handling, typed errors, and request metrics.
package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for shop API operations.
var (
	shopRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_requests_total",
		Help: "Total shop API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	shopRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shop_request_duration_seconds",
		Help:    "Shop API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	shopErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_errors_total",
		Help: "Total shop API errors by class",
	}, []string{"class"})
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the shop API base URL, e.g. "https://shop.example.com".
	BaseURL string

	// Email and APIKey form the static API credential. They are encoded
	// once and reused for every request.
	Email  string
	APIKey string

	// Timeout is the per-request HTTP timeout (default 30s). There is no
	// retry layer: every call is a single bounded request.
	Timeout time.Duration
}

// Client is the shop API client. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	auth       string
	logger     zerolog.Logger
}

// New creates a new shop API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("shop base URL is required")
	}
	if cfg.Email == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("shop API credential (email + key) is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	credential := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.APIKey))

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		auth:       "Basic " + credential,
		logger:     log.With().Str("component", "shop-client").Logger(),
	}, nil
}

// GetJSON performs a GET request against the given API path and decodes
// the response's "data" envelope into out. The resource name is used in
// error messages and logging so failures identify what was being fetched.
func (c *Client) GetJSON(ctx context.Context, resource, path string, query url.Values, out any) error {
	endpoint := path

	startTime := time.Now()
	defer func() {
		shopRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", resource, err)
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("resource", resource).
		Str("endpoint", endpoint).
		Msg("Executing shop API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		shopErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		shopRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("resource", resource).Msg("Shop API request failed")
		return fmt.Errorf("fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	shopRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errClass := classifyStatus(resp.StatusCode)
		shopErrorsTotal.WithLabelValues(string(errClass)).Inc()
		c.logger.Warn().
			Str("resource", resource).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Shop API request error")
		return &APIError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", resource, err)
	}

	return decodeEnvelope(resource, body, out)
}

// decodeEnvelope unwraps the backend's {"data": ...} envelope when
// present and decodes the payload into out.
func decodeEnvelope(resource string, body []byte, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	payload := body
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}
