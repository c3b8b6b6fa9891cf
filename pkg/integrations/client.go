// Package integrations provides shared HTTP functionality for upstream API
// clients: response caching, retry on transient failures, and common request
// headers.
package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/spmaudit/pkg/cache"
)

const httpTimeout = 10 * time.Second

// Client provides cached, retrying JSON GETs with default headers.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	prefix  string
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client. Cache keys are namespaced with prefix; headers
// are applied to every request (pass nil for none).
func NewClient(c cache.Cache, prefix string, ttl time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   c,
		prefix:  prefix,
		ttl:     ttl,
		headers: headers,
	}
}

// SetHTTPClient replaces the underlying HTTP client. Used by tests and by
// short-timeout best-effort lookups.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// Get performs an HTTP GET and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", cache.ErrNetwork, url, err)
	}
	return nil
}

// GetCached performs a cached GET: a fresh cache hit skips the request
// entirely, and successful responses are stored for the client's TTL.
// Transient failures are retried with backoff; errors are never cached.
func (c *Client) GetCached(ctx context.Context, key, url string, v any) error {
	fullKey := c.prefix + key
	if data, hit, _ := c.cache.Get(ctx, fullKey); hit {
		if err := json.Unmarshal(data, v); err == nil {
			return nil
		}
	}

	err := cache.RetryWithBackoff(ctx, func() error {
		return c.Get(ctx, url, v)
	})
	if err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, fullKey, data, c.ttl)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}
