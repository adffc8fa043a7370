// Package yahoo implements the market.Provider contract against a Yahoo
// Finance compatible quote API (yfapi.net style endpoints, x-api-key auth).
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL          = "https://yfapi.net"
	defaultRegion           = "US"
	defaultLang             = "en"
	defaultHTTPTimeout      = 10 * time.Second
	defaultMaxRetries       = 3
	defaultRetryBackoffBase = 150 * time.Millisecond
)

// ErrNoData indicates a well-formed response that carried no usable payload.
var ErrNoData = errors.New("yahoo: no data in response")

// Client wraps access to the Yahoo Finance quote endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	region     string
	lang       string
	httpClient *http.Client
	maxRetries int
	logger     *log.Logger
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithAPIKey sets the x-api-key request header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithRegion overrides the region query parameter.
func WithRegion(region string) Option {
	return func(c *Client) {
		if region != "" {
			c.region = region
		}
	}
}

// WithLang overrides the lang query parameter.
func WithLang(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.lang = lang
		}
	}
}

// WithMaxRetries adjusts the retry budget.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// WithLogger injects a custom logger (defaults to log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient constructs a Yahoo Finance API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		region:     defaultRegion,
		lang:       defaultLang,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		maxRetries: defaultMaxRetries,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if client.logger == nil {
		client.logger = log.Default()
	}
	return client
}

// doGet issues a GET against path with query params and decodes the JSON
// response into result, retrying transient failures with linear backoff.
func (c *Client) doGet(ctx context.Context, path string, query url.Values, result interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	backoff := defaultRetryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("yahoo: build request: %w", err)
		}
		if c.apiKey != "" {
			httpReq.Header.Set("x-api-key", c.apiKey)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("yahoo: read response: %w", readErr)
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				lastErr = fmt.Errorf("yahoo: http status %d: %s", resp.StatusCode, string(body))
			default:
				if result != nil {
					if err := json.Unmarshal(body, result); err != nil {
						return fmt.Errorf("yahoo: decode response: %w", err)
					}
				}
				return nil
			}
		}

		if attempt < c.maxRetries {
			c.logger.Printf("[yahoo] attempt %d/%d failed: %v", attempt+1, c.maxRetries+1, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff += defaultRetryBackoffBase
		}
	}
	return lastErr
}

func (c *Client) regionQuery() url.Values {
	q := url.Values{}
	q.Set("region", c.region)
	q.Set("lang", c.lang)
	return q
}
