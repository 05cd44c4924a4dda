// internal/common/httpclient/client.go
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"adobe-license-monitor/internal/common/logger"
	"adobe-license-monitor/internal/common/metrics"
)

// SleepFunc blocks for the given duration. Injectable so tests can observe
// retry delays without waiting them out.
type SleepFunc func(time.Duration)

// Client is a retrying JSON HTTP client for the User Management API.
// Retries apply only to rate-limit and gateway statuses; transport errors and
// any other non-200 abort immediately.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	baseDelay   time.Duration
	maxJitter   time.Duration
	sleep       SleepFunc
	logger      logger.Logger
}

type Option func(*Client)

// WithSleep overrides the sleep function used between retries.
func WithSleep(sleep SleepFunc) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// WithTransport overrides the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

func NewClient(timeout time.Duration, maxAttempts int, baseDelay, maxJitter time.Duration, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxJitter:   maxJitter,
		sleep:       time.Sleep,
		logger:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatus reports whether a status code warrants another attempt.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// GetJSON issues a GET and decodes a 200 response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.baseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0 // jitter added on top, bounded by maxJitter
	bo.MaxInterval = time.Hour
	bo.MaxElapsedTime = 0
	bo.Reset()

	var lastStatus int
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		c.logger.Info("calling GET", map[string]interface{}{
			"url":     url,
			"attempt": attempt,
		})

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to execute request: %w", err)
		}

		metrics.AdobeAPIRequests.WithLabelValues(statusClass(resp.StatusCode)).Inc()

		if resp.StatusCode == http.StatusOK {
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil
		}

		if !retryableStatus(resp.StatusCode) {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("unexpected HTTP status %d: %s", resp.StatusCode, string(body))
		}

		lastStatus = resp.StatusCode
		delay := c.retryDelay(resp, bo)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		c.logger.Warn("rate limited or gateway error", map[string]interface{}{
			"status":  resp.StatusCode,
			"attempt": attempt,
			"delay":   delay.String(),
		})

		if attempt < c.maxAttempts {
			metrics.AdobeAPIRetries.Inc()
			c.sleep(delay)
		}
	}

	return fmt.Errorf("maximum retries reached after %d attempts (last status %d)", c.maxAttempts, lastStatus)
}

// retryDelay honors Retry-After (integer seconds) when present, otherwise
// uses exponential backoff plus random jitter.
func (c *Client) retryDelay(resp *http.Response, bo *backoff.ExponentialBackOff) time.Duration {
	next := bo.NextBackOff()

	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}

	if c.maxJitter > 0 {
		next += time.Duration(rand.Int63n(int64(c.maxJitter)))
	}
	return next
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
