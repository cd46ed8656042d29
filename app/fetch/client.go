package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const maxBackoff = 30 * time.Second

// Client issues rate-limited, retried GET requests. All failures for
// expected network conditions come back as *Error; the orchestrator
// decides whether to skip, abort the source, or abort the run.
type Client struct {
	httpClient *http.Client
	limiter    *Limiter
	userAgent  string
	timeout    time.Duration
	maxRetries int
}

func NewClient(timeout time.Duration, maxRetries int, limiter *Limiter, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{},
		limiter:    limiter,
		userAgent:  userAgent,
		timeout:    timeout,
		maxRetries: maxRetries,
	}
}

// Fetch GETs the URL, retrying transport failures and bad statuses with
// exponential backoff up to the configured retry budget.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var (
		lastKind   Kind
		lastStatus int
		lastErr    error
	)

	attempts := c.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			delay := backoffDelay(attempt - 1)
			slog.Warn("Request failed, retrying", "url", url, "attempt", attempt, "delay", delay.String())
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		data, status, err := c.do(ctx, url)
		if err == nil && status < http.StatusBadRequest {
			return data, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastKind, lastStatus, lastErr = classify(status, err)
	}

	return nil, &Error{
		Kind:     lastKind,
		URL:      url,
		Status:   lastStatus,
		Attempts: attempts,
		Err:      lastErr,
	}
}

func (c *Client) do(ctx context.Context, url string) ([]byte, int, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, resp.StatusCode, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, resp.StatusCode, nil
}

func classify(status int, err error) (Kind, int, error) {
	if status >= http.StatusBadRequest {
		return KindHTTPStatus, status, fmt.Errorf("HTTP error: %d", status)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return KindTimeout, 0, err
	}

	return KindUnreachable, 0, err
}

func backoffDelay(retry int) time.Duration {
	delay := time.Duration(1<<uint(retry-1)) * time.Second
	if delay > maxBackoff {
		delay = maxBackoff
	}
	return delay
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
