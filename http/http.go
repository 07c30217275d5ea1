// Package http retrieves structure files and database entries over HTTP.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultAttempts = 3
	DefaultDelay    = 5 * time.Second
	DefaultTimeout  = 120 * time.Second
)

// StatusError is returned when the server answers with a status outside 2xx. It is never retried.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP status code %d", e.URL, e.Code)
}

// TransientError is returned when every attempt failed before a response was received.
type TransientError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("GET %s: %d attempts failed: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Client downloads documents with a bounded number of attempts and a fixed delay between them.
type Client struct {
	Attempts int
	Delay    time.Duration
	HTTP     *http.Client
}

// NewClient returns a client with the given retry policy and per-request timeout.
func NewClient(attempts int, delay time.Duration, timeout time.Duration) *Client {
	return &Client{
		Attempts: attempts,
		Delay:    delay,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

// Get downloads url. Only transport failures are retried; a response with
// a status outside 2xx is returned at once as a *StatusError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.Delay):
			}
		}

		body, retry, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		if !retry {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	return nil, &TransientError{URL: url, Attempts: attempts, Err: lastErr}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept-Encoding", "text/html")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, false, &StatusError{URL: url, Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, true, err
	}

	return body, false, nil
}

// IsTransient returns true if err is the result of exhausted transport retries.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
