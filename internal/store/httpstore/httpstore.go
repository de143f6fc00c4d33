// Package httpstore reads the todo collection from a remote JSON endpoint.
// It only ever issues GET; the app never writes back.
package httpstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/store/schema"
)

const maxBodyBytes = 4 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %s", e.Status)
}

// Client fetches todos from Endpoint.
type Client struct {
	Endpoint  string
	UserAgent string
	HTTP      *http.Client
	Logger    *log.Logger
}

// New returns a client with its own http.Client bound to timeout.
func New(endpoint string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		Endpoint:  endpoint,
		UserAgent: "todos",
		HTTP:      &http.Client{Timeout: timeout},
		Logger:    logger,
	}
}

// Fetch issues one GET and decodes the body as a todo array.
func (c *Client) Fetch(ctx context.Context) ([]model.Todo, error) {
	start := time.Now()
	todos, status, err := c.fetch(ctx)
	if err != nil {
		c.logger().Error("fetch todos failed", "endpoint", c.Endpoint, "status", status, "err", err)
		return nil, err
	}
	c.logger().Debug("fetched todos", "endpoint", c.Endpoint, "status", status,
		"count", len(todos), "took", time.Since(start).Round(time.Millisecond))
	return todos, nil
}

func (c *Client) fetch(ctx context.Context) ([]model.Todo, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("get %s: %w", c.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, resp.StatusCode, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, resp.StatusCode, fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
	}

	todos, err := schema.Decode(body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return todos, resp.StatusCode, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
