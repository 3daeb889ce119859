// Package reportclient talks to the report sidecar over HTTP.
package reportclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"managerapi/internal/model"
)

// ErrUpstream marks any failure to get a usable answer from the sidecar.
var ErrUpstream = errors.New("report service unavailable")

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 512

// Client is an HTTP client for the report sidecar.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the sidecar at baseURL. Requests carry trace context
// through an otelhttp transport and are bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

// NewWithHTTPClient creates a client using a caller-provided *http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Report fetches the aggregate name -> contracts count report.
func (c *Client) Report(ctx context.Context) (model.Report, error) {
	var out model.Report
	if err := c.do(ctx, http.MethodGet, "/report", http.StatusOK, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = model.Report{}
	}
	return out, nil
}

// Snapshot asks the sidecar to write a report file to object storage.
func (c *Client) Snapshot(ctx context.Context) (*model.ReportFile, error) {
	var out model.ReportFile
	if err := c.do(ctx, http.MethodPost, "/reports", http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, want int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrUpstream, method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUpstream, path, err)
	}
	return nil
}
