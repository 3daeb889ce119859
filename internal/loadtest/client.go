package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrStopped means the run is ending: the rate limiter could not hand out a
// token before ctx expires.
var ErrStopped = errors.New("loadtest: run is stopping")

// Client sends requests to the API and records every outcome in Stats.
type Client struct {
	base    string
	http    *http.Client
	stats   *Stats
	limiter *rate.Limiter
}

// NewClient targets host. A nil limiter means requests are not throttled.
func NewClient(host string, hc *http.Client, stats *Stats, limiter *rate.Limiter) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		base:    strings.TrimRight(host, "/"),
		http:    hc,
		stats:   stats,
		limiter: limiter,
	}
}

// Response is the part of an HTTP response the tasks look at.
type Response struct {
	Status int
	Body   []byte
}

// Do sends one request and records it under name. Non-2xx statuses count as
// failures but are not returned as errors. Requests cut short by ctx are not recorded.
func (c *Client) Do(ctx context.Context, method, path, name string, body any) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStopped, err)
		}
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", name, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", name, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == nil {
			c.stats.Record(name, time.Since(start), true)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		if ctx.Err() == nil {
			c.stats.Record(name, elapsed, true)
		}
		return nil, fmt.Errorf("%s: read body: %w", name, err)
	}

	c.stats.Record(name, elapsed, resp.StatusCode < 200 || resp.StatusCode > 299)
	return &Response{Status: resp.StatusCode, Body: data}, nil
}
