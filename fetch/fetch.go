// Package fetch provides the single HTTP primitive the harvester uses: GET
// a URL and decode the body as JSON.
//
// Failures fall into two distinguishable classes, both non-fatal to
// callers: errs.ErrTransport for network errors and non-2xx statuses, and
// errs.ErrDecode for bodies that are not valid JSON.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sidracap/errs"
)

// DefaultTimeout bounds each request. The SIDRA values endpoint can take
// several seconds for long series.
const DefaultTimeout = 30 * time.Second

// Client fetches JSON documents over HTTP. The zero value is not usable;
// construct with NewClient.
type Client struct {
	http *http.Client
}

// NewClient creates a Client with the given per-request timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// JSON performs a GET against url and decodes the response body as JSON.
//
// Network failures, timeouts and non-2xx statuses return an error wrapping
// errs.ErrTransport; a body that does not parse as JSON returns an error
// wrapping errs.ErrDecode. The decoded value is whatever the body holds:
// a map, a list, or a scalar.
func (c *Client) JSON(ctx context.Context, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", errs.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, fmt.Errorf("%w: unexpected status %s for %s", errs.ErrTransport, resp.Status, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", errs.ErrTransport, err)
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrDecode, err)
	}

	return value, nil
}
