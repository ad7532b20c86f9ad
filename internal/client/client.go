package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dreamware/clipd/internal/api"
	"github.com/dreamware/clipd/internal/clipboard"
)

// ErrNotFound is returned when the server reports an unknown clipboard ID
var ErrNotFound = errors.New("clipboard not found")

// Client wraps the clipd REST API: create, read, update, delete, and
// health check. All methods take a context for cancellation; the underlying
// HTTP client applies its own request timeout on top.
type Client struct {
	base string
}

// New creates a client for the clipd server at baseURL.
// Trailing slashes are trimmed so endpoint paths join cleanly.
func New(baseURL string) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the server address this client talks to.
func (c *Client) BaseURL() string {
	return c.base
}

// ShareURL returns the browser-facing URL for a clipboard ID.
func (c *Client) ShareURL(id string) string {
	return c.base + "/c/" + url.PathEscape(id)
}

// Create creates a new clipboard with the given initial content and
// returns the stored record, including its server-assigned ID.
func (c *Client) Create(ctx context.Context, content string) (*clipboard.Clipboard, error) {
	var clip clipboard.Clipboard
	err := api.PostJSON(ctx, c.base+"/api/clips", api.CreateRequest{Content: content}, &clip)
	if err != nil {
		return nil, mapStatusError(err)
	}
	return &clip, nil
}

// Get retrieves a clipboard by ID.
// Returns ErrNotFound if the server doesn't know the ID.
func (c *Client) Get(ctx context.Context, id string) (*clipboard.Clipboard, error) {
	var clip clipboard.Clipboard
	if err := api.GetJSON(ctx, c.clipURL(id), &clip); err != nil {
		return nil, mapStatusError(err)
	}
	return &clip, nil
}

// Update replaces a clipboard's content and returns the updated record.
// Returns ErrNotFound if the server doesn't know the ID.
func (c *Client) Update(ctx context.Context, id, content string) (*clipboard.Clipboard, error) {
	var clip clipboard.Clipboard
	err := api.PutJSON(ctx, c.clipURL(id), api.UpdateRequest{Content: content}, &clip)
	if err != nil {
		return nil, mapStatusError(err)
	}
	return &clip, nil
}

// Delete removes a clipboard. Deleting an unknown ID succeeds.
func (c *Client) Delete(ctx context.Context, id string) error {
	return mapStatusError(api.Delete(ctx, c.clipURL(id)))
}

// List returns summaries of all clipboards on the server.
func (c *Client) List(ctx context.Context) ([]clipboard.Summary, error) {
	var resp api.ListResponse
	if err := api.GetJSON(ctx, c.base+"/api/clips", &resp); err != nil {
		return nil, mapStatusError(err)
	}
	return resp.Clips, nil
}

// Health checks the server's /health endpoint.
// A nil error means the server is reachable and reporting healthy.
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	return api.GetJSON(ctx, c.base+"/health", &resp)
}

// CreateWithRetry creates a clipboard, retrying on failure to ride out
// server startup delays or transient network errors. It waits delay
// between attempts and gives up after attempts tries.
func (c *Client) CreateWithRetry(ctx context.Context, content string, attempts int, delay time.Duration) (*clipboard.Clipboard, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		clip, err := c.Create(ctx, content)
		if err == nil {
			return clip, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("create failed after %d attempts: %w", attempts, lastErr)
}

func (c *Client) clipURL(id string) string {
	return c.base + "/api/clips/" + url.PathEscape(id)
}

// mapStatusError converts a 404 StatusError into ErrNotFound so callers
// can use errors.Is instead of inspecting HTTP codes.
func mapStatusError(err error) error {
	if err == nil {
		return nil
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Code == 404 {
		return ErrNotFound
	}
	return err
}
