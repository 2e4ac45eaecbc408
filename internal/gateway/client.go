// Package gateway is the HTTP client for the task repository backend. It
// owns request shaping, auth header injection, and error surfacing; all
// task semantics live above it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aximo-works/boardwatch/internal/sanitize"
	"github.com/aximo-works/boardwatch/internal/task"
)

// Client talks to the backend task API.
type Client struct {
	baseURL     string
	token       string
	tokenHeader string
	httpClient  *http.Client
	logger      logrus.FieldLogger
}

// New builds a client for the backend at baseURL. token may be empty, in
// which case no auth header is sent.
func New(baseURL, token, tokenHeader string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		tokenHeader: tokenHeader,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// ListTasks fetches every task on the board.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateStatus moves a task to the given status.
func (c *Client) UpdateStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/status", body, nil)
}

// Approve marks a pending task as approved.
func (c *Client) Approve(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/approve", nil, nil)
}

// Reject rejects a pending task. reason is optional.
func (c *Client) Reject(ctx context.Context, id string, reason *string) error {
	body := map[string]*string{"reason": reason}
	return c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/reject", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(c.tokenHeader, c.token)
	}

	c.logger.WithFields(logrus.Fields{"method": method, "path": path}).Debug("backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// statusError builds the user-facing error for a non-2xx response. The body
// is sanitized and capped so hostile upstream text cannot mangle a terminal.
func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	snippet := sanitize.Snippet(string(data))
	if snippet == "" {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
}
