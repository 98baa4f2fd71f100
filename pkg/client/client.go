// Package client is a Go client for the moodline worker API.
package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"github.com/thebtf/moodline/pkg/models"
)

// DefaultBaseURL is the worker address used when none is given.
const DefaultBaseURL = "http://localhost:8090"

// DefaultTimeout bounds every request. Send-prompt and test-inbound wait on
// the worker's own outbound calls.
const DefaultTimeout = 90 * time.Second

// StatusError is a non-2xx answer from the worker.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("worker returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("worker returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to a running worker.
type Client struct {
	http *resty.Client
}

// New creates a Client. An empty baseURL means DefaultBaseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	return &Client{http: c}
}

// SendPrompt asks the worker to send the check-in question. On a transport
// failure the decoded response is returned alongside the error so callers
// can show the operator message.
func (c *Client) SendPrompt(ctx context.Context, req models.SendPromptRequest) (*models.SendPromptResponse, error) {
	var out models.SendPromptResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post("/api/sms/send-prompt")
	if err != nil {
		return nil, fmt.Errorf("send prompt: %w", err)
	}
	if resp.IsError() {
		msg := out.Message
		if msg == "" {
			msg = out.Error
		}
		return &out, &StatusError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return &out, nil
}

// TestInbound simulates an inbound message. No confirmation is sent.
func (c *Client) TestInbound(ctx context.Context, req models.TestInboundRequest) (*models.TestInboundResponse, error) {
	var out models.TestInboundResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post("/api/sms/test-inbound")
	if err != nil {
		return nil, fmt.Errorf("test inbound: %w", err)
	}
	if resp.IsError() {
		return &out, &StatusError{StatusCode: resp.StatusCode(), Message: out.Error}
	}
	return &out, nil
}

// ListEntries returns entries in [from, to). Zero bounds are open and a
// zero limit uses the worker default.
func (c *Client) ListEntries(ctx context.Context, q models.EntryQuery) (*models.EntriesResponse, error) {
	params := map[string]string{"order": "desc"}
	if q.Ascending {
		params["order"] = "asc"
	}
	if !q.From.IsZero() {
		params["from"] = q.From.Format(time.RFC3339)
	}
	if !q.To.IsZero() {
		params["to"] = q.To.Format(time.RFC3339)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}

	var out models.EntriesResponse
	if err := c.get(ctx, "/api/entries", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Daily returns one local day of entries. An empty date means today.
func (c *Client) Daily(ctx context.Context, date string) (*models.EntriesResponse, error) {
	params := map[string]string{}
	if date != "" {
		params["date"] = date
	}
	var out models.EntriesResponse
	if err := c.get(ctx, "/api/entries/daily", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Weekly returns seven local days from start. An empty start means the
// last seven days.
func (c *Client) Weekly(ctx context.Context, start string) (*models.WeeklyResponse, error) {
	params := map[string]string{}
	if start != "" {
		params["start"] = start
	}
	var out models.WeeklyResponse
	if err := c.get(ctx, "/api/entries/weekly", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Entry returns one entry. A missing entry is a *StatusError with code 404.
func (c *Client) Entry(ctx context.Context, id string) (*models.Entry, error) {
	var out models.Entry
	if err := c.get(ctx, "/api/entries/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health returns the worker health report.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var out models.HealthResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&out).
		Get("/api/health")
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	if resp.IsError() {
		return &out, &StatusError{StatusCode: resp.StatusCode(), Message: out.Status}
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	var apiErr struct {
		Error string `json:"error"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		SetError(&apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if resp.IsError() {
		return &StatusError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}
	return nil
}
