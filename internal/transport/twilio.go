// Package transport sends outbound text messages through the Twilio Messages API.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/moodline/internal/privacy"
)

const (
	DefaultBaseURL = "https://api.twilio.com"
	DefaultTimeout = 30 * time.Second

	// expectedTokenLength is the length of a real Twilio auth token.
	expectedTokenLength = 32
)

// ErrMissingCredentials is returned when the account SID or auth token is empty.
var ErrMissingCredentials = errors.New("missing Twilio credentials")

// Config holds the Twilio account settings.
type Config struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	Timeout    time.Duration
}

// Message is one outbound text. From and To are already formatted for the channel.
type Message struct {
	From           string
	To             string
	Body           string
	StatusCallback string
}

// SendResult describes an accepted message.
type SendResult struct {
	StatusCode   int
	SID          string
	Status       string
	ErrorCode    *int
	ErrorMessage string
}

// Client is a Twilio Messages API client. Retries are disabled.
type Client struct {
	client     *resty.Client
	accountSID string
	authToken  string
}

type sendResponse struct {
	SID          string  `json:"sid"`
	Status       string  `json:"status"`
	ErrorCode    *int    `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
}

type errorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// New creates a Twilio client.
func New(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{
		client:     c,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
	}
}

// HasCredentials reports whether both the account SID and auth token are set.
func (c *Client) HasCredentials() bool {
	return c.accountSID != "" && c.authToken != ""
}

// AuthTokenLengthOK reports whether the auth token has the expected length.
func (c *Client) AuthTokenLengthOK() bool {
	return len(c.authToken) == expectedTokenLength
}

// AuthTokenLength returns the configured token length for diagnostics.
func (c *Client) AuthTokenLength() int {
	return len(c.authToken)
}

// Send makes a single attempt to deliver msg. A non-2xx answer is returned as *APIError.
func (c *Client) Send(ctx context.Context, msg Message) (*SendResult, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingCredentials
	}

	form := map[string]string{
		"From": msg.From,
		"To":   msg.To,
		"Body": msg.Body,
	}
	if msg.StatusCallback != "" {
		form["StatusCallback"] = msg.StatusCallback
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("sid", c.accountSID).
		SetFormData(form).
		Post("/2010-04-01/Accounts/{sid}/Messages.json")
	if err != nil {
		return nil, fmt.Errorf("twilio request: %w", err)
	}

	log.Debug().
		Int("status", resp.StatusCode()).
		Str("from", privacy.MaskAddress(msg.From)).
		Str("to", privacy.MaskAddress(msg.To)).
		Msg("Twilio response")

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Raw: resp.String()}
		var body errorResponse
		if err := json.Unmarshal(resp.Body(), &body); err == nil {
			apiErr.Code = body.Code
			apiErr.Message = body.Message
		}
		return nil, apiErr
	}

	var body sendResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode twilio response: %w", err)
	}
	result := &SendResult{
		StatusCode: resp.StatusCode(),
		SID:        body.SID,
		Status:     body.Status,
		ErrorCode:  body.ErrorCode,
	}
	if body.ErrorMessage != nil {
		result.ErrorMessage = *body.ErrorMessage
	}
	return result, nil
}
