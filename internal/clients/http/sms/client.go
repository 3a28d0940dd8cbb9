package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to an Africa's Talking compatible SMS gateway. Order
// lifecycle alerts are the only traffic it carries.
type Client struct {
	baseURL    string
	apiKey     string
	username   string
	senderID   string
	httpClient *http.Client
}

// Option configures client construction.
type Option func(*Client)

// WithSenderID sets the registered alphanumeric sender id.
func WithSenderID(senderID string) Option {
	return func(c *Client) { c.senderID = strings.TrimSpace(senderID) }
}

// WithHTTPClient overrides the underlying HTTP client, used in tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient instantiates the gateway client with sane defaults.
func NewClient(baseURL, apiKey, username string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("sms gateway base URL is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("sms gateway api key is required")
	}
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("sms gateway username is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		username:   username,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type messageResponse struct {
	SMSMessageData struct {
		Recipients []struct {
			Number     string `json:"number"`
			Status     string `json:"status"`
			StatusCode int    `json:"statusCode"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// Send pushes one message to a single recipient.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if c == nil || c.httpClient == nil {
		return errors.New("sms client not configured")
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errors.New("recipient phone is required")
	}
	if strings.TrimSpace(message) == "" {
		return errors.New("message body is required")
	}

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", phone)
	form.Set("message", message)
	if c.senderID != "" {
		form.Set("from", c.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/version1/messaging", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call sms gateway: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated, resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.New("sms gateway rejected the api key")
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("sms gateway error: %s", resp.Status)
	default:
		return fmt.Errorf("sms gateway unexpected status: %s", resp.Status)
	}

	var payload messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode sms response: %w", err)
	}
	if len(payload.SMSMessageData.Recipients) == 0 {
		return errors.New("sms gateway accepted no recipients")
	}
	for _, recipient := range payload.SMSMessageData.Recipients {
		// 100..102 cover Processed, Sent, and Queued.
		if recipient.StatusCode < 100 || recipient.StatusCode > 102 {
			return fmt.Errorf("sms delivery to %s failed: %s", recipient.Number, recipient.Status)
		}
	}
	return nil
}
