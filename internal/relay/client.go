package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 120 * time.Second

var (
	ErrMissingReply   = errors.New("webhook response is missing the 'reply' key")
	ErrMalformedReply = errors.New("failed to decode JSON response from the webhook")
)

// UpstreamError is a failed call to the webhook. Timeout is set when the
// call exceeded its deadline.
type UpstreamError struct {
	Timeout bool
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Timeout {
		return "the request to the webhook timed out"
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Envelope is the body posted to the webhook.
type Envelope struct {
	UserMessage string `json:"user_message"`
	SessionID   string `json:"session_id"`
	Username    string `json:"username"`
}

type Client struct {
	HTTP *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{HTTP: &http.Client{Timeout: timeout}}
}

// Post sends env to url and returns the "reply" field of the response. A
// string reply is returned as is; any other JSON value as its JSON text.
func (c *Client) Post(ctx context.Context, url string, env Envelope) (string, error) {
	if c.HTTP == nil {
		return "", errors.New("relay: http client is nil")
	}

	b, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", &UpstreamError{Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &UpstreamError{Err: fmt.Errorf("webhook returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(snippet)))}
	}

	var decoded map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if isTimeout(err) {
			return "", &UpstreamError{Timeout: true, Err: err}
		}
		return "", &UpstreamError{Err: fmt.Errorf("%w: %v", ErrMalformedReply, err)}
	}
	raw, ok := decoded["reply"]
	if !ok {
		return "", ErrMissingReply
	}

	var reply string
	if err := json.Unmarshal(raw, &reply); err == nil {
		return reply, nil
	}
	return string(raw), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
