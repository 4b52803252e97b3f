// Package transport is the implementation of the transport client component.
// The client posts one JSON request body to one URL and hands back the parsed
// JSON response, with no retries and no per-endpoint recovery.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrSendFailure is returned when a request cannot be built or sent.
	ErrSendFailure = errors.New("request send failed")
	// ErrNotJSON is returned when a response body cannot be parsed as JSON.
	ErrNotJSON = errors.New("response body is not valid JSON")
)

// Client posts JSON request bodies and parses JSON responses.
type Client struct {
	timeout time.Duration

	log *slog.Logger
}

type options struct {
	timeout time.Duration
}

// Options represents an optional function to override Client default values.
type Options func(*options)

// WithTimeout sets a timeout on every request sent by the client.
// The default is no timeout: a hung call blocks until its context is canceled.
func WithTimeout(d time.Duration) Options {
	return func(o *options) {
		o.timeout = d
	}
}

// New returns a new Client.
func New(l *slog.Logger, args ...Options) Client {
	opts := options{}
	for _, opt := range args {
		opt(&opts)
	}

	return Client{timeout: opts.timeout, log: l}
}

// Send posts body JSON-encoded to url and returns the parsed JSON response body.
//
// The response status code is not checked: error responses from the checked
// services are still JSON and still worth comparing, so whatever comes back
// is parsed. A response body starting with a Unicode byte-order mark is
// decoded according to it before parsing.
func (c Client) Send(ctx context.Context, url string, body any) (v any, err error) {
	c.log.Info("Sending request", "url", url)

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("could not encode request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Join(ErrSendFailure, fmt.Errorf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: c.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrSendFailure, fmt.Errorf("failed to send HTTP request: %v", err))
	}
	defer resp.Body.Close()

	c.log.Debug("Received response", "url", url, "status", resp.StatusCode)

	raw, err := io.ReadAll(transform.NewReader(resp.Body, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, errors.Join(ErrSendFailure, fmt.Errorf("failed to read response body: %v", err))
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Join(ErrNotJSON, fmt.Errorf("%s: %v", url, err))
	}
	return v, nil
}
