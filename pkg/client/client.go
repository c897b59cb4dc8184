package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-accountform/pkg/registration"
)

// RegisterPath is the backend route that accepts new accounts.
const RegisterPath = "/api/users/register"

// ErrTransport wraps failures where no HTTP response was received.
var ErrTransport = errors.New("client: transport failure")

// maxDrain bounds how much of a response body is read before closing it.
const maxDrain = 64 << 10

// StatusError reports a response outside the 2xx range. It unwraps to
// registration.ErrRejected.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return "client: unexpected status " + e.Status
	}
	return "client: unexpected status " + strconv.Itoa(e.StatusCode)
}

// Unwrap lets callers match any status failure with registration.ErrRejected.
func (e *StatusError) Unwrap() error {
	return registration.ErrRejected
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each submission. Zero keeps whatever deadline the caller
// context and transport carry.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger attaches a logger for request outcomes.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client posts registrations to the backend. It implements
// registration.Submitter and never retries.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	logger   *zap.SugaredLogger
}

var _ registration.Submitter = (*Client)(nil)

// New validates endpoint and builds a Client.
func New(endpoint string, options ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, errors.New("client: endpoint is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("client: parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("client: endpoint %q must use http or https", trimmed)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("client: endpoint %q has no host", trimmed)
	}

	c := &Client{
		endpoint: parsed.String(),
		http:     http.DefaultClient,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Endpoint builds the registration URL for a backend reachable at host:port.
func Endpoint(scheme, host string, port int) string {
	if scheme == "" {
		scheme = "http"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   RegisterPath,
	}
	return u.String()
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.endpoint
}

// Submit posts data as a JSON body. Any 2xx status is success; other statuses
// return *StatusError and transport failures wrap ErrTransport.
func (c *Client) Submit(ctx context.Context, data registration.FormData) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("client: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorw("registration request failed", "endpoint", c.endpoint, "err", err)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warnw("registration rejected by backend", "endpoint", c.endpoint, "status", resp.StatusCode)
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	c.logger.Debugw("registration accepted by backend", "endpoint", c.endpoint, "status", resp.StatusCode)
	return nil
}
