package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/conn-castle/hinstaller/internal/messages"
)

// DefaultURL is the manifest endpoint used when no override is configured.
const DefaultURL = "https://installer.client.example/manifest/latest.json"

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxElapsed = 15 * time.Second
	userAgent         = "hinstaller"
)

// HTTPClient is the subset of *http.Client the fetcher needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-200 response from the manifest endpoint.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(messages.ManifestStatusFmt, e.Status)
}

// IsStatusError reports whether err carries a manifest HTTP status failure.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the manifest endpoint.
func WithURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.url = url
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithBackOff replaces the retry policy factory.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		if newBackOff != nil {
			c.newBackOff = newBackOff
		}
	}
}

// Client fetches the latest VersionManifest over HTTP.
type Client struct {
	url        string
	httpClient HTTPClient
	newBackOff func() backoff.BackOff
}

// NewClient returns a Client for the default endpoint with the given options applied.
func NewClient(opts ...Option) *Client {
	c := &Client{
		url:        DefaultURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxElapsedTime = defaultMaxElapsed
	b.Clock = backoff.SystemClock
	return b
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.url
}

// Fetch retrieves the latest manifest, retrying transient network and 5xx failures.
func (c *Client) Fetch(ctx context.Context) (*VersionManifest, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var result *VersionManifest
	operation := func() error {
		m, err := c.fetchOnce(ctx)
		if err != nil {
			if retryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		result = m
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithContext(c.newBackOff(), ctx)); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) fetchOnce(ctx context.Context) (*VersionManifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestCreateRequestErrFmt, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestFetchErrFmt, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var m VersionManifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf(messages.ManifestDecodeErrFmt, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *VersionManifest) validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New(messages.ManifestMissingID)
	}
	if strings.TrimSpace(m.URL) == "" {
		return fmt.Errorf(messages.ManifestMissingURL, m.ID)
	}
	return nil
}

// retryable reports whether a fetch failure is worth another attempt.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 && se.StatusCode <= 599
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
