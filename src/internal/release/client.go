// Package release fetches update metadata over HTTP: the Node.js
// release schedule and the latest published releases of the backend
// tools and of this application. Best effort by design: no retries and
// no caching live at this layer.
package release

import (
	"net/http"
	"time"
)

// DefaultScheduleURL is the upstream Node.js release schedule.
const DefaultScheduleURL = "https://raw.githubusercontent.com/nodejs/Release/main/schedule.json"

// DefaultAPIBaseURL is the GitHub REST API root used for release lookups.
const DefaultAPIBaseURL = "https://api.github.com"

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPClient is the minimal client surface, replaceable in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs release and schedule lookups.
type Client struct {
	scheduleURL string
	apiBaseURL  string
	httpClient  HTTPClient
}

// Option configures a Client.
type Option func(*Client)

// WithScheduleURL overrides the release schedule endpoint.
func WithScheduleURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.scheduleURL = url
		}
	}
}

// WithAPIBaseURL overrides the GitHub API root.
func WithAPIBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.apiBaseURL = url
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// NewClient creates a release client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		scheduleURL: DefaultScheduleURL,
		apiBaseURL:  DefaultAPIBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
