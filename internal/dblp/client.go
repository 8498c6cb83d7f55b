// Package dblp provides a client for the DBLP bibliographic metadata
// service. Authors and publications are addressed by opaque keys and
// loaded lazily on first field access; search calls resolve matching
// records concurrently.
package dblp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public DBLP service root.
	DefaultBaseURL = "https://dblp.uni-trier.de/"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxWorkers caps concurrent in-flight requests per search call.
	DefaultMaxWorkers = 50

	// DefaultPageSize is the publication search page size.
	DefaultPageSize = 1000

	authorSearchPath = "search/author/api"
	publSearchPath   = "search/publ/api"
	personPathFmt    = "pers/xx/%s/%s"
	recordPathFmt    = "rec/bibtex/%s.xml"
)

// Client is an HTTP client for the DBLP API. The zero options produce
// a client against the public service with no rate limiting.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxWorkers int
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom service root (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header on outgoing requests.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxWorkers sets the concurrency cap for search drivers.
func WithMaxWorkers(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithRateLimit throttles outgoing requests to the given requests per
// second. The client applies no throttling unless this is set.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithLogger sets the structured logger. The default discards all logs.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a DBLP API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		maxWorkers: DefaultMaxWorkers,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET against a path under the service root.
func (c *Client) get(ctx context.Context, path string, params url.Values) (string, []byte, error) {
	u := strings.TrimSuffix(c.baseURL, "/") + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return c.getURL(ctx, u)
}

// getURL performs a GET against an absolute URL, following redirects,
// and returns the final URL after redirects together with the body.
func (c *Client) getURL(ctx context.Context, rawURL string) (string, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	finalURL := resp.Request.URL.String()
	if resp.StatusCode >= 400 {
		return finalURL, nil, &APIError{StatusCode: resp.StatusCode, URL: finalURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return finalURL, nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	c.logger.Debug().
		Str("url", finalURL).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("GET")

	return finalURL, body, nil
}
