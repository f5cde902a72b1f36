// Package github implements the tracker.Tracker capability set against the
// GitHub Issues REST API.
package github

import (
	"net/http"
	"strings"
	"time"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/httpx"
)

const (
	defaultBaseURL        = "https://api.github.com"
	defaultTimeout        = 30 * time.Second
	defaultMaxRetries     = 3
	defaultInitialBackoff = 2 * time.Second
	providerName          = "github-tracker"

	// maxPaginationPages bounds how many pages SearchIssuesByLabel will
	// walk, to avoid unbounded work against a misbehaving server.
	maxPaginationPages = 10

	// maxResponseSize bounds how much of any single response body is read
	// into memory.
	maxResponseSize = 10 * 1024 * 1024

	// minCallInterval is the pacing floor WithRateLimit enforces between
	// tracker calls, independent of any retry backoff.
	minCallInterval = 250 * time.Millisecond
)

// Client talks to the GitHub Issues API on behalf of the reconciler.
type Client struct {
	token      string
	owner      string
	repo       string
	baseURL    string
	httpClient *http.Client
	retryConf  httpx.RetryConfig
	logger     httpx.Logger

	lastCallAt time.Time
}

// New creates a Client scoped to a single owner/repo.
func New(token, owner, repo string) *Client {
	return &Client{
		token:   token,
		owner:   owner,
		repo:    repo,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			// Disable redirects: a same-host pagination URL could otherwise
			// be redirected to an internal endpoint.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		retryConf: httpx.RetryConfig{
			MaxRetries:     defaultMaxRetries,
			InitialBackoff: defaultInitialBackoff,
			MaxBackoff:     32 * time.Second,
			Multiplier:     2.0,
		},
		logger: httpx.NewDefaultLogger(httpx.LogLevelInfo, httpx.LogFormatHuman, true),
	}
}

// SetBaseURL overrides the API base URL, for GitHub Enterprise or testing.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// SetLogger overrides the request/response logger.
func (c *Client) SetLogger(l httpx.Logger) {
	c.logger = l
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
}
