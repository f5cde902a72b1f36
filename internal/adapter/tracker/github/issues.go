package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	adaptertracker "github.com/vibecheck-dev/vibecheck/internal/adapter/tracker"
	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// WithRateLimit enforces the minimum inter-call pacing delay before running
// op. Retry-with-backoff on transient failures happens one level down,
// inside every doRequest call op makes; this is the outer pacing discipline
// that applies even to calls that succeed on the first attempt.
func (c *Client) WithRateLimit(ctx context.Context, op func(ctx context.Context) error) error {
	if !c.lastCallAt.IsZero() {
		elapsed := time.Since(c.lastCallAt)
		if elapsed < minCallInterval {
			select {
			case <-time.After(minCallInterval - elapsed):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	c.lastCallAt = time.Now()
	return op(ctx)
}

type ghLabel struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// EnsureLabels idempotently creates each label definition; an existing
// label (422) is treated as success.
func (c *Client) EnsureLabels(ctx context.Context, specs []adaptertracker.LabelSpec) error {
	if err := validatePathSegment(c.owner, "owner"); err != nil {
		return err
	}
	if err := validatePathSegment(c.repo, "repo"); err != nil {
		return err
	}

	for _, spec := range specs {
		apiURL := fmt.Sprintf("%s/repos/%s/%s/labels", c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo))
		payload, err := json.Marshal(ghLabel{Name: spec.Name, Color: spec.Color, Description: spec.Description})
		if err != nil {
			return err
		}
		_, err = c.doRequest(ctx, "POST", apiURL, payload)
		if err != nil {
			if isAlreadyExists(err) {
				continue
			}
			return fmt.Errorf("ensure label %q: %w", spec.Name, err)
		}
	}
	return nil
}

func isAlreadyExists(err error) bool {
	return strings.Contains(err.Error(), "422") || strings.Contains(strings.ToLower(err.Error()), "already_exists")
}

type ghIssue struct {
	Number      int       `json:"number"`
	State       string    `json:"state"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Labels      []ghLabel `json:"labels"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

// SearchIssuesByLabel returns every issue (any state) bearing all given
// labels, excluding pull requests (GitHub's issues endpoint returns both).
func (c *Client) SearchIssuesByLabel(ctx context.Context, labels []string) ([]domain.ExistingIssue, error) {
	if err := validatePathSegment(c.owner, "owner"); err != nil {
		return nil, err
	}
	if err := validatePathSegment(c.repo, "repo"); err != nil {
		return nil, err
	}

	apiURL := fmt.Sprintf("%s/repos/%s/%s/issues?labels=%s&state=all&per_page=100",
		c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), url.QueryEscape(strings.Join(labels, ",")))

	var out []domain.ExistingIssue
	for page := 0; apiURL != "" && page < maxPaginationPages; page++ {
		respBody, nextURL, err := c.doRequestWithPagination(ctx, "GET", apiURL, nil)
		if err != nil {
			return nil, err
		}

		var issues []ghIssue
		if err := json.Unmarshal(respBody, &issues); err != nil {
			return nil, fmt.Errorf("parse issues page: %w", err)
		}

		for _, gi := range issues {
			if gi.PullRequest != nil {
				continue
			}
			out = append(out, toExistingIssue(gi))
		}

		if nextURL != "" && !isValidPaginationURL(c.baseURL, nextURL) {
			return nil, fmt.Errorf("invalid pagination URL: host mismatch")
		}
		apiURL = nextURL
	}
	if apiURL != "" {
		return nil, fmt.Errorf("pagination limit reached (%d pages), more issues may exist", maxPaginationPages)
	}

	return out, nil
}

func toExistingIssue(gi ghIssue) domain.ExistingIssue {
	labelNames := make([]string, 0, len(gi.Labels))
	for _, l := range gi.Labels {
		labelNames = append(labelNames, l.Name)
	}

	meta := domain.IssueMetadata{}
	// A parse failure here is never fatal: per the error-handling design,
	// an issue with no recoverable metadata simply enters fallback matching.
	if fp, ok := adaptertracker.ParseFingerprintMarker(gi.Body); ok {
		meta.Fingerprint = fp
	}
	if run, ok := adaptertracker.ParseRunMetadataMarker(gi.Body); ok {
		meta.LastSeenRun = run
	}

	state := domain.IssueClosed
	if strings.EqualFold(gi.State, "open") {
		state = domain.IssueOpen
	}

	return domain.ExistingIssue{
		Number:   gi.Number,
		State:    state,
		Title:    gi.Title,
		Labels:   labelNames,
		Metadata: meta,
	}
}

// CreateIssue opens a new issue and returns its number.
func (c *Client) CreateIssue(ctx context.Context, input adaptertracker.IssueInput) (int, error) {
	if err := validatePathSegment(c.owner, "owner"); err != nil {
		return 0, err
	}
	if err := validatePathSegment(c.repo, "repo"); err != nil {
		return 0, err
	}

	apiURL := fmt.Sprintf("%s/repos/%s/%s/issues", c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo))
	payload, err := json.Marshal(struct {
		Title     string   `json:"title"`
		Body      string   `json:"body"`
		Labels    []string `json:"labels,omitempty"`
		Assignees []string `json:"assignees,omitempty"`
	}{Title: input.Title, Body: input.Body, Labels: input.Labels, Assignees: input.Assignees})
	if err != nil {
		return 0, err
	}

	respBody, err := c.doRequest(ctx, "POST", apiURL, payload)
	if err != nil {
		return 0, err
	}

	var created ghIssue
	if err := json.Unmarshal(respBody, &created); err != nil {
		return 0, fmt.Errorf("parse created issue: %w", err)
	}
	return created.Number, nil
}

// UpdateIssue patches the fields present on input.
func (c *Client) UpdateIssue(ctx context.Context, number int, input adaptertracker.IssueInput) error {
	if err := validatePathSegment(c.owner, "owner"); err != nil {
		return err
	}
	if err := validatePathSegment(c.repo, "repo"); err != nil {
		return err
	}
	if number <= 0 {
		return fmt.Errorf("invalid issue number: %d", number)
	}

	apiURL := fmt.Sprintf("%s/repos/%s/%s/issues/%d", c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), number)
	payload, err := json.Marshal(struct {
		Title     string   `json:"title,omitempty"`
		Body      string   `json:"body,omitempty"`
		Labels    []string `json:"labels,omitempty"`
		Assignees []string `json:"assignees,omitempty"`
	}{Title: input.Title, Body: input.Body, Labels: input.Labels, Assignees: input.Assignees})
	if err != nil {
		return err
	}

	_, err = c.doRequest(ctx, "PATCH", apiURL, payload)
	return err
}

// CloseIssue closes an issue, optionally leaving a closing comment first.
func (c *Client) CloseIssue(ctx context.Context, number int, comment string) error {
	if err := validatePathSegment(c.owner, "owner"); err != nil {
		return err
	}
	if err := validatePathSegment(c.repo, "repo"); err != nil {
		return err
	}
	if number <= 0 {
		return fmt.Errorf("invalid issue number: %d", number)
	}

	if comment != "" {
		if err := c.AddIssueComment(ctx, number, comment); err != nil {
			return err
		}
	}

	apiURL := fmt.Sprintf("%s/repos/%s/%s/issues/%d", c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), number)
	payload, err := json.Marshal(struct {
		State string `json:"state"`
	}{State: "closed"})
	if err != nil {
		return err
	}

	_, err = c.doRequest(ctx, "PATCH", apiURL, payload)
	return err
}

// AddIssueComment posts a new comment on an issue.
func (c *Client) AddIssueComment(ctx context.Context, number int, body string) error {
	if err := validatePathSegment(c.owner, "owner"); err != nil {
		return err
	}
	if err := validatePathSegment(c.repo, "repo"); err != nil {
		return err
	}
	if number <= 0 {
		return fmt.Errorf("invalid issue number: %d", number)
	}

	apiURL := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments", c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo), number)
	payload, err := json.Marshal(struct {
		Body string `json:"body"`
	}{Body: body})
	if err != nil {
		return err
	}

	_, err = c.doRequest(ctx, "POST", apiURL, payload)
	return err
}
