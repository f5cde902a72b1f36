package github

import (
	"fmt"
	"net/url"
	"regexp"
)

// pathSegmentRegex whitelists safe characters for owner/repo path segments.
var pathSegmentRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

var pathTraversalPattern = regexp.MustCompile(`\.\.`)

// validatePathSegment rejects owner/repo values that could inject extra
// path segments or attempt traversal.
func validatePathSegment(value, name string) error {
	if value == "" {
		return fmt.Errorf("invalid %s: must not be empty", name)
	}
	if pathTraversalPattern.MatchString(value) {
		return fmt.Errorf("invalid %s: must not contain '..'", name)
	}
	if !pathSegmentRegex.MatchString(value) {
		return fmt.Errorf("invalid %s: must contain only alphanumeric characters, hyphens, underscores, and dots (not leading)", name)
	}
	return nil
}

// isValidPaginationURL requires a followed pagination link to match the
// configured base URL's scheme and host, preventing SSRF via a malicious
// Link header.
func isValidPaginationURL(baseURL, nextURL string) bool {
	next, err := url.Parse(nextURL)
	if err != nil {
		return false
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return next.Scheme == base.Scheme && next.Host == base.Host
}
