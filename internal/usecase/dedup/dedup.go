// Package dedup collapses findings that share a fingerprint into one
// record per fingerprint, unioning their locations.
package dedup

import (
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

// DemoLabel is appended to a finding's label set when any of its locations
// fall under a test-fixture path.
const DemoLabel = "demo"

// testFixtureMarkers are path substrings that mark a location as belonging
// to test fixtures rather than production source.
var testFixtureMarkers = []string{
	"/testdata/", "/fixtures/", "/__fixtures__/", "/test-fixtures/",
	"/demo/", "/examples/",
}

// Dedup groups findings by fingerprint, preserving the input order of first
// occurrence. Each group collapses to one finding carrying the first
// member's title/message/severity/etc, with locations being the
// concatenation of every member's locations, deduplicated by (path,
// startLine).
func Dedup(findings []domain.Finding) []domain.Finding {
	order := make([]string, 0, len(findings))
	groups := make(map[string][]domain.Finding, len(findings))

	for _, f := range findings {
		fp := f.Fingerprint()
		if _, ok := groups[fp]; !ok {
			order = append(order, fp)
		}
		groups[fp] = append(groups[fp], f)
	}

	out := make([]domain.Finding, 0, len(order))
	for _, fp := range order {
		out = append(out, mergeGroup(groups[fp]))
	}
	return out
}

func mergeGroup(group []domain.Finding) domain.Finding {
	merged := group[0]

	seen := make(map[locationKey]bool)
	var locations []domain.Location
	for _, f := range group {
		for _, loc := range f.Locations {
			key := locationKey{loc.Path, loc.StartLine}
			if seen[key] {
				continue
			}
			seen[key] = true
			locations = append(locations, loc)
		}
	}
	merged.Locations = locations

	return merged
}

type locationKey struct {
	path      string
	startLine int
}

// IsTestFixturePath reports whether path falls under a recognized
// test-fixture directory.
func IsTestFixturePath(path string) bool {
	lower := "/" + strings.ToLower(strings.TrimPrefix(path, "/"))
	for _, marker := range testFixtureMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// HasDemoLocation reports whether any of a finding's locations are under a
// test-fixture path.
func HasDemoLocation(f domain.Finding) bool {
	for _, loc := range f.Locations {
		if IsTestFixturePath(loc.Path) {
			return true
		}
	}
	return false
}
