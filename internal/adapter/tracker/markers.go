package tracker

import (
	"fmt"
	"regexp"
)

// Markers are single-line HTML comments embedded at the end of every issue
// body. They are the only state this system carries between runs; nothing
// else survives outside the tracker.
const (
	fingerprintAnchor = "VIBECHECK_FINGERPRINT"
	runMetaAnchor     = "VIBECHECK_RUN"
)

var (
	fingerprintMarkerPattern = regexp.MustCompile(`<!--\s*` + fingerprintAnchor + `:\s*(\S+)\s*-->`)
	runMetaMarkerPattern     = regexp.MustCompile(`<!--\s*` + runMetaAnchor + `:\s*runNumber=(\d+)\s+timestamp=(\S+)\s*-->`)
)

// RenderFingerprintMarker embeds the full fingerprint in a single-line HTML
// comment.
func RenderFingerprintMarker(fingerprint string) string {
	return fmt.Sprintf("<!-- %s: %s -->", fingerprintAnchor, fingerprint)
}

// RenderRunMetadataMarker embeds the run number and an ISO-8601 UTC
// timestamp in a single-line HTML comment.
func RenderRunMetadataMarker(runNumber int, timestampISO8601 string) string {
	return fmt.Sprintf("<!-- %s: runNumber=%d timestamp=%s -->", runMetaAnchor, runNumber, timestampISO8601)
}

// ParseFingerprintMarker recovers the fingerprint embedded in an issue body,
// if present.
func ParseFingerprintMarker(body string) (fingerprint string, ok bool) {
	m := fingerprintMarkerPattern.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseRunMetadataMarker recovers the run number embedded in an issue body,
// if present. A parse failure here is never fatal: per §7, the issue falls
// back to "no metadata present" and enters fallback matching.
func ParseRunMetadataMarker(body string) (runNumber int, ok bool) {
	m := runMetaMarkerPattern.FindStringSubmatch(body)
	if m == nil {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
