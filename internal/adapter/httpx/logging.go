package httpx

import (
	"fmt"
	"regexp"
)

// MaxLoggedBodyLength bounds how much of a tracker response body ever
// reaches the logs, to avoid leaking finding evidence into log aggregators.
const MaxLoggedBodyLength = 200

// TruncateForLogging safely truncates a response body for logging purposes.
func TruncateForLogging(body string) string {
	if len(body) <= MaxLoggedBodyLength {
		return body
	}
	return body[:MaxLoggedBodyLength] + fmt.Sprintf("... [truncated, total length=%d bytes]", len(body))
}

var longTokenPattern = regexp.MustCompile(`[a-zA-Z0-9_-]{32,}`)

// RedactURLSecrets scrubs long opaque tokens (API keys, bearer tokens) out
// of a string before it is logged, so a crashed-run error message never
// leaks the tracker credential.
func RedactURLSecrets(s string) string {
	return longTokenPattern.ReplaceAllString(s, "[REDACTED]")
}
