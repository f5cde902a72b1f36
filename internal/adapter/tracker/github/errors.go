package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/httpx"
)

// mapHTTPError converts a >=400 response into an httpx.Error, detecting
// GitHub's 403-as-rate-limit convention in addition to the explicit 429.
func mapHTTPError(statusCode int, errMsg string, headers http.Header) error {
	retryable := statusCode >= 500 || statusCode == 429

	isRateLimited := statusCode == 429
	if statusCode == 403 {
		if headers.Get("X-RateLimit-Remaining") == "0" {
			isRateLimited = true
		}
		if strings.Contains(errMsg, "rate limit") || strings.Contains(errMsg, "API rate limit exceeded") {
			isRateLimited = true
		}
	}

	switch {
	case isRateLimited:
		return &httpx.Error{
			Type: httpx.ErrTypeRateLimit, Message: fmt.Sprintf("HTTP %d: %s", statusCode, errMsg),
			StatusCode: statusCode, Retryable: true, Provider: providerName,
		}
	case statusCode == 401 || statusCode == 403:
		return &httpx.Error{
			Type: httpx.ErrTypeAuthentication, Message: fmt.Sprintf("HTTP %d: %s", statusCode, errMsg),
			StatusCode: statusCode, Retryable: false, Provider: providerName,
		}
	case statusCode == 404:
		return &httpx.Error{
			Type: httpx.ErrTypeNotFound, Message: fmt.Sprintf("HTTP %d: %s", statusCode, errMsg),
			StatusCode: statusCode, Retryable: false, Provider: providerName,
		}
	case statusCode >= 500:
		return &httpx.Error{
			Type: httpx.ErrTypeServiceUnavailable, Message: fmt.Sprintf("HTTP %d: %s", statusCode, errMsg),
			StatusCode: statusCode, Retryable: true, Provider: providerName,
		}
	default:
		return &httpx.Error{
			Type: httpx.ErrTypeInvalidRequest, Message: fmt.Sprintf("HTTP %d: %s", statusCode, errMsg),
			StatusCode: statusCode, Retryable: retryable, Provider: providerName,
		}
	}
}

// classifyTransportError determines error type and retryability for
// transport-level (non-HTTP-status) failures.
func classifyTransportError(err error) (errType httpx.ErrorType, retryable bool) {
	if errors.Is(err, context.DeadlineExceeded) {
		return httpx.ErrTypeTimeout, true
	}
	if errors.Is(err, context.Canceled) {
		return httpx.ErrTypeUnknown, false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return httpx.ErrTypeTimeout, true
		}
		return httpx.ErrTypeUnknown, true
	}

	return httpx.ErrTypeUnknown, false
}
