package github

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vibecheck-dev/vibecheck/internal/adapter/httpx"
)

type requestResult struct {
	body       []byte
	statusCode int
	linkHeader string
}

func (c *Client) doRequest(ctx context.Context, method, apiURL string, body []byte) ([]byte, error) {
	respBody, _, err := c.doRequestWithPagination(ctx, method, apiURL, body)
	return respBody, err
}

func (c *Client) doRequestWithPagination(ctx context.Context, method, apiURL string, body []byte) (respBody []byte, nextURL string, err error) {
	var result *requestResult

	err = httpx.RetryWithBackoff(ctx, func(ctx context.Context) error {
		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, reqErr := http.NewRequestWithContext(ctx, method, apiURL, bodyReader)
		if reqErr != nil {
			return &httpx.Error{Type: httpx.ErrTypeUnknown, Message: reqErr.Error(), Retryable: false, Provider: providerName}
		}

		c.setHeaders(req)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, callErr := c.httpClient.Do(req)
		if callErr != nil {
			errType, retryable := classifyTransportError(callErr)
			return &httpx.Error{Type: errType, Message: callErr.Error(), Retryable: retryable, Provider: providerName}
		}
		defer resp.Body.Close()

		limitedBody := io.LimitReader(resp.Body, maxResponseSize)

		if resp.StatusCode >= 400 {
			bodyBytes, readErr := io.ReadAll(limitedBody)
			errMsg := string(bodyBytes)
			if readErr != nil {
				errMsg = fmt.Sprintf("(failed to read error response: %v)", readErr)
			}
			return mapHTTPError(resp.StatusCode, errMsg, resp.Header)
		}

		var respBody []byte
		if resp.StatusCode == http.StatusNoContent {
			_, _ = io.Copy(io.Discard, limitedBody)
		} else {
			var readErr error
			respBody, readErr = io.ReadAll(limitedBody)
			if readErr != nil {
				return &httpx.Error{Type: httpx.ErrTypeUnknown, Message: fmt.Sprintf("failed to read response body: %v", readErr), Retryable: false, Provider: providerName}
			}
		}

		result = &requestResult{body: respBody, statusCode: resp.StatusCode, linkHeader: resp.Header.Get("Link")}
		return nil
	}, c.retryConf)

	if err != nil {
		return nil, "", err
	}
	if result == nil {
		return nil, "", fmt.Errorf("no response after retries")
	}

	return result.body, parseNextPageURL(result.linkHeader), nil
}

// parseNextPageURL extracts the "next" URL from a GitHub Link header:
// `<url>; rel="next", <url>; rel="last"`.
func parseNextPageURL(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}
	for _, link := range strings.Split(linkHeader, ",") {
		parts := strings.Split(strings.TrimSpace(link), ";")
		if len(parts) < 2 {
			continue
		}
		if strings.TrimSpace(parts[1]) == `rel="next"` {
			urlPart := strings.TrimSpace(parts[0])
			if strings.HasPrefix(urlPart, "<") && strings.HasSuffix(urlPart, ">") {
				return urlPart[1 : len(urlPart)-1]
			}
		}
	}
	return ""
}
