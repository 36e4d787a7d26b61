package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yourusername/scoreline/internal/metrics"
)

const maxErrorBody = 512

// getJSON performs a GET through the rate-limited client and decodes a
// 200 response into out. Other statuses map to DataSourceError codes.
func getJSON(ctx context.Context, client *RateLimitedHTTPClient, source, operation, url string, headers map[string]string, out any) error {
	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.RecordProviderRequest(source, operation, outcome, time.Since(start).Seconds())
	}()

	resp, err := client.Get(ctx, url, headers)
	if err != nil {
		if ctx.Err() != nil {
			outcome = "canceled"
			return ctx.Err()
		}
		return NewDataSourceError(source, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewDataSourceError(source, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusTooManyRequests:
		outcome = "rate_limited"
		return NewDataSourceError(source, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case resp.StatusCode == http.StatusNotFound:
		return NewDataSourceError(source, ErrCodeNotFound, url, ErrNotFound)
	case resp.StatusCode >= 500:
		return NewDataSourceError(source, ErrCodeServerError, fmt.Sprintf("unexpected status %d", resp.StatusCode), ErrServerError)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return NewDataSourceError(source, ErrCodeUnknown, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(source, ErrCodeInvalidData, "failed to parse response", err)
	}

	outcome = "success"
	return nil
}
