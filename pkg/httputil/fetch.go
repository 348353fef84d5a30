package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/elemvis/elemvis/pkg/errors"
	"github.com/elemvis/elemvis/pkg/observability"
)

// maxBodySize caps downloaded dataset size at 64 MiB. Element datasets
// are a few hundred kilobytes; anything near this limit is not one.
// Variable so tests can lower it.
var maxBodySize int64 = 64 << 20

// DefaultClient is the client used by [Fetch] when the caller passes nil.
var DefaultClient = &http.Client{Timeout: 30 * time.Second}

// Fetch performs a single GET for url and returns the response body.
//
// Failures are classified so [Retry] can tell transient from permanent:
// network errors, 429, and 5xx responses come back wrapped in
// [RetryableError]; 404 maps to a NOT_FOUND error and other non-2xx
// statuses to NETWORK errors, neither retryable. Observability HTTP hooks
// fire for the request, its response, and any transport error.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid dataset URL %q", url)
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url))
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path,
		resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Fall through to the body read.
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "dataset not found at %s", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, Retryable(errors.New(errors.ErrCodeNetwork,
			"fetch %s: server returned %s", url, resp.Status))
	default:
		return nil, errors.New(errors.ErrCodeNetwork,
			"fetch %s: server returned %s", url, resp.Status)
	}

	// Read one byte past the cap so truncation is detectable instead of
	// silently handing back a cut-off dataset.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read body of %s", url))
	}
	if int64(len(data)) > maxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidDataset,
			"fetch %s: response exceeds %d bytes", url, maxBodySize)
	}
	return data, nil
}

// FetchWithRetry runs [Fetch] under [RetryWithBackoff].
func FetchWithRetry(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var ferr error
		data, ferr = Fetch(ctx, client, url)
		return ferr
	})
	return data, err
}
