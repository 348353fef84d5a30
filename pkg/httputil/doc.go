// Package httputil provides the HTTP client infrastructure for fetching
// remote element datasets.
//
// # Overview
//
// Two pieces cooperate here:
//
//   - [Fetch]: a single GET with transient failures classified as retryable
//   - [Retry]: automatic retry with exponential backoff
//
// # Retry
//
// [Retry] re-runs an operation only when its error is wrapped in
// [RetryableError]. [Fetch] wraps network errors, 429 responses, and 5xx
// responses that way, so the two compose directly:
//
//	var data []byte
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    var err error
//	    data, err = httputil.Fetch(ctx, nil, url)
//	    return err
//	})
//
// Caching of fetched bytes is not handled here; the pipeline stores them
// through its cache backend with a dataset key.
package httputil
