// Package httputil provides HTTP utilities for fetching remote photos.
//
// # Overview
//
// This package provides the transport infrastructure shared by all remote
// photo sources:
//
//   - [Fetch]: downloads a URL body with retry and status classification
//   - [Retry]: automatic retry with exponential backoff
//
// # Retry
//
// Transient failures (network errors, 5xx responses, 429 rate limits) are
// wrapped in [RetryableError] so [Retry] attempts them again with
// exponential backoff. Permanent failures such as 404 return immediately
// with a typed error code.
//
//	var body []byte
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    var err error
//	    body, err = fetch()
//	    return err
//	})
//
// # Defaults
//
//   - Max attempts: 3
//   - Base backoff: 1 second, doubling per retry
//   - Request timeout: 30 seconds via [NewClient]
package httputil
