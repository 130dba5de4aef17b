package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/collagely/collagely/pkg/xerrors"
)

// maxBodySize caps downloaded photo bodies at 64 MiB.
const maxBodySize = 64 << 20

// NewClient returns an HTTP client tuned for photo downloads.
func NewClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// Fetch downloads the body at url, retrying transient failures with
// exponential backoff. Status codes map to error codes: 404 becomes
// IMAGE_NOT_FOUND, 5xx and 429 are retried and surface as NETWORK after
// the attempts are exhausted, timeouts surface as TIMEOUT.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = NewClient()
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		body, err = fetchOnce(ctx, client, url)
		return err
	})
	if err != nil {
		return nil, classify(err, url)
	}
	return body, nil
}

func fetchOnce(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, &RetryableError{Err: err}
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, xerrors.New(xerrors.ErrCodeImageNotFound, "image not found: %s", url)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RetryableError{Err: fmt.Errorf("status %d from %s", resp.StatusCode, url)}
	default:
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}
}

// classify maps transport failures onto the error codes callers branch
// on. Coded errors pass through untouched.
func classify(err error, url string) error {
	if xerrors.GetCode(err) != "" {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return xerrors.Wrap(err, xerrors.ErrCodeTimeout, "fetching %s", url)
	}
	return xerrors.Wrap(err, xerrors.ErrCodeNetwork, "fetching %s", url)
}
