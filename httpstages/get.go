package httpstages

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dcshock/gbopcodes/pipeline"
)

// StatusError is returned by Get when the response status is not 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http get %q: unexpected status %d (want %d)", e.URL, e.StatusCode, http.StatusOK)
}

// Get returns a stage that performs one HTTP GET to the fixed url and returns the response body as []byte.
// Only 200 OK is accepted; any other status yields a *StatusError and the body is not read.
// The pipeline context is used for the request (timeout and cancellation). If client is nil, http.DefaultClient is used.
func Get(client *http.Client, url string) pipeline.Stage {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("http get: new request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("http get %q: %w", url, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("http get %q: read body: %w", url, err)
		}
		return body, nil
	}
}
