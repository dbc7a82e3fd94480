// internal/form/submit.go
//
// Shopadmin – Product form: submission client.
//
// Context
//   A validated draft leaves the client as one JSON POST to the create
//   endpoint.  Any 2xx answer counts as success; the body beyond that is not
//   consumed.  Exactly one attempt per Submit call: no retry loop and no
//   idempotency key, so a retry after an ambiguous failure is a brand-new
//   request that may duplicate the product.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yanizio/shopadmin/internal/product"
)

// SubmissionError is the request-scoped failure surfaced as an error toast.
// StatusCode is zero when the request never reached the endpoint.
type SubmissionError struct {
	StatusCode int
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("create product: endpoint returned %d", e.StatusCode)
	}
	return fmt.Sprintf("create product: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// IsSubmissionError reports whether err is request-scoped, as opposed to a
// validation or lifecycle error.
func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}

// Client POSTs product payloads to a fixed endpoint URL.  It satisfies the
// Submitter interface consumed by the controller.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a Client for endpoint.  A nil httpClient gets a default
// with a 15 second timeout, matching the server's write deadline.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Create issues the single create-product request.  ctx bounds the attempt;
// cancellation surfaces as a SubmissionError like any transport failure.
func (c *Client) Create(ctx context.Context, p product.Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return &SubmissionError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &SubmissionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the body is not interpreted.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SubmissionError{StatusCode: resp.StatusCode}
	}
	return nil
}
