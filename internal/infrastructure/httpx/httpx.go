package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// APIError is a non-success response from the remote service. Message is
// surfaced verbatim as the operation's failure reason.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// DoJSON issues a JSON request and decodes the JSON response into out (out
// may be nil). Transport failures and 5xx responses are retried with
// exponential backoff; any other non-2xx response fails immediately with an
// *APIError whose message is taken from the response body: the `error`
// field when the body is JSON, the plain text otherwise.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	op := func() error {
		// Fresh request per attempt; a consumed body is not replayable.
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return responseError(resp)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return backoff.Permanent(responseError(resp))
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(exp, ctx))
}

func responseError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := strings.TrimSpace(string(raw))
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
			msg = envelope.Error
		}
	}
	if msg == "" {
		msg = "request failed"
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
