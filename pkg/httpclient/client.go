package httpclient

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

const (
	headerContentType = "Content-Type"
	mimeJSON          = "application/json"
)

// Client issues JSON requests against a fixed base URL.
// The base URL never changes after New, so a Client is safe for concurrent use.
type Client struct {
	base   string
	client *resty.Client
}

// New creates a Client rooted at baseURL, falling back to DefaultBaseURL when empty.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{base: baseURL, client: newRestyBaseClient()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the prefix prepended to every request path.
func (c *Client) BaseURL() string { return c.base }

// Do sends a request to base+path and decodes a successful JSON response into T.
//
// Non-2xx responses produce a *RequestError. A 204 response yields the zero
// value of T without touching the body. Transport and decode errors are
// returned as produced.
func Do[T any](ctx context.Context, c *Client, path string, opts *Options) (T, error) {
	var zero T
	if opts == nil {
		opts = &Options{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req := c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader(headerContentType, mimeJSON)

	if len(opts.Headers) > 0 {
		req.SetHeaders(opts.Headers)
	}
	if opts.Body != nil {
		req.SetBody(opts.Body)
	}
	if len(opts.QueryParams) > 0 {
		req.SetQueryParams(opts.QueryParams)
	}

	resp, err := req.Execute(method, c.base+path)
	if err != nil {
		return zero, err
	}
	body := resp.RawBody()
	if body == nil {
		body = http.NoBody
	}
	defer body.Close()

	code := resp.StatusCode()
	if code < 200 || code > 299 {
		return zero, &RequestError{
			StatusCode: code,
			StatusText: reasonPhrase(code, resp.Status()),
			Body:       readBodyText(body),
		}
	}
	if code == http.StatusNoContent {
		return zero, nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// readBodyText reads the whole body, returning "" if any part of the read fails.
func readBodyText(body io.Reader) string {
	raw, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	return string(raw)
}

// reasonPhrase pulls the reason out of a "404 Not Found" style status line.
func reasonPhrase(code int, status string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == "" {
		return http.StatusText(code)
	}
	return reason
}
