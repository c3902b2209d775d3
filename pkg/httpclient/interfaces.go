package httpclient

import "net/http"

// Options configures a single request. Headers are merged over the default
// JSON content type; the remaining fields are handed to the transport as is.
type Options struct {
	Method      string
	Headers     map[string]string
	Body        any
	QueryParams map[string]string
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithTransport swaps the underlying round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.client.SetTransport(rt)
		}
	}
}
