package httpclient

import (
	"errors"
	"fmt"
)

// RequestError reports a response whose status fell outside 200-299.
// Body is best effort and empty when it could not be read.
type RequestError struct {
	StatusCode int
	StatusText string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP %d %s – %s", e.StatusCode, e.StatusText, e.Body)
}

// StatusCode reports the HTTP status carried by a RequestError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode, true
	}
	return 0, false
}
