package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// roundTripFunc lets tests fake the transport without a listener.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("connection reset mid-body") }
func (failingBody) Close() error             { return nil }

func fakeResponse(r *http.Request, code int, body io.ReadCloser) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     http.StatusText(code),
		Header:     make(http.Header),
		Body:       body,
		Request:    r,
	}
}

func TestDoUsesDefaultBaseURL(t *testing.T) {
	var target string
	c := New("", WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		target = r.URL.String()
		return fakeResponse(r, http.StatusOK, io.NopCloser(strings.NewReader(`{}`))), nil
	})))

	if _, err := Do[map[string]any](context.Background(), c, "/x", nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if target != "http://localhost:8000/x" {
		t.Fatalf("unexpected target: %s", target)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("unexpected base url: %s", c.BaseURL())
	}
}

func TestDoUsesConfiguredBaseURL(t *testing.T) {
	var target string
	c := New("https://api.example.com", WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		target = r.URL.String()
		return fakeResponse(r, http.StatusOK, io.NopCloser(strings.NewReader(`{}`))), nil
	})))

	if _, err := Do[map[string]any](context.Background(), c, "/items/1", nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if target != "https://api.example.com/items/1" {
		t.Fatalf("unexpected target: %s", target)
	}
}

func TestDoConcatenatesPathVerbatim(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/")
	if _, err := Do[*struct{}](context.Background(), c, "/items", nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotPath != "/api//items" {
		t.Fatalf("expected path to be left unnormalized, got %s", gotPath)
	}
}

func TestDoDefaultContentType(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if _, err := Do[any](context.Background(), New(srv.URL), "/", nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != "application/json" {
		t.Fatalf("expected default content type, got %q", got)
	}
}

func TestDoCallerHeadersOverrideDefault(t *testing.T) {
	var contentType, extra string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		extra = r.Header.Get("X-Request-Source")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, err := Do[any](context.Background(), New(srv.URL), "/", &Options{
		Headers: map[string]string{
			"Content-Type":     "text/plain",
			"X-Request-Source": "test",
		},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if contentType != "text/plain" {
		t.Fatalf("expected caller content type to win, got %q", contentType)
	}
	if extra != "test" {
		t.Fatalf("expected extra header to be forwarded, got %q", extra)
	}
}

func TestDoForwardsMethodBodyAndQuery(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.URL.Query().Get("dry_run"); got != "1" {
			t.Errorf("expected query param, got %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		if strings.TrimSpace(string(raw)) != `{"name":"ops"}` {
			t.Errorf("unexpected body: %s", raw)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"name":"ops"}`))
	}))
	defer srv.Close()

	got, err := Do[payload](context.Background(), New(srv.URL), "/teams", &Options{
		Method:      http.MethodPost,
		Body:        payload{Name: "ops"},
		QueryParams: map[string]string{"dry_run": "1"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got.Name != "ops" {
		t.Fatalf("unexpected decoded value: %+v", got)
	}
}

func TestDoDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"a":1}`))
	}))
	defer srv.Close()

	got, err := Do[struct {
		A int `json:"a"`
	}](context.Background(), New(srv.URL), "/", nil)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got.A != 1 {
		t.Fatalf("expected a=1, got %+v", got)
	}
}

func TestDoNoContentReturnsZeroValue(t *testing.T) {
	c := New("http://ems.test", WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return fakeResponse(r, http.StatusNoContent, io.NopCloser(strings.NewReader("not json at all"))), nil
	})))

	got, err := Do[*struct{ A int }](context.Background(), c, "/things/1", &Options{Method: http.MethodDelete})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil result for 204, got %+v", got)
	}
}

func TestDoNon2xxReturnsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	}))
	defer srv.Close()

	_, err := Do[map[string]any](context.Background(), New(srv.URL), "/missing", nil)
	if err == nil {
		t.Fatalf("expected error on 404")
	}
	if err.Error() != "HTTP 404 Not Found – not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusNotFound || reqErr.StatusText != "Not Found" || reqErr.Body != "not found" {
		t.Fatalf("unexpected error fields: %+v", reqErr)
	}
	if code, ok := StatusCode(err); !ok || code != http.StatusNotFound {
		t.Fatalf("StatusCode returned %d, %v", code, ok)
	}
}

func TestDoUnreadableErrorBodyKeepsHTTPError(t *testing.T) {
	c := New("http://ems.test", WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return fakeResponse(r, http.StatusInternalServerError, failingBody{}), nil
	})))

	_, err := Do[map[string]any](context.Background(), c, "/boom", nil)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Fatalf("expected status in message, got %q", err.Error())
	}
	if !strings.HasSuffix(err.Error(), "– ") || reqErr.Body != "" {
		t.Fatalf("expected empty body segment, got %q", err.Error())
	}
}

func TestDoPassesThroughTransportError(t *testing.T) {
	errDial := errors.New("dial tcp: no route to host")
	c := New("http://ems.test", WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errDial
	})))

	_, err := Do[map[string]any](context.Background(), c, "/", nil)
	if !errors.Is(err, errDial) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if _, ok := StatusCode(err); ok {
		t.Fatalf("transport error must not look like a RequestError")
	}
}

func TestDoPassesThroughDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"a":`))
	}))
	defer srv.Close()

	_, err := Do[map[string]any](context.Background(), New(srv.URL), "/", nil)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if _, ok := StatusCode(err); ok {
		t.Fatalf("decode error must not look like a RequestError")
	}
}

func TestRequestErrorMessage(t *testing.T) {
	err := &RequestError{StatusCode: 409, StatusText: "Conflict", Body: `{"detail":"exists"}`}
	if got := err.Error(); got != `HTTP 409 Conflict – {"detail":"exists"}` {
		t.Fatalf("unexpected message: %q", got)
	}
}
