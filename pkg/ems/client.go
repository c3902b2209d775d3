package ems

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samvad-hq/ems-client/pkg/httpclient"
)

// Client is a typed client for the EMS HTTP API.
type Client struct {
	http *httpclient.Client
	log  Logger
}

// NewClient wraps an httpclient.Client. A nil log discards debug output.
func NewClient(hc *httpclient.Client, log Logger) *Client {
	return &Client{http: hc, log: ensureLogger(log)}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.http.BaseURL() }

func (c *Client) Health(ctx context.Context) (Health, error) {
	return call[Health](ctx, c, "health", "/healthz", nil)
}

func (c *Client) CreateUser(ctx context.Context, in UserCreate) (User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return User{}, errors.New("create user: username is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return User{}, errors.New("create user: email is required")
	}
	return call[User](ctx, c, "create user", "/users", post(in))
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return call[[]User](ctx, c, "list users", "/users", nil)
}

func (c *Client) CreateExceptionType(ctx context.Context, in ExceptionTypeCreate) (ExceptionType, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return ExceptionType{}, errors.New("create exception type: code and name are required")
	}
	return call[ExceptionType](ctx, c, "create exception type", "/exception-types", post(in))
}

func (c *Client) ListExceptionTypes(ctx context.Context) ([]ExceptionType, error) {
	return call[[]ExceptionType](ctx, c, "list exception types", "/exception-types", nil)
}

func (c *Client) CreateException(ctx context.Context, in ExceptionCreate) (Exception, error) {
	if in.TypeID <= 0 {
		return Exception{}, errors.New("create exception: type_id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return Exception{}, errors.New("create exception: title is required")
	}
	return call[Exception](ctx, c, "create exception", "/exceptions", post(in))
}

// ListExceptions returns exceptions newest first, optionally filtered by status and type.
func (c *Client) ListExceptions(ctx context.Context, filter ExceptionFilter) ([]Exception, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, fmt.Errorf("list exceptions: unknown status %q", filter.Status)
	}
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.TypeID > 0 {
		q.Set("type_id", strconv.Itoa(filter.TypeID))
	}
	path := "/exceptions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return call[[]Exception](ctx, c, "list exceptions", path, nil)
}

// PresignUpload registers an attachment and returns a short-lived upload URL.
func (c *Client) PresignUpload(ctx context.Context, in PresignUploadRequest) (PresignUpload, error) {
	if in.ExceptionID <= 0 || strings.TrimSpace(in.Filename) == "" {
		return PresignUpload{}, errors.New("presign upload: exception_id and filename are required")
	}
	return call[PresignUpload](ctx, c, "presign upload", "/attachments/presign-upload", post(in))
}

func (c *Client) PresignDownload(ctx context.Context, attachmentID int) (PresignDownload, error) {
	if attachmentID <= 0 {
		return PresignDownload{}, errors.New("presign download: attachment_id is required")
	}
	return call[PresignDownload](ctx, c, "presign download", "/attachments/presign-download",
		post(presignDownloadRequest{AttachmentID: attachmentID}))
}

func (c *Client) ListAttachments(ctx context.Context, exceptionID int) ([]Attachment, error) {
	path := "/attachments/by-exception/" + strconv.Itoa(exceptionID)
	return call[[]Attachment](ctx, c, "list attachments", path, nil)
}

// IsNotFound reports whether err came from a 404 response.
func IsNotFound(err error) bool {
	code, ok := httpclient.StatusCode(err)
	return ok && code == http.StatusNotFound
}

// IsConflict reports whether err came from a 409 response, e.g. a duplicate username or type code.
func IsConflict(err error) bool {
	code, ok := httpclient.StatusCode(err)
	return ok && code == http.StatusConflict
}

func post(body any) *httpclient.Options {
	return &httpclient.Options{Method: http.MethodPost, Body: body}
}

func call[T any](ctx context.Context, c *Client, op, path string, opts *httpclient.Options) (T, error) {
	method := http.MethodGet
	if opts != nil && opts.Method != "" {
		method = opts.Method
	}
	c.log.DebugObj("ems request", "request", map[string]any{
		"op":     op,
		"method": method,
		"path":   path,
	})

	out, err := httpclient.Do[T](ctx, c.http, path, opts)
	if err != nil {
		c.log.DebugObj("ems request failed", "error", err.Error())
		var zero T
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
