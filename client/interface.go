package client

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gaborage/go-rbxweb/session"
)

const (
	// DefaultTokenHeader is the header the API uses to issue and expect the
	// anti-forgery token.
	DefaultTokenHeader = "X-CSRF-Token"

	// HeaderXRequestID is the header carrying the per-request correlation ID.
	HeaderXRequestID = "X-Request-ID"
)

// Client is the dispatcher interface for issuing API requests.
type Client interface {
	Get(ctx context.Context, req *session.Request) (*session.Response, error)
	Post(ctx context.Context, req *session.Request) (*session.Response, error)
	Put(ctx context.Context, req *session.Request) (*session.Response, error)
	Patch(ctx context.Context, req *session.Request) (*session.Response, error)
	Delete(ctx context.Context, req *session.Request) (*session.Response, error)
	Do(ctx context.Context, method string, req *session.Request) (*session.Response, error)

	// Session exposes the underlying transport session (default headers,
	// cookie jar).
	Session() *session.Session

	// Close releases the transport resources. Idempotent.
	Close()
}

// Config holds the dispatcher configuration.
type Config struct {
	// TokenHeader names the rotating anti-forgery token header. Defaults to
	// DefaultTokenHeader.
	TokenHeader string
	// RequestIDHeader names the correlation-ID header stamped on outgoing
	// requests. Defaults to HeaderXRequestID.
	RequestIDHeader string
	Timeout         time.Duration
	UserAgent       string
	Referer         string
	DefaultHeaders  map[string]string
	HTTPClient      *nethttp.Client
	Jar             nethttp.CookieJar

	RequestInterceptors  []session.RequestInterceptor
	ResponseInterceptors []session.ResponseInterceptor
}
