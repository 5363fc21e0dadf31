package session

import (
	"context"
	"io"
	nethttp "net/http"
	"time"
)

// Request describes one HTTP exchange. It is immutable once built; the client
// layer may send it a second time when the server rejects a stale CSRF token.
type Request struct {
	URL     string
	Query   map[string]string
	Headers map[string]string
	Body    []byte

	// Stream leaves the response body unread; the caller owns the stream and
	// must close it.
	Stream bool
	// SkipTokenHandling disables CSRF token capture and the 403 resend for
	// this request.
	SkipTokenHandling bool
	// SkipErrorTranslation returns the raw response even on status >= 400;
	// no domain error is constructed.
	SkipErrorTranslation bool
}

// Response is the result of one exchange. Body is populated for eager
// requests; Stream is non-nil only when the request asked for streaming, and
// then Body is nil.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
	Stream     io.ReadCloser
	Stats      Stats
}

// IsStream reports whether the body was left unread on the wire.
func (r *Response) IsStream() bool {
	return r.Stream != nil
}

// Stats contains request execution statistics.
type Stats struct {
	ElapsedTime time.Duration
	CallCount   int64
}

// RequestInterceptor is called after the outgoing request is built, before it
// is sent.
type RequestInterceptor func(ctx context.Context, req *nethttp.Request) error

// ResponseInterceptor is called after a response is received, before the body
// is consumed.
type ResponseInterceptor func(ctx context.Context, req *nethttp.Request, resp *nethttp.Response) error
