package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	nethttp "net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gaborage/go-rbxweb/logger"
)

const (
	// DefaultTimeout is the default request timeout duration.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is the client identifier presented on every request.
	DefaultUserAgent = "Roblox/WinInet"

	// DefaultReferer is the referrer value expected by the API.
	DefaultReferer = "www.roblox.com"
)

// Options configures a Session. The zero value is usable: a fresh HTTP client
// with an in-memory cookie jar, the default timeout and the fixed default
// headers.
type Options struct {
	// HTTPClient replaces the internally constructed net/http client. Its
	// cookie jar is installed if it has none.
	HTTPClient *nethttp.Client
	// Jar replaces the in-memory cookie jar.
	Jar nethttp.CookieJar
	// Timeout bounds each request. Ignored when HTTPClient already carries a
	// non-zero timeout.
	Timeout time.Duration
	// UserAgent and Referer override the fixed default headers.
	UserAgent string
	Referer   string

	RequestInterceptors  []RequestInterceptor
	ResponseInterceptors []ResponseInterceptor
}

// Session owns the reusable HTTP connection resource, the cookie jar and the
// default headers shared by all requests.
type Session struct {
	httpClient           *nethttp.Client
	log                  logger.Logger
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor

	mu      sync.RWMutex
	headers map[string]string

	callCount int64
	closeOnce sync.Once
}

// New creates a Session. A nil log defaults to a no-op logger; nil opts
// default to Options{}.
func New(log logger.Logger, opts *Options) (*Session, error) {
	if log == nil {
		log = logger.Nop()
	}
	if opts == nil {
		opts = &Options{}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &nethttp.Client{Timeout: timeout}
	} else if httpClient.Timeout == 0 && opts.Timeout > 0 {
		httpClient.Timeout = opts.Timeout
	}

	if httpClient.Jar == nil {
		jar := opts.Jar
		if jar == nil {
			var err error
			jar, err = cookiejar.New(nil)
			if err != nil {
				return nil, NewNetworkError("failed to create cookie jar", err)
			}
		}
		httpClient.Jar = jar
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	referer := opts.Referer
	if referer == "" {
		referer = DefaultReferer
	}

	return &Session{
		httpClient:           httpClient,
		log:                  log,
		requestInterceptors:  opts.RequestInterceptors,
		responseInterceptors: opts.ResponseInterceptors,
		headers: map[string]string{
			"User-Agent": userAgent,
			"Referer":    referer,
		},
	}, nil
}

// Send executes a single HTTP exchange. Transport failures are returned as
// typed transport errors with the underlying cause preserved; HTTP status
// codes are never interpreted here.
func (s *Session) Send(ctx context.Context, method string, req *Request) (*Response, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	callCount := atomic.AddInt64(&s.callCount, 1)

	httpReq, err := s.buildRequest(ctx, method, req)
	if err != nil {
		return nil, err
	}

	s.logRequest(method, req)

	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		if s.isTimeout(err) {
			return nil, NewTimeoutError("request timed out", s.httpClient.Timeout, err)
		}
		return nil, NewNetworkError("request execution failed", err)
	}

	resp, err := s.buildResponse(ctx, start, callCount, req, httpReq, httpResp)
	if err != nil {
		return nil, err
	}

	s.logResponse(method, req, resp)
	return resp, nil
}

// SetHeader sets a default header presented on all subsequent requests. Keys
// are canonicalized, so lookups are case-insensitive.
func (s *Session) SetHeader(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers[nethttp.CanonicalHeaderKey(key)] = value
}

// Header returns the current value of a default header.
func (s *Session) Header(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.headers[nethttp.CanonicalHeaderKey(key)]
	return value, ok
}

// Headers returns a copy of the current default headers.
func (s *Session) Headers() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	headers := make(map[string]string, len(s.headers))
	for key, value := range s.headers {
		headers[key] = value
	}
	return headers
}

// Jar returns the cookie jar holding server-assigned cookies.
func (s *Session) Jar() nethttp.CookieJar {
	return s.httpClient.Jar
}

// Close releases idle connections. It is idempotent and never panics;
// in-flight requests are allowed to finish.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.httpClient.CloseIdleConnections()
	})
}

func (s *Session) validateRequest(req *Request) error {
	if req == nil {
		return NewValidationError("request cannot be nil", "request")
	}
	if req.URL == "" {
		return NewValidationError("URL cannot be empty", "url")
	}
	return nil
}

// buildRequest constructs the outgoing *http.Request, applies default and
// per-call headers, and runs the request interceptors.
func (s *Session) buildRequest(ctx context.Context, method string, req *Request) (*nethttp.Request, error) {
	target, err := s.buildURL(req)
	if err != nil {
		return nil, err
	}

	var body io.Reader = nethttp.NoBody
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, NewNetworkError("failed to create HTTP request", err)
	}

	s.applyHeaders(httpReq, req)

	for _, interceptor := range s.requestInterceptors {
		if err := interceptor(ctx, httpReq); err != nil {
			return nil, NewInterceptorError("request interceptor failed", "request", err)
		}
	}
	return httpReq, nil
}

func (s *Session) buildURL(req *Request) (string, error) {
	if len(req.Query) == 0 {
		return req.URL, nil
	}

	parsed, err := url.Parse(req.URL)
	if err != nil {
		return "", NewValidationError("invalid URL", "url")
	}
	query := parsed.Query()
	for key, value := range req.Query {
		query.Set(key, value)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func (s *Session) applyHeaders(httpReq *nethttp.Request, req *Request) {
	s.mu.RLock()
	for key, value := range s.headers {
		httpReq.Header.Set(key, value)
	}
	s.mu.RUnlock()

	// Per-call headers override session defaults
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if httpReq.Header.Get("Content-Type") == "" && req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
}

// buildResponse runs response interceptors and materializes a Response. For
// streaming requests the body is handed over unread; otherwise it is read
// eagerly and the connection is released.
func (s *Session) buildResponse(ctx context.Context, start time.Time, callCount int64, req *Request, httpReq *nethttp.Request, httpResp *nethttp.Response) (*Response, error) {
	for _, interceptor := range s.responseInterceptors {
		if err := interceptor(ctx, httpReq, httpResp); err != nil {
			httpResp.Body.Close()
			return nil, NewInterceptorError("response interceptor failed", "response", err)
		}
	}

	stats := Stats{
		ElapsedTime: time.Since(start),
		CallCount:   callCount,
	}

	if req.Stream {
		return &Response{
			StatusCode: httpResp.StatusCode,
			Headers:    httpResp.Header,
			Stream:     httpResp.Body,
			Stats:      stats,
		}, nil
	}

	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	stats.ElapsedTime = time.Since(start)
	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
		Stats:      stats,
	}, nil
}

func (s *Session) isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (s *Session) logRequest(method string, req *Request) {
	logEvent := s.log.Debug().
		Str("direction", "outbound").
		Str("method", method).
		Str("url", req.URL)

	if len(req.Headers) > 0 {
		logEvent = logEvent.Interface("headers", req.Headers)
	}
	if len(req.Body) > 0 {
		logEvent = logEvent.Int("body_bytes", len(req.Body))
	}

	logEvent.Msg("session request")
}

func (s *Session) logResponse(method string, req *Request, resp *Response) {
	s.log.Debug().
		Str("direction", "inbound").
		Str("method", method).
		Str("url", req.URL).
		Int("status", resp.StatusCode).
		Dur("elapsed", resp.Stats.ElapsedTime).
		Int64("call_count", resp.Stats.CallCount).
		Msg("session response")
}
