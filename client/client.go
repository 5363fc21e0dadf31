package client

import (
	"context"
	"encoding/json"
	"mime"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gaborage/go-rbxweb/apierr"
	"github.com/gaborage/go-rbxweb/logger"
	"github.com/gaborage/go-rbxweb/session"
)

// unsafeMethods are the methods subject to CSRF token enforcement. GET is
// deliberately exempt: the API neither requires nor rotates tokens for safe
// methods.
var unsafeMethods = map[string]bool{
	nethttp.MethodPost:   true,
	nethttp.MethodPut:    true,
	nethttp.MethodPatch:  true,
	nethttp.MethodDelete: true,
}

// dispatcher implements the Client interface.
type dispatcher struct {
	session     *session.Session
	log         logger.Logger
	tokenHeader string
}

// NewClient creates a dispatcher with default configuration.
func NewClient(log logger.Logger) (Client, error) {
	return NewBuilder(log).Build()
}

// Builder provides a fluent interface for configuring the dispatcher.
type Builder struct {
	config  *Config
	log     logger.Logger
	session *session.Session
}

// NewBuilder creates a new dispatcher builder.
func NewBuilder(log logger.Logger) *Builder {
	if log == nil {
		log = logger.Nop()
	}
	return &Builder{
		config: &Config{
			TokenHeader:     DefaultTokenHeader,
			RequestIDHeader: HeaderXRequestID,
			DefaultHeaders:  make(map[string]string),
		},
		log: log,
	}
}

// WithTimeout sets the per-request timeout.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout
	return b
}

// WithHTTPClient supplies a custom net/http client for the transport.
func (b *Builder) WithHTTPClient(httpClient *nethttp.Client) *Builder {
	b.config.HTTPClient = httpClient
	return b
}

// WithCookieJar supplies a custom cookie jar.
func (b *Builder) WithCookieJar(jar nethttp.CookieJar) *Builder {
	b.config.Jar = jar
	return b
}

// WithTokenHeader renames the anti-forgery token header. Empty values keep
// the default.
func (b *Builder) WithTokenHeader(header string) *Builder {
	if header != "" {
		b.config.TokenHeader = header
	}
	return b
}

// WithRequestIDHeader renames the correlation-ID header. Empty values keep
// the default.
func (b *Builder) WithRequestIDHeader(header string) *Builder {
	if header != "" {
		b.config.RequestIDHeader = header
	}
	return b
}

// WithUserAgent overrides the fixed User-Agent default header.
func (b *Builder) WithUserAgent(userAgent string) *Builder {
	b.config.UserAgent = userAgent
	return b
}

// WithReferer overrides the fixed Referer default header.
func (b *Builder) WithReferer(referer string) *Builder {
	b.config.Referer = referer
	return b
}

// WithDefaultHeader adds a default header sent with all requests.
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.config.DefaultHeaders[key] = value
	return b
}

// WithRequestInterceptor adds a request interceptor.
func (b *Builder) WithRequestInterceptor(interceptor session.RequestInterceptor) *Builder {
	b.config.RequestInterceptors = append(b.config.RequestInterceptors, interceptor)
	return b
}

// WithResponseInterceptor adds a response interceptor.
func (b *Builder) WithResponseInterceptor(interceptor session.ResponseInterceptor) *Builder {
	b.config.ResponseInterceptors = append(b.config.ResponseInterceptors, interceptor)
	return b
}

// WithSession supplies a prebuilt transport session. Transport-level builder
// options (timeout, HTTP client, jar, user agent, referer, interceptors) are
// ignored when set.
func (b *Builder) WithSession(sess *session.Session) *Builder {
	b.session = sess
	return b
}

// Build creates the dispatcher with the configured options.
func (b *Builder) Build() (Client, error) {
	sess := b.session
	if sess == nil {
		interceptors := append(
			[]session.RequestInterceptor{NewRequestIDInterceptor(b.config.RequestIDHeader)},
			b.config.RequestInterceptors...,
		)

		var err error
		sess, err = session.New(b.log, &session.Options{
			HTTPClient:           b.config.HTTPClient,
			Jar:                  b.config.Jar,
			Timeout:              b.config.Timeout,
			UserAgent:            b.config.UserAgent,
			Referer:              b.config.Referer,
			RequestInterceptors:  interceptors,
			ResponseInterceptors: b.config.ResponseInterceptors,
		})
		if err != nil {
			return nil, err
		}
	}

	for key, value := range b.config.DefaultHeaders {
		sess.SetHeader(key, value)
	}

	return &dispatcher{
		session:     sess,
		log:         b.log,
		tokenHeader: b.config.TokenHeader,
	}, nil
}

// Get performs a GET request.
func (d *dispatcher) Get(ctx context.Context, req *session.Request) (*session.Response, error) {
	return d.Do(ctx, nethttp.MethodGet, req)
}

// Post performs a POST request.
func (d *dispatcher) Post(ctx context.Context, req *session.Request) (*session.Response, error) {
	return d.Do(ctx, nethttp.MethodPost, req)
}

// Put performs a PUT request.
func (d *dispatcher) Put(ctx context.Context, req *session.Request) (*session.Response, error) {
	return d.Do(ctx, nethttp.MethodPut, req)
}

// Patch performs a PATCH request.
func (d *dispatcher) Patch(ctx context.Context, req *session.Request) (*session.Response, error) {
	return d.Do(ctx, nethttp.MethodPatch, req)
}

// Delete performs a DELETE request.
func (d *dispatcher) Delete(ctx context.Context, req *session.Request) (*session.Response, error) {
	return d.Do(ctx, nethttp.MethodDelete, req)
}

// Do performs an HTTP request with the specified method, running the token
// capture, single 403 resend and error translation steps documented in the
// package comment.
func (d *dispatcher) Do(ctx context.Context, method string, req *session.Request) (*session.Response, error) {
	method = canonicalMethod(method)

	resp, err := d.session.Send(ctx, method, req)
	if err != nil {
		return nil, err
	}

	if req.SkipErrorTranslation {
		return resp, nil
	}

	if !req.SkipTokenHandling && unsafeMethods[method] {
		resp, err = d.handleToken(ctx, method, req, resp)
		if err != nil {
			return nil, err
		}
	}

	if resp.IsStream() {
		// The caller consumes the stream and checks the status itself.
		return resp, nil
	}

	if resp.StatusCode >= 400 {
		entries := decodeErrorEntries(resp)
		return resp, apierr.ConstructorFor(resp.StatusCode)(resp, entries)
	}
	return resp, nil
}

// Session exposes the underlying transport session.
func (d *dispatcher) Session() *session.Session {
	return d.session
}

// Close releases the transport resources.
func (d *dispatcher) Close() {
	d.session.Close()
}

// handleToken captures a rotated token from the response and, when the status
// is exactly 403, resends the identical request once. The resend's response
// becomes the effective response; its own token header is not re-captured,
// and a second 403 is surfaced like any other error status.
func (d *dispatcher) handleToken(ctx context.Context, method string, req *session.Request, resp *session.Response) (*session.Response, error) {
	values := resp.Headers.Values(d.tokenHeader)
	if len(values) == 0 {
		return resp, nil
	}

	d.session.SetHeader(d.tokenHeader, values[0])
	d.log.Debug().
		Str("method", method).
		Str("url", req.URL).
		Int("status", resp.StatusCode).
		Msg("captured rotated token")

	if resp.StatusCode != nethttp.StatusForbidden {
		return resp, nil
	}

	// Token rejected; the first response is superseded by the resend.
	if resp.IsStream() {
		resp.Stream.Close()
	}

	d.log.Debug().
		Str("method", method).
		Str("url", req.URL).
		Msg("token rejected, resending once")

	return d.session.Send(ctx, method, req)
}

// canonicalMethod normalizes the method for internal comparisons. net/http
// sends the canonical value on the wire for standard methods.
func canonicalMethod(method string) string {
	return strings.ToUpper(strings.TrimSpace(method))
}

// decodeErrorEntries extracts the structured "errors" field from a JSON error
// body. Non-JSON content types and parse failures yield no entries; they
// never fail the call.
func decodeErrorEntries(resp *session.Response) []apierr.Entry {
	contentType := resp.Headers.Get("Content-Type")
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return nil
	}

	var payload struct {
		Errors []apierr.Entry `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil
	}
	return payload.Errors
}
