package client

import (
	"context"
	nethttp "net/http"

	"github.com/google/uuid"

	"github.com/gaborage/go-rbxweb/session"
)

// NewRequestIDInterceptor creates a request interceptor that stamps a UUID
// correlation ID on outgoing requests that do not already carry one. An empty
// header name falls back to HeaderXRequestID.
func NewRequestIDInterceptor(header string) session.RequestInterceptor {
	if header == "" {
		header = HeaderXRequestID
	}
	return func(_ context.Context, req *nethttp.Request) error {
		if req.Header.Get(header) == "" {
			req.Header.Set(header, uuid.NewString())
		}
		return nil
	}
}
