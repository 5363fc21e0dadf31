// Package apierr defines the domain errors produced from Roblox web API
// responses with status >= 400, including the structured error entries the
// API reports in JSON bodies.
package apierr

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/gaborage/go-rbxweb/session"
)

// Entry is one structured error reported by the API inside the "errors"
// field of a JSON error body.
type Entry struct {
	Code              int64  `json:"code"`
	Message           string `json:"message"`
	UserFacingMessage string `json:"userFacingMessage,omitempty"`
	Field             string `json:"field,omitempty"`
}

// Kind categorizes a domain error by the status code that produced it.
type Kind string

const (
	BadRequest          Kind = "bad_request"
	Unauthorized        Kind = "unauthorized"
	Forbidden           Kind = "forbidden"
	NotFound            Kind = "not_found"
	TooManyRequests     Kind = "too_many_requests"
	InternalServerError Kind = "internal_server_error"
	// HTTP is the catch-all for status codes without a dedicated kind.
	HTTP Kind = "http"
)

// Error is a domain error derived from an API response. It always carries the
// status code and the originating response; structured entries are present
// only when the API returned a parseable JSON error body.
type Error interface {
	error
	Kind() Kind
	StatusCode() int
	Errors() []Entry
	Response() *session.Response
}

// Constructor builds a domain error from a response and its decoded error
// entries. It is the lookup contract consumed by the request dispatcher.
type Constructor func(resp *session.Response, entries []Entry) Error

type responseError struct {
	kind    Kind
	status  int
	entries []Entry
	resp    *session.Response
}

func (e *responseError) Error() string {
	status := fmt.Sprintf("%d %s", e.status, nethttp.StatusText(e.status))
	if len(e.entries) == 0 {
		return fmt.Sprintf("api error: %s", status)
	}

	messages := make([]string, 0, len(e.entries))
	for _, entry := range e.entries {
		messages = append(messages, fmt.Sprintf("%d: %s", entry.Code, entry.Message))
	}
	return fmt.Sprintf("api error: %s (%s)", status, strings.Join(messages, "; "))
}

func (e *responseError) Kind() Kind {
	return e.kind
}

func (e *responseError) StatusCode() int {
	return e.status
}

func (e *responseError) Errors() []Entry {
	return e.entries
}

func (e *responseError) Response() *session.Response {
	return e.resp
}

// kindForStatus maps the well-known API status codes to their kinds.
var kindForStatus = map[int]Kind{
	nethttp.StatusBadRequest:          BadRequest,
	nethttp.StatusUnauthorized:        Unauthorized,
	nethttp.StatusForbidden:           Forbidden,
	nethttp.StatusNotFound:            NotFound,
	nethttp.StatusTooManyRequests:     TooManyRequests,
	nethttp.StatusInternalServerError: InternalServerError,
}

// ConstructorFor returns the domain error constructor for a status code.
// Unrecognized codes get the generic HTTP kind.
func ConstructorFor(status int) Constructor {
	kind, ok := kindForStatus[status]
	if !ok {
		kind = HTTP
	}
	return func(resp *session.Response, entries []Entry) Error {
		return &responseError{
			kind:    kind,
			status:  status,
			entries: entries,
			resp:    resp,
		}
	}
}

// New builds the domain error for resp using the constructor registered for
// its status code.
func New(resp *session.Response, entries []Entry) Error {
	return ConstructorFor(resp.StatusCode)(resp, entries)
}

// IsKind checks whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind() == kind
	}
	return false
}

// IsStatus checks whether err is a domain error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode() == status
	}
	return false
}

// StatusCodeOf extracts the status code from a domain error.
func StatusCodeOf(err error) (int, bool) {
	var apiErr Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode(), true
	}
	return 0, false
}
