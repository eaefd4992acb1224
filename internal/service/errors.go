package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is returned when model output is not valid JSON or
// does not have the recipe shape. It consumes an attempt and is retried.
var ErrMalformedResponse = errors.New("malformed model response")

// ErrorKind classifies a fatal failure of the generation client
type ErrorKind string

const (
	KindClientUnavailable ErrorKind = "client_unavailable"
	KindAuth              ErrorKind = "upstream_auth"
	KindRateLimited       ErrorKind = "upstream_rate_limited"
	KindPermissionDenied  ErrorKind = "upstream_permission_denied"
	KindNotFound          ErrorKind = "upstream_not_found"
	KindInvalidRequest    ErrorKind = "upstream_invalid_request"
	KindSafetyBlocked     ErrorKind = "upstream_safety_blocked"
	KindConnectivity      ErrorKind = "upstream_connectivity"
	KindUnclassified      ErrorKind = "upstream_unclassified"
)

// UpstreamError is a classified, non-retryable failure talking to the model
type UpstreamError struct {
	Kind ErrorKind
	// StatusCode is the upstream HTTP status when one was received
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to the status returned to API callers
func (e *UpstreamError) HTTPStatus() int {
	switch e.Kind {
	case KindClientUnavailable:
		return http.StatusInternalServerError
	case KindAuth:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindSafetyBlocked:
		return http.StatusPreconditionFailed
	case KindConnectivity:
		return http.StatusServiceUnavailable
	}
	if e.StatusCode >= 400 && e.StatusCode <= 599 {
		return e.StatusCode
	}
	return http.StatusBadGateway
}

// PublicMessage is the caller-facing description of the failure
func (e *UpstreamError) PublicMessage() string {
	switch e.Kind {
	case KindClientUnavailable:
		return "Gemini client not initialized (check API key)"
	case KindAuth:
		return "Invalid or missing Gemini API key"
	case KindRateLimited:
		return "LLM rate limit/quota exceeded"
	case KindPermissionDenied:
		return "Gemini permission denied (project/org)"
	case KindNotFound:
		return "Gemini resource not found (check model name)"
	case KindInvalidRequest:
		return "Gemini invalid request: " + e.Message
	case KindSafetyBlocked:
		return "Blocked by safety filters for this prompt"
	case KindConnectivity:
		return "Upstream connectivity issue reaching Gemini"
	}
	return "Gemini error: " + e.Message
}

// IsUpstreamKind reports whether err is an UpstreamError of the given kind
func IsUpstreamKind(err error, kind ErrorKind) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Kind == kind
}
