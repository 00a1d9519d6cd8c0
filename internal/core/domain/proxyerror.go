package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrorKind is one member of the closed failure taxonomy. Every reachable
// failure maps to exactly one kind; no other kinds may be introduced.
type ErrorKind string

const (
	KindInvalidRequest      ErrorKind = "InvalidRequest"
	KindUnauthenticated     ErrorKind = "Unauthenticated"
	KindForbidden           ErrorKind = "Forbidden"
	KindNotFound            ErrorKind = "NotFound"
	KindRateLimited         ErrorKind = "RateLimited"
	KindUpstreamUnavailable ErrorKind = "UpstreamUnavailable"
	KindNetworkError        ErrorKind = "NetworkError"
	KindUnknown             ErrorKind = "Unknown"
)

// ProxyError is the classified form of an upstream or local failure. It is
// constructed per failed call, returned to the caller and never stored.
type ProxyError struct {
	Kind    ErrorKind
	Message string
	// RetryAfterSeconds is populated for KindRateLimited only.
	RetryAfterSeconds int
	// ProviderDetail carries the raw upstream payload, opaque to callers.
	ProviderDetail string
}

func (e *ProxyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPStatus returns the response status the proxy surface uses for the kind.
func (e *ProxyError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUpstreamUnavailable, KindNetworkError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Failure describes one failed upstream call as observed at the transport
// edge: either a response with a non-2xx status, or no response at all.
type Failure struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	// RetryAfter is the verbatim Retry-After header, if any.
	RetryAfter string
	// Body is the raw response body, if any.
	Body string
	// Err is the transport or decoding error when the failure was not an
	// HTTP status.
	Err error
}

const defaultRetryAfterSeconds = 60

// Classify maps a failure onto exactly one ProxyError. It is deterministic
// and performs no I/O; retry policy is the caller's decision and this
// function never retries anything itself.
func Classify(f Failure) *ProxyError {
	if f.StatusCode == 0 {
		msg := "upstream request failed before a response was received"
		if f.Err != nil {
			msg = fmt.Sprintf("upstream request failed: %v", f.Err)
		}
		return &ProxyError{Kind: KindNetworkError, Message: msg}
	}

	detail := f.Body
	switch {
	case f.StatusCode == http.StatusBadRequest:
		msg := "upstream rejected the request"
		if pm := providerMessage(f.Body); pm != "" {
			msg = pm
		}
		return &ProxyError{Kind: KindInvalidRequest, Message: msg, ProviderDetail: detail}
	case f.StatusCode == http.StatusUnauthorized:
		return &ProxyError{Kind: KindUnauthenticated, Message: "access token rejected by upstream, re-authentication required", ProviderDetail: detail}
	case f.StatusCode == http.StatusForbidden:
		return &ProxyError{Kind: KindForbidden, Message: "permission denied for the requested account", ProviderDetail: detail}
	case f.StatusCode == http.StatusNotFound:
		return &ProxyError{Kind: KindNotFound, Message: "requested account or resource does not exist", ProviderDetail: detail}
	case f.StatusCode == http.StatusTooManyRequests:
		retry := defaultRetryAfterSeconds
		if v, err := strconv.Atoi(strings.TrimSpace(f.RetryAfter)); err == nil && v > 0 {
			retry = v
		}
		return &ProxyError{
			Kind:              KindRateLimited,
			Message:           fmt.Sprintf("upstream rate limit hit, retry after %d seconds", retry),
			RetryAfterSeconds: retry,
			ProviderDetail:    detail,
		}
	case f.StatusCode >= 500:
		return &ProxyError{Kind: KindUpstreamUnavailable, Message: fmt.Sprintf("upstream unavailable (status %d)", f.StatusCode), ProviderDetail: detail}
	default:
		msg := fmt.Sprintf("unexpected upstream failure (status %d)", f.StatusCode)
		if f.Err != nil {
			msg = fmt.Sprintf("unexpected upstream failure: %v", f.Err)
		}
		return &ProxyError{Kind: KindUnknown, Message: msg, ProviderDetail: detail}
	}
}

// AsProxyError coerces any error into a ProxyError so nothing crosses the
// adapter boundary unclassified.
func AsProxyError(err error) *ProxyError {
	var pe *ProxyError
	if errors.As(err, &pe) {
		return pe
	}
	return &ProxyError{Kind: KindUnknown, Message: err.Error()}
}

// providerMessage extracts the human-readable message from a Graph API error
// envelope, e.g. {"error":{"message":"...","type":"OAuthException"}}.
func providerMessage(body string) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		return ""
	}
	return envelope.Error.Message
}
