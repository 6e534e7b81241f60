package okx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the machine-readable classification of an error produced by this
// package. Local validation kinds are raised before any network call; the
// remaining kinds come from decoding exchange responses.
type Kind string

const (
	KindInvalidCredential   Kind = "invalid_credential"
	KindInvalidRequestShape Kind = "invalid_request_shape"
	KindInvalidParameter    Kind = "invalid_parameter"
	KindAuthentication      Kind = "authentication"
	KindRateLimit           Kind = "rate_limit"
	KindRequest             Kind = "request"
	KindExchange            Kind = "exchange"
)

// ValidationError reports input rejected locally, before a request is
// signed or sent.
type ValidationError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Kind, e.Field, e.Reason)
}

// APIError reports a call the exchange rejected. Code and Message are the
// exchange's own values, preserved verbatim; HTTPStatus is zero when the
// rejection came from the envelope of a 2xx response.
type APIError struct {
	Kind       Kind
	Code       string
	Message    string
	HTTPStatus int
}

func (e *APIError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("exchange rejected the request (%s): code=%s http=%d msg=%s", e.Kind, e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("exchange rejected the request (%s): code=%s msg=%s", e.Kind, e.Code, e.Message)
}

// IsKind reports whether err carries the given kind, unwrapping as needed.
func IsKind(err error, kind Kind) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// Error codes published by the exchange, grouped at the minimum granularity
// callers need to react: back off, fix credentials, or fix the request.
// The tables are deliberately additive; unknown codes fall through to
// KindExchange with the raw code preserved.
var authCodes = map[string]struct{}{
	"50011": {}, // invalid sign
	"50100": {}, "50101": {}, "50102": {}, "50103": {}, "50104": {},
	"50105": {}, "50106": {}, "50107": {}, "50111": {}, "50112": {},
	"50113": {}, "50114": {}, "50115": {},
}

var rateLimitCodes = map[string]struct{}{
	"50061": {}, // too many requests
	"58102": {}, // withdrawal rate limit
}

// classify maps an exchange rejection to an error kind. HTTP status takes
// precedence over the code tables: a 401 or 429 is unambiguous regardless of
// which envelope code rode along with it.
func classify(code string, httpStatus int) Kind {
	switch httpStatus {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusTooManyRequests:
		return KindRateLimit
	}
	if _, ok := authCodes[code]; ok {
		return KindAuthentication
	}
	if _, ok := rateLimitCodes[code]; ok {
		return KindRateLimit
	}
	// 51xxx is the business-rule range: bad parameters, insufficient
	// balance, unknown instruments and the like.
	if strings.HasPrefix(code, "51") {
		return KindRequest
	}
	return KindExchange
}
