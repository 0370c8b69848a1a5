package codes

import "strings"

// ReturnCode is the business status code carried inside a response envelope.
// It is independent of the HTTP status of the transport.
type ReturnCode string

// String returns the raw code.
func (c ReturnCode) String() string { return string(c) }

// Empty reports whether no code was present in the envelope.
func (c ReturnCode) Empty() bool { return strings.TrimSpace(string(c)) == "" }

// ErrorCode describes a well-known return code shared across services.
type ErrorCode struct {
	Code    ReturnCode
	Symbol  string
	Message string
}

var (
	// OK is the conventional success code.
	OK = ErrorCode{Code: "0", Symbol: "OK", Message: "success"}
	// ErrAuthExpired indicates the session token has expired and the user must sign in again.
	ErrAuthExpired = ErrorCode{Code: "AUTH_EXPIRED", Symbol: "AUTH_EXPIRED", Message: "login expired"}
	// ErrTokenInvalid indicates token verification failure.
	ErrTokenInvalid = ErrorCode{Code: "TOKEN_INVALID", Symbol: "TOKEN_INVALID", Message: "authentication failed"}
	// ErrPermissionDenied indicates user lacks capability.
	ErrPermissionDenied = ErrorCode{Code: "PERMISSION_DENIED", Symbol: "PERMISSION_DENIED", Message: "permission denied"}
	// ErrInvalidPayload indicates malformed request payload.
	ErrInvalidPayload = ErrorCode{Code: "INVALID_PAYLOAD", Symbol: "INVALID_PAYLOAD", Message: "invalid payload"}
	// ErrTooManyRequests indicates rate limiting.
	ErrTooManyRequests = ErrorCode{Code: "RATE_LIMITED", Symbol: "RATE_LIMITED", Message: "too many requests"}
	// ErrInternal indicates unknown server error.
	ErrInternal = ErrorCode{Code: "INTERNAL_ERROR", Symbol: "INTERNAL_ERROR", Message: "internal server error"}
)

// Registry exposes a static list for validation or docs.
var Registry = []ErrorCode{
	OK,
	ErrAuthExpired,
	ErrTokenInvalid,
	ErrPermissionDenied,
	ErrInvalidPayload,
	ErrTooManyRequests,
	ErrInternal,
}

// Lookup returns the registered entry for code.
func Lookup(code ReturnCode) (ErrorCode, bool) {
	for _, ec := range Registry {
		if ec.Code == code {
			return ec, true
		}
	}
	return ErrorCode{}, false
}

// Set is an immutable membership set of return codes.
type Set struct {
	m map[ReturnCode]struct{}
}

// NewSet builds a Set, ignoring blank entries.
func NewSet(list ...string) Set {
	s := Set{m: make(map[ReturnCode]struct{}, len(list))}
	for _, c := range list {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		s.m[ReturnCode(c)] = struct{}{}
	}
	return s
}

// Has reports whether code is a member.
func (s Set) Has(code ReturnCode) bool {
	if s.m == nil {
		return false
	}
	_, ok := s.m[ReturnCode(strings.TrimSpace(string(code)))]
	return ok
}

// Len returns the number of codes in the set.
func (s Set) Len() int { return len(s.m) }
