package classifier

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/Goden-Gun/httpcall-lib/pkg/codes"
)

// BusinessError is an application-level failure carried in a well-formed envelope.
type BusinessError struct {
	Code       codes.ReturnCode
	Message    string
	HTTPStatus int
	Handled    bool
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("business error: code=%s", e.Code)
	}
	return fmt.Sprintf("business error: code=%s message=%s", e.Code, e.Message)
}

// HTTPStatusError is a non-2xx response without a usable envelope.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// AsBusinessError extracts a *BusinessError from err.
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsTimeout reports whether err is a deadline or network timeout anywhere in
// its chain.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
