package auth

import (
	"errors"

	"github.com/go-resty/resty/v2"

	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
)

// BearerMiddleware attaches "Authorization: Bearer <token>" when the session
// holds a token that has not expired. Requests that already carry an
// Authorization header are left alone.
func BearerMiddleware(session *Session) resty.RequestMiddleware {
	return func(_ *resty.Client, r *resty.Request) error {
		if session == nil || r.Header.Get("Authorization") != "" {
			return nil
		}
		token, err := session.Token(r.Context())
		switch {
		case err == nil:
			r.SetAuthToken(token)
		case errors.Is(err, ErrTokenNotFound):
		case errors.Is(err, ErrTokenExpired):
			log.WithTrace(r.Context()).WithField("session", session.Key()).Debug("session token expired, sending anonymously")
		default:
			log.WithTrace(r.Context()).WithError(err).Warn("session token lookup failed")
		}
		return nil
	}
}
