package auth

import (
	"context"

	"github.com/Goden-Gun/httpcall-lib/pkg/codes"
	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
	"github.com/Goden-Gun/httpcall-lib/pkg/viewchange"
)

// ExpiredHandler is told that the server rejected the session.
type ExpiredHandler func(ctx context.Context, code codes.ReturnCode, message string)

// ReauthOption configures a ReauthRule.
type ReauthOption func(*ReauthRule)

// WithReauthCodes replaces the codes the rule applies to.
func WithReauthCodes(list ...string) ReauthOption {
	return func(r *ReauthRule) {
		r.codes = codes.NewSet(list...)
	}
}

// WithOnExpired registers the hook that sends the user back to sign-in.
func WithOnExpired(fn ExpiredHandler) ReauthOption {
	return func(r *ReauthRule) {
		r.onExpired = fn
	}
}

// ReauthRule is an interceptor rule for codes meaning the session is no longer
// valid. It clears the stored token, calls the expired hook and shows the
// server message as a Toast.
type ReauthRule struct {
	session   *Session
	codes     codes.Set
	onExpired ExpiredHandler
}

// NewReauthRule applies to AUTH_EXPIRED and TOKEN_INVALID unless overridden.
func NewReauthRule(session *Session, opts ...ReauthOption) *ReauthRule {
	r := &ReauthRule{
		session: session,
		codes:   codes.NewSet(codes.ErrAuthExpired.Code.String(), codes.ErrTokenInvalid.Code.String()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ReauthRule) Applies(code codes.ReturnCode) bool {
	return r.codes.Has(code)
}

func (r *ReauthRule) Handle(ctx context.Context, code codes.ReturnCode, message string, emit viewchange.Emitter) {
	entry := log.WithTrace(ctx).WithField("return_code", code.String())
	if r.session != nil {
		if err := r.session.Clear(ctx); err != nil {
			entry.WithError(err).Warn("clear session token failed")
		}
	}
	entry.Info("session rejected by server")

	if r.onExpired != nil {
		r.onExpired(ctx, code, message)
	}
	if message == "" {
		if ec, ok := codes.Lookup(code); ok {
			message = ec.Message
		}
	}
	viewchange.OrDiscard(emit).Emit(viewchange.Toast(message))
}
