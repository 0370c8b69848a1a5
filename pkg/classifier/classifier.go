// Package classifier turns a finished HTTP exchange into exactly one of
// Success, BusinessError or TransportError, routing non-success return codes
// through an interceptor chain.
package classifier

import (
	"context"

	"github.com/Goden-Gun/httpcall-lib/pkg/codes"
	"github.com/Goden-Gun/httpcall-lib/pkg/envelope"
	"github.com/Goden-Gun/httpcall-lib/pkg/interceptor"
	"github.com/Goden-Gun/httpcall-lib/pkg/viewchange"
)

// Kind is the terminal classification of a call.
type Kind int

const (
	Success Kind = iota + 1
	BusinessFailure
	TransportFailure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case BusinessFailure:
		return "business_error"
	case TransportFailure:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Input is what the transport produced. Err is set when no usable response
// arrived (timeouts, connection errors, cancelled contexts).
type Input struct {
	HTTPStatus int
	Body       []byte
	Err        error
}

// Result is the classification of one call.
type Result struct {
	Kind       Kind
	HTTPStatus int
	Code       codes.ReturnCode
	Message    string
	Envelope   *envelope.Envelope
	// Cause is set for TransportFailure.
	Cause error
	// Handled is true when an interceptor rule absorbed a BusinessFailure.
	Handled bool
}

// OK reports a Success result.
func (r Result) OK() bool { return r.Kind == Success }

// Err returns nil for Success, *BusinessError for a business failure and the
// transport cause otherwise.
func (r Result) Err() error {
	switch r.Kind {
	case Success:
		return nil
	case BusinessFailure:
		return &BusinessError{Code: r.Code, Message: r.Message, HTTPStatus: r.HTTPStatus, Handled: r.Handled}
	default:
		return r.Cause
	}
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithSuccessCodes replaces the success code set. Blank entries are ignored.
func WithSuccessCodes(list ...string) Option {
	return func(c *Classifier) {
		c.success = codes.NewSet(list...)
	}
}

// WithFields sets the envelope member paths.
func WithFields(f envelope.Fields) Option {
	return func(c *Classifier) {
		f.ApplyDefaults()
		c.fields = f
	}
}

// WithChain sets the interceptor chain consulted for business failures.
func WithChain(chain *interceptor.Chain) Option {
	return func(c *Classifier) {
		c.chain = chain
	}
}

// Classifier is read-only after New and shared across concurrent calls.
type Classifier struct {
	success codes.Set
	fields  envelope.Fields
	chain   *interceptor.Chain
}

// New builds a classifier. The default success set is {"0"}.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		success: codes.NewSet(codes.OK.Code.String()),
		fields:  envelope.DefaultFields(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.success.Len() == 0 {
		c.success = codes.NewSet(codes.OK.Code.String())
	}
	return c
}

// Chain returns the configured interceptor chain, possibly nil.
func (c *Classifier) Chain() *interceptor.Chain { return c.chain }

// IsSuccessCode reports whether code is in the success set.
func (c *Classifier) IsSuccessCode(code codes.ReturnCode) bool { return c.success.Has(code) }

// Classify decides the outcome of one call. Transport failures never reach
// the chain. A business failure is offered to the chain, whose matching rule
// may emit events through emit.
func (c *Classifier) Classify(ctx context.Context, in Input, emit viewchange.Emitter) Result {
	res := Result{HTTPStatus: in.HTTPStatus}
	if in.Err != nil {
		res.Kind = TransportFailure
		res.Cause = in.Err
		return res
	}

	env, decodeErr := envelope.Decode(in.Body, c.fields)
	if !isSuccessStatus(in.HTTPStatus) {
		if decodeErr != nil || !env.HasCode || c.success.Has(env.ReturnCode) {
			res.Kind = TransportFailure
			res.Cause = &HTTPStatusError{StatusCode: in.HTTPStatus, Body: in.Body}
			return res
		}
		return c.business(ctx, res, env, emit)
	}
	if decodeErr != nil {
		res.Kind = TransportFailure
		res.Cause = decodeErr
		return res
	}
	if !env.HasCode || c.success.Has(env.ReturnCode) {
		res.Kind = Success
		res.Code = env.ReturnCode
		res.Message = env.Message
		res.Envelope = env
		return res
	}
	return c.business(ctx, res, env, emit)
}

func (c *Classifier) business(ctx context.Context, res Result, env *envelope.Envelope, emit viewchange.Emitter) Result {
	res.Kind = BusinessFailure
	res.Code = env.ReturnCode
	res.Message = env.Message
	res.Envelope = env
	res.Handled = c.chain.Route(ctx, env.ReturnCode, env.Message, emit)
	return res
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
