package apiclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Goden-Gun/httpcall-lib/pkg/classifier"
	"github.com/Goden-Gun/httpcall-lib/pkg/codes"
	"github.com/Goden-Gun/httpcall-lib/pkg/envelope"
	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
	"github.com/Goden-Gun/httpcall-lib/pkg/report"
	"github.com/Goden-Gun/httpcall-lib/pkg/tracing"
	"github.com/Goden-Gun/httpcall-lib/pkg/viewchange"
)

// CallOption configures one call.
type CallOption func(*call)

type call struct {
	display     Display
	emitter     viewchange.Emitter
	progressMsg string
	query       map[string]string
	headers     map[string]string
	body        any
	baseURLName string
	out         any
	emptyText   string
	isEmpty     func(*envelope.Envelope) bool
	retry       func()
}

// WithDisplay selects the events emitted around the call.
func WithDisplay(d Display) CallOption {
	return func(c *call) { c.display = d }
}

// WithEmitter sets where the call's events go.
func WithEmitter(e viewchange.Emitter) CallOption {
	return func(c *call) { c.emitter = e }
}

// WithProgressMessage sets the DialogProgress text in DisplayToast mode.
func WithProgressMessage(msg string) CallOption {
	return func(c *call) { c.progressMsg = msg }
}

// WithQuery adds a query parameter.
func WithQuery(key, value string) CallOption {
	return func(c *call) {
		if c.query == nil {
			c.query = make(map[string]string)
		}
		c.query[key] = value
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) CallOption {
	return func(c *call) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

// WithBody sets the request body; structs and maps are sent as JSON.
func WithBody(body any) CallOption {
	return func(c *call) { c.body = body }
}

// WithBaseURLName routes the call to a named base URL.
func WithBaseURLName(name string) CallOption {
	return func(c *call) { c.baseURLName = name }
}

// WithResult binds the envelope data of a successful call into out.
func WithResult(out any) CallOption {
	return func(c *call) { c.out = out }
}

// WithEmpty turns a successful DisplayReplace call into an Empty state when
// isEmpty reports true. A nil isEmpty checks for absent or empty data.
func WithEmpty(content string, isEmpty func(*envelope.Envelope) bool) CallOption {
	return func(c *call) {
		c.emptyText = content
		c.isEmpty = isEmpty
		if c.isEmpty == nil {
			c.isEmpty = (*envelope.Envelope).EmptyData
		}
	}
}

// WithRetry sets the retry action attached to NetworkError and Empty events.
// Without it the action re-issues the same call asynchronously.
func WithRetry(fn func()) CallOption {
	return func(c *call) { c.retry = fn }
}

// Response is the outcome of one call.
type Response struct {
	classifier.Result
	RequestID string
	Method    string
	URL       string
	Header    http.Header
	Duration  time.Duration
}

// Get issues a GET.
func (c *Client) Get(ctx context.Context, path string, opts ...CallOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, opts...)
}

// Post issues a POST.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...CallOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, append(opts, WithBody(body))...)
}

// Put issues a PUT.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...CallOption) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, append(opts, WithBody(body))...)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, opts...)
}

// Go runs Do on its own goroutine and passes the outcome to done. When ctx is
// cancelled before the call completes, events and done are dropped. The
// returned channel closes once the call has finished.
func (c *Client) Go(ctx context.Context, method, path string, done func(*Response, error), opts ...CallOption) <-chan struct{} {
	if ctx == nil {
		ctx = context.Background()
	}
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		resp, err := c.Do(ctx, method, path, opts...)
		if done != nil && ctx.Err() == nil {
			done(resp, err)
		}
	}()
	return finished
}

// Do performs one call. The Response is always non-nil; the error is nil on
// Success, a *classifier.BusinessError for a business failure, and the
// transport cause otherwise.
func (c *Client) Do(ctx context.Context, method, path string, opts ...CallOption) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cl := &call{}
	for _, opt := range opts {
		opt(cl)
	}
	if cl.retry == nil {
		parent := ctx
		cl.retry = func() { c.Go(parent, method, path, nil, opts...) }
	}
	emit := guard(ctx, cl.emitter)

	resp := &Response{RequestID: uuid.NewString(), Method: method, URL: path}
	ctx, span := tracing.StartCall(ctx, method, path)
	entry := log.WithCall(ctx, resp.RequestID, method, path)

	c.begin(cl, emit)
	start := time.Now()
	in := c.send(ctx, cl, resp)
	resp.Duration = time.Since(start)

	if cl.display == DisplayToast {
		emit.Emit(viewchange.Dismiss())
	}
	res := c.classifier.Classify(ctx, in, emit)
	if res.Kind == classifier.Success && cl.out != nil {
		if err := res.Envelope.Bind(cl.out); err != nil {
			res.Kind = classifier.TransportFailure
			res.Cause = err
		}
	}
	resp.Result = res
	c.finish(cl, res, emit)

	fields := log.Fields{"outcome": res.Kind.String(), "status": res.HTTPStatus, "duration_ms": resp.Duration.Milliseconds()}
	switch res.Kind {
	case classifier.Success:
		entry.WithFields(fields).Debug("call finished")
	case classifier.BusinessFailure:
		fields["return_code"] = res.Code.String()
		fields["handled"] = res.Handled
		entry.WithFields(fields).Warn("call rejected by server")
	default:
		if errors.Is(res.Cause, context.Canceled) {
			entry.WithFields(fields).Debug("call cancelled")
		} else {
			entry.WithFields(fields).WithError(res.Cause).Error("call failed")
		}
	}

	if !res.Handled && res.Kind != classifier.Success && !errors.Is(res.Cause, context.Canceled) {
		c.report(ctx, resp, in.Body)
	}
	err := res.Err()
	tracing.EndCall(span, res.Kind.String(), res.HTTPStatus, err)
	return resp, err
}

func (c *Client) send(ctx context.Context, cl *call, resp *Response) classifier.Input {
	req := c.rc.R().SetContext(ctx).SetHeader(HeaderRequestID, resp.RequestID)
	if len(cl.headers) > 0 {
		req.SetHeaders(cl.headers)
	}
	if len(cl.query) > 0 {
		req.SetQueryParams(cl.query)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}
	if cl.baseURLName != "" {
		req.SetHeader(HeaderBaseURLName, cl.baseURLName)
	}
	tracing.Inject(ctx, req.Header)

	r, err := req.Execute(resp.Method, resp.URL)
	if r == nil {
		return classifier.Input{Err: err}
	}
	if r.Request != nil && r.Request.URL != "" {
		resp.URL = r.Request.URL
	}
	resp.Header = r.Header()
	if err != nil {
		return classifier.Input{HTTPStatus: r.StatusCode(), Err: err}
	}
	return classifier.Input{HTTPStatus: r.StatusCode(), Body: r.Body()}
}

// begin emits the in-flight state.
func (c *Client) begin(cl *call, emit viewchange.Emitter) {
	switch cl.display {
	case DisplayToast:
		emit.Emit(viewchange.DialogProgress(cl.progressMsg))
	case DisplayReplace:
		emit.Emit(viewchange.Loading())
	}
}

// finish emits the terminal state. Handled business failures are left to
// their rule.
func (c *Client) finish(cl *call, res classifier.Result, emit viewchange.Emitter) {
	if cl.display == DisplayNone || res.Handled {
		return
	}
	switch res.Kind {
	case classifier.Success:
		if cl.display == DisplayReplace && cl.isEmpty != nil && cl.isEmpty(res.Envelope) {
			text := cl.emptyText
			if text == "" {
				text = c.messages.Empty
			}
			emit.Emit(viewchange.Empty(text, cl.retry))
			return
		}
		emit.Emit(viewchange.Restore())
	case classifier.BusinessFailure:
		msg := c.businessMessage(res)
		if cl.display == DisplayToast {
			emit.Emit(viewchange.Toast(msg))
			return
		}
		emit.Emit(viewchange.NetworkError(msg, cl.retry))
	default:
		msg := c.messages.Network
		if classifier.IsTimeout(res.Cause) {
			msg = c.messages.Timeout
		}
		emit.Emit(viewchange.NetworkError(msg, cl.retry))
	}
}

func (c *Client) businessMessage(res classifier.Result) string {
	if res.Message != "" {
		return res.Message
	}
	if ec, ok := codes.Lookup(res.Code); ok && ec.Message != "" {
		return ec.Message
	}
	return c.messages.Business
}

func (c *Client) report(ctx context.Context, resp *Response, body []byte) {
	f := report.Failure{
		Outcome:    resp.Kind.String(),
		RequestID:  resp.RequestID,
		Method:     resp.Method,
		URL:        resp.URL,
		HTTPStatus: resp.HTTPStatus,
		ReturnCode: resp.Code.String(),
		Message:    resp.Message,
	}
	if resp.Cause != nil {
		f.Error = resp.Cause.Error()
		f.Timeout = classifier.IsTimeout(resp.Cause)
		var de *envelope.DecodeError
		if errors.As(resp.Cause, &de) {
			body = de.Raw
		}
	}
	if c.reportBody > 0 {
		f.Body = report.Truncate(body, c.reportBody)
	}
	f.Stamp(ctx)
	if err := c.reporter.Report(context.WithoutCancel(ctx), f); err != nil {
		log.WithTrace(ctx).WithError(err).Warn("report failure")
	}
}

// guard drops events once ctx is done.
func guard(ctx context.Context, e viewchange.Emitter) viewchange.Emitter {
	e = viewchange.OrDiscard(e)
	return viewchange.EmitterFunc(func(ev viewchange.Event) {
		if ctx.Err() != nil {
			return
		}
		e.Emit(ev)
	})
}
