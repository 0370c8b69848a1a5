// Package apiclient is the business HTTP client: a configured resty client
// whose every call is classified, routed through the interceptor chain and
// surfaced as view-change events.
package apiclient

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/Goden-Gun/httpcall-lib/pkg/classifier"
	"github.com/Goden-Gun/httpcall-lib/pkg/config"
	"github.com/Goden-Gun/httpcall-lib/pkg/interceptor"
	"github.com/Goden-Gun/httpcall-lib/pkg/report"
)

const (
	// HeaderRequestID carries the per-call id.
	HeaderRequestID = "X-Request-Id"
)

var (
	// ErrBaseURLRequired is returned by New when no base URL is configured.
	ErrBaseURLRequired = errors.New("apiclient: base url required")
)

// Option configures a Client.
type Option func(*options)

type options struct {
	rules       []interceptor.Rule
	middlewares []resty.RequestMiddleware
	reporter    report.Reporter
	messages    Messages
	reportBody  int
	transport   bool
}

// WithRules registers interceptor rules in evaluation order.
func WithRules(rules ...interceptor.Rule) Option {
	return func(o *options) {
		o.rules = append(o.rules, rules...)
	}
}

// WithMiddleware registers request middlewares. They run after base URL
// routing, in registration order.
func WithMiddleware(m ...resty.RequestMiddleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, m...)
	}
}

// WithReporter receives unhandled failures.
func WithReporter(r report.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithMessages overrides the texts of client-built events.
func WithMessages(m Messages) Option {
	return func(o *options) {
		o.messages = m
	}
}

// WithReportBody attaches up to n bytes of the response body to reported failures.
func WithReportBody(n int) Option {
	return func(o *options) {
		o.reportBody = n
	}
}

// WithoutCustomTransport keeps resty's default transport, ignoring the
// configured connect/read/write timeouts.
func WithoutCustomTransport() Option {
	return func(o *options) {
		o.transport = false
	}
}

// Client is safe for concurrent use.
type Client struct {
	cfg        config.HTTPClientConfig
	rc         *resty.Client
	classifier *classifier.Classifier
	reporter   report.Reporter
	messages   Messages
	reportBody int
}

// New builds a client from cfg.
func New(cfg config.HTTPClientConfig, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("apiclient: %w", err)
	}

	o := options{transport: true}
	for _, opt := range opts {
		opt(&o)
	}
	o.messages.applyDefaults()
	if o.reporter == nil {
		o.reporter = report.Nop
	}

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetLogger(restyLogger{})
	if o.transport {
		rc.SetTransport(newTransport(cfg.ConnectTimeout.Duration(), cfg.ReadTimeout.Duration(), cfg.WriteTimeout.Duration()))
	}
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	if len(cfg.Headers) > 0 {
		rc.SetHeaders(cfg.Headers)
	}
	if cfg.RetryEnabled() {
		rc.SetRetryCount(cfg.RetryCount).
			SetRetryWaitTime(cfg.RetryWait.Duration()).
			AddRetryCondition(connectionFailed)
	}

	rc.OnBeforeRequest(baseURLMiddleware(cfg.MoreBaseURL, cfg.BaseURLs))
	for _, m := range o.middlewares {
		if m != nil {
			rc.OnBeforeRequest(m)
		}
	}

	return &Client{
		cfg: cfg,
		rc:  rc,
		classifier: classifier.New(
			classifier.WithSuccessCodes(cfg.SuccessCodes...),
			classifier.WithFields(cfg.Envelope),
			classifier.WithChain(interceptor.NewChain(o.rules...)),
		),
		reporter:   o.reporter,
		messages:   o.messages,
		reportBody: o.reportBody,
	}, nil
}

// connectionFailed retries only when no response arrived.
func connectionFailed(r *resty.Response, err error) bool {
	if err == nil {
		return false
	}
	return r == nil || r.RawResponse == nil
}

// Resty exposes the underlying client for calls outside the envelope contract.
func (c *Client) Resty() *resty.Client { return c.rc }

// Classifier returns the classifier used for every call.
func (c *Client) Classifier() *classifier.Classifier { return c.classifier }
