// Package report publishes records of failed calls that no interceptor rule
// absorbed, so they can be inspected outside the device or process.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
)

// Failure describes one unhandled failed call.
type Failure struct {
	ID         string    `json:"id"`
	Time       time.Time `json:"time"`
	Outcome    string    `json:"outcome"`
	RequestID  string    `json:"request_id,omitempty"`
	Method     string    `json:"method"`
	URL        string    `json:"url"`
	HTTPStatus int       `json:"http_status,omitempty"`
	ReturnCode string    `json:"return_code,omitempty"`
	Message    string    `json:"message,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timeout    bool      `json:"timeout,omitempty"`
	Body       string    `json:"body,omitempty"`
	TraceID    string    `json:"trace_id,omitempty"`
}

// Stamp fills ID, Time and TraceID when unset.
func (f *Failure) Stamp(ctx context.Context) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Time.IsZero() {
		f.Time = time.Now().UTC()
	}
	if f.TraceID == "" && ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			f.TraceID = sc.TraceID().String()
		}
	}
}

// Reporter receives failures. Implementations must be safe for concurrent use.
type Reporter interface {
	Report(ctx context.Context, f Failure) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, f Failure) error

func (fn ReporterFunc) Report(ctx context.Context, f Failure) error { return fn(ctx, f) }

// Nop discards every failure.
var Nop Reporter = ReporterFunc(func(context.Context, Failure) error { return nil })

// LogReporter writes failures to the shared logger.
type LogReporter struct{}

func (LogReporter) Report(ctx context.Context, f Failure) error {
	f.Stamp(ctx)
	entry := log.WithTrace(ctx).WithFields(log.Fields{
		"failure_id":  f.ID,
		"outcome":     f.Outcome,
		"request_id":  f.RequestID,
		"method":      f.Method,
		"url":         f.URL,
		"http_status": f.HTTPStatus,
	})
	if f.ReturnCode != "" {
		entry = entry.WithField("return_code", f.ReturnCode)
	}
	if f.Error != "" {
		entry = entry.WithField("error", f.Error)
	}
	entry.Warn("call failed")
	return nil
}

// Multi fans a failure out to every reporter and joins their errors.
func Multi(reporters ...Reporter) Reporter {
	list := make([]Reporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			list = append(list, r)
		}
	}
	return ReporterFunc(func(ctx context.Context, f Failure) error {
		f.Stamp(ctx)
		var errs []error
		for _, r := range list {
			if err := r.Report(ctx, f); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// Truncate limits body to max bytes.
func Truncate(body []byte, max int) string {
	if max <= 0 || len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
