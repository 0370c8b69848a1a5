// Package logger is the logrus facade used across httpcall-lib.
//
// Import it as `log`; the backend is configured once by pkg/bootstrap.
package logger

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

type Fields = logrus.Fields
type Entry = logrus.Entry
type Level = logrus.Level
type Hook = logrus.Hook

const (
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

func SetOutput(out io.Writer)         { logrus.SetOutput(out) }
func SetLevel(level Level)            { logrus.SetLevel(level) }
func IsLevelEnabled(level Level) bool { return logrus.IsLevelEnabled(level) }
func AddHook(h Hook)                  { logrus.AddHook(h) }

func WithField(key string, value any) *Entry { return logrus.WithField(key, value) }
func WithFields(fields Fields) *Entry        { return logrus.WithFields(fields) }
func WithError(err error) *Entry             { return logrus.WithError(err) }

// WithTrace binds ctx and adds trace_id/span_id when an OpenTelemetry span is active.
func WithTrace(ctx context.Context) *Entry {
	if ctx == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	e := logrus.WithContext(ctx)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		e = e.WithFields(Fields{
			"trace_id": sc.TraceID().String(),
			"span_id":  sc.SpanID().String(),
		})
	}
	return e
}

// WithCall tags an entry with the request identity used by the HTTP client.
func WithCall(ctx context.Context, requestID, method, url string) *Entry {
	return WithTrace(ctx).WithFields(Fields{
		"request_id": requestID,
		"method":     method,
		"url":        url,
	})
}

func Debug(args ...any) { logrus.Debug(args...) }
func Info(args ...any)  { logrus.Info(args...) }
func Warn(args ...any)  { logrus.Warn(args...) }
func Error(args ...any) { logrus.Error(args...) }
func Fatal(args ...any) { logrus.Fatal(args...) }

func Debugf(format string, args ...any) { logrus.Debugf(format, args...) }
func Infof(format string, args ...any)  { logrus.Infof(format, args...) }
func Warnf(format string, args ...any)  { logrus.Warnf(format, args...) }
func Errorf(format string, args ...any) { logrus.Errorf(format, args...) }
func Fatalf(format string, args ...any) { logrus.Fatalf(format, args...) }
