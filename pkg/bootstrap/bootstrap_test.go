package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goden-Gun/httpcall-lib/pkg/config"
	"github.com/Goden-Gun/httpcall-lib/pkg/report"
)

func TestInitLoggerWritesFile(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})
	dir := t.TempDir()
	var buf bytes.Buffer
	cfg := config.LogConfig{
		Format: "text",
		Level:  "debug",
		File:   config.LogFileConfig{Enabled: true, Dir: dir},
	}
	require.NoError(t, InitLoggerWithOptions(cfg, LoggerOptions{ServiceName: "probe", Output: &buf}))

	logrus.Debug("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	_, err := os.Lstat(filepath.Join(dir, "probe.log"))
	assert.NoError(t, err)
}

func TestInitLoggerBadLevel(t *testing.T) {
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })
	var buf bytes.Buffer
	require.NoError(t, InitLoggerWithOptions(config.LogConfig{Level: "loud"}, LoggerOptions{Output: &buf}))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestInitReporter(t *testing.T) {
	r, closeFn, err := InitReporter(config.ReportConfig{}, config.KafkaConfig{})
	require.NoError(t, err)
	assert.IsType(t, report.LogReporter{}, r)
	assert.NoError(t, closeFn())

	r, _, err = InitReporter(config.ReportConfig{Sink: "kafka"}, config.KafkaConfig{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, report.LogReporter{}, r)

	_, _, err = InitReporter(config.ReportConfig{Sink: "kafka"}, config.KafkaConfig{Enabled: true})
	assert.Error(t, err)

	_, _, err = InitReporter(config.ReportConfig{Sink: "carrier-pigeon"}, config.KafkaConfig{})
	assert.Error(t, err)
}

func TestInitSessionMemory(t *testing.T) {
	s, closeFn, err := InitSession(context.Background(), config.SessionConfig{}, config.RedisConfig{})
	require.NoError(t, err)
	require.NoError(t, s.SetToken(context.Background(), "opaque"))
	assert.NoError(t, closeFn())

	_, _, err = InitSession(context.Background(), config.SessionConfig{Store: "sqlite"}, config.RedisConfig{})
	assert.Error(t, err)
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), config.TracingConfig{Exporter: "disabled"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
