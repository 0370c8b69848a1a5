package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	App     AppConfig        `yaml:"app" mapstructure:"app"`
	HTTP    HTTPClientConfig `yaml:"http" mapstructure:"http"`
	Session SessionConfig    `yaml:"session" mapstructure:"session"`
}

func (c *testConfig) ApplyDefaults() {
	c.HTTP.ApplyDefaults()
	c.Session.ApplyDefaults()
}

const testYAML = `
app:
  name: probe
http:
  base_url: https://api.example.com/
  more_base_url: true
  base_urls:
    upload: https://upload.example.com/
  connect_timeout: 3
  read_timeout: "1500ms"
  success_codes: ["0", "200"]
  envelope:
    code: meta.code
`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "probe.yaml"), []byte(testYAML), 0o600))
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))

	cfg := &testConfig{}
	require.NoError(t, LoadConfig(cfg, LoadOptions{ConfigPath: dir, ConfigName: "probe"}))

	assert.Equal(t, "probe", cfg.App.Name)
	assert.Equal(t, "https://upload.example.com/", cfg.HTTP.BaseURLs["upload"])
	assert.Equal(t, 3*time.Second, cfg.HTTP.ConnectTimeout.Duration())
	assert.Equal(t, Duration(2), cfg.HTTP.ReadTimeout)
	assert.Equal(t, Duration(10), cfg.HTTP.WriteTimeout)
	assert.Equal(t, []string{"0", "200"}, cfg.HTTP.SuccessCodes)
	assert.Equal(t, "meta.code", cfg.HTTP.Envelope.Code)
	assert.Equal(t, "message", cfg.HTTP.Envelope.Message)
	assert.Equal(t, []string{"AUTH_EXPIRED", "TOKEN_INVALID"}, cfg.Session.ReauthCodes)
	assert.NoError(t, cfg.HTTP.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))

	cfg := &testConfig{}
	assert.Error(t, LoadConfig(cfg, LoadOptions{ConfigPath: dir, ConfigName: "nope"}))
	require.NoError(t, LoadConfig(cfg, LoadOptions{ConfigPath: dir, ConfigName: "nope", AllowNoConfig: true}))
	assert.Equal(t, []string{"0"}, cfg.HTTP.SuccessCodes)
}

func TestHTTPClientConfigValidate(t *testing.T) {
	cfg := HTTPClientConfig{}
	assert.Error(t, cfg.Validate())

	cfg = HTTPClientConfig{BaseURL: "https://api.example.com", MoreBaseURL: true, BaseURLs: map[string]string{"bad": "::"}}
	assert.Error(t, cfg.Validate())
}

func TestHTTPRetryOnConnectionFailureDefault(t *testing.T) {
	var cfg HTTPClientConfig
	assert.True(t, cfg.RetryEnabled())
	cfg.ApplyDefaults()
	require.NotNil(t, cfg.RetryOnConnectionFailure)
	assert.True(t, *cfg.RetryOnConnectionFailure)

	off := false
	cfg = HTTPClientConfig{RetryOnConnectionFailure: &off}
	cfg.ApplyDefaults()
	assert.False(t, cfg.RetryEnabled())
}

func TestParseDuration(t *testing.T) {
	for in, want := range map[string]Duration{
		"":      0,
		"15":    15,
		"30s":   30,
		"1m":    60,
		"200ms": 1,
	} {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDuration("soon")
	assert.Error(t, err)
}

func TestGetSecretOrEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(file, []byte("from-file\n"), 0o600))

	t.Setenv("PROBE_TOKEN", "from-env")
	assert.Equal(t, "from-env", GetSecretOrEnv("PROBE_TOKEN", "def"))
	t.Setenv("PROBE_TOKEN_FILE", file)
	assert.Equal(t, "from-file", GetSecretOrEnv("PROBE_TOKEN", "def"))
	assert.Equal(t, "def", GetSecretOrEnv("PROBE_UNSET_SECRET", "def"))

	var target string
	err := ApplySecrets([]SecretDefinition{{Name: "PROBE_MISSING_SECRET", Target: &target, Required: true}})
	var nf *SecretNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "PROBE_MISSING_SECRET", nf.Name)
}
