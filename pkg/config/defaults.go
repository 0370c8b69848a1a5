package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ==================== LogConfig 默认值 ====================

// ApplyDefaults 应用日志配置默认值
func (l *LogConfig) ApplyDefaults() {
	if l.Format == "" {
		l.Format = "json"
	}
	if l.Level == "" {
		l.Level = "info"
	}
	if l.File.Dir == "" {
		l.File.Dir = "./logs"
	}
	if l.File.MaxAgeDays <= 0 {
		l.File.MaxAgeDays = 7
	}
	if l.File.RotationDays <= 0 {
		l.File.RotationDays = 1
	}
}

// ==================== HTTPClientConfig 默认值 ====================

// ApplyDefaults 应用 HTTP 客户端配置默认值
func (h *HTTPClientConfig) ApplyDefaults() {
	if h.ConnectTimeout <= 0 {
		h.ConnectTimeout = 10
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 10
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 10
	}
	if h.RetryOnConnectionFailure == nil {
		enabled := true
		h.RetryOnConnectionFailure = &enabled
	}
	if h.RetryCount <= 0 {
		h.RetryCount = 1
	}
	if len(h.SuccessCodes) == 0 {
		h.SuccessCodes = []string{"0"}
	}
	h.Envelope.ApplyDefaults()
}

// RetryEnabled 是否在连接失败时重试，未配置视为开启
func (h *HTTPClientConfig) RetryEnabled() bool {
	return h.RetryOnConnectionFailure == nil || *h.RetryOnConnectionFailure
}

// Validate 校验 HTTP 客户端配置
func (h *HTTPClientConfig) Validate() error {
	if strings.TrimSpace(h.BaseURL) == "" {
		return errors.New("http client base_url is empty")
	}
	if _, err := url.ParseRequestURI(h.BaseURL); err != nil {
		return fmt.Errorf("http client base_url invalid: %w", err)
	}
	if h.MoreBaseURL {
		for name, raw := range h.BaseURLs {
			if _, err := url.ParseRequestURI(raw); err != nil {
				return fmt.Errorf("http client base_urls[%s] invalid: %w", name, err)
			}
		}
	}
	return nil
}

// ==================== SessionConfig 默认值 ====================

// ApplyDefaults 应用会话配置默认值
func (s *SessionConfig) ApplyDefaults() {
	if s.Store == "" {
		s.Store = "memory"
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "httpcall:session:"
	}
	if s.RefreshLeeway < 0 {
		s.RefreshLeeway = 0
	}
	if len(s.ReauthCodes) == 0 {
		s.ReauthCodes = []string{"AUTH_EXPIRED", "TOKEN_INVALID"}
	}
}

// ==================== KafkaConfig 默认值 ====================

// ApplyDefaults 应用 Kafka 配置默认值
func (k *KafkaConfig) ApplyDefaults() {
	if k.Topic == "" {
		k.Topic = "httpcall.failures"
	}
	if k.RequiredAcks == "" {
		k.RequiredAcks = "all"
	}
	if k.MaxAttempts <= 0 {
		k.MaxAttempts = 3
	}
}

// ==================== ReportConfig 默认值 ====================

// ApplyDefaults 应用上报配置默认值
func (r *ReportConfig) ApplyDefaults() {
	if r.Sink == "" {
		r.Sink = "log"
	}
	if r.MaxBodyBytes <= 0 {
		r.MaxBodyBytes = 2048
	}
}

// ==================== TracingConfig 默认值 ====================

// ApplyDefaults 应用 Tracing 配置默认值
func (t *TracingConfig) ApplyDefaults() {
	if t.Exporter == "" {
		t.Exporter = "stdout"
	}
	if t.SampleRatio <= 0 {
		t.SampleRatio = 1.0
	}
}
