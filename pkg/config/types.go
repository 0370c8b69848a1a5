package config

import (
	"github.com/Goden-Gun/httpcall-lib/pkg/envelope"
)

// ==================== 基础配置 ====================

// AppConfig 应用基础配置
type AppConfig struct {
	Env    string `yaml:"env" mapstructure:"env"`
	Name   string `yaml:"name" mapstructure:"name"`
	NodeID string `yaml:"node_id" mapstructure:"node_id"`
}

// LogConfig 日志配置
type LogConfig struct {
	Format       string        `yaml:"format" mapstructure:"format"`
	Level        string        `yaml:"level" mapstructure:"level"`
	ReportCaller bool          `yaml:"report_caller" mapstructure:"report_caller"`
	File         LogFileConfig `yaml:"file" mapstructure:"file"`
}

// LogFileConfig 日志文件配置
type LogFileConfig struct {
	Enabled      bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir          string `yaml:"dir" mapstructure:"dir"`
	Filename     string `yaml:"filename" mapstructure:"filename"`
	MaxAgeDays   int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	RotationDays int    `yaml:"rotation_days" mapstructure:"rotation_days"`
}

// ==================== HTTP 客户端配置 ====================

// HTTPClientConfig 业务 HTTP 客户端配置
type HTTPClientConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// MoreBaseURL 开启后按 X-Base-Url-Name 请求头从 BaseURLs 中选择地址
	MoreBaseURL bool              `yaml:"more_base_url" mapstructure:"more_base_url"`
	BaseURLs    map[string]string `yaml:"base_urls" mapstructure:"base_urls"`

	ConnectTimeout Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
	ReadTimeout    Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout   Duration `yaml:"write_timeout" mapstructure:"write_timeout"`

	// RetryOnConnectionFailure 仅在未收到响应时重试，未配置时默认开启
	RetryOnConnectionFailure *bool    `yaml:"retry_on_connection_failure" mapstructure:"retry_on_connection_failure"`
	RetryCount               int      `yaml:"retry_count" mapstructure:"retry_count"`
	RetryWait                Duration `yaml:"retry_wait" mapstructure:"retry_wait"`

	UserAgent    string            `yaml:"user_agent" mapstructure:"user_agent"`
	Headers      map[string]string `yaml:"headers" mapstructure:"headers"`
	SuccessCodes []string          `yaml:"success_codes" mapstructure:"success_codes"`
	Envelope     envelope.Fields   `yaml:"envelope" mapstructure:"envelope"`
}

// ==================== 会话配置 ====================

// SessionConfig 登录态配置
type SessionConfig struct {
	// Store 支持 memory | redis
	Store     string `yaml:"store" mapstructure:"store"`
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
	// RefreshLeeway token 距离过期小于该值时视为已过期
	RefreshLeeway Duration `yaml:"refresh_leeway" mapstructure:"refresh_leeway"`
	TokenTTL      Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	ReauthCodes   []string `yaml:"reauth_codes" mapstructure:"reauth_codes"`
}

// ==================== 基础设施配置 ====================

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Db       int    `yaml:"db" mapstructure:"db"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	Enabled       bool     `yaml:"enabled" mapstructure:"enabled"`
	Brokers       []string `yaml:"brokers" mapstructure:"brokers"`
	Topic         string   `yaml:"topic" mapstructure:"topic"`
	ClientID      string   `yaml:"client_id" mapstructure:"client_id"`
	Username      string   `yaml:"username" mapstructure:"username"`
	Password      string   `yaml:"password" mapstructure:"password"`
	SASLMechanism string   `yaml:"sasl_mechanism" mapstructure:"sasl_mechanism"`
	TLSEnabled    bool     `yaml:"tls_enabled" mapstructure:"tls_enabled"`
	// RequiredAcks 支持 none | one | all，默认 all
	RequiredAcks string `yaml:"required_acks" mapstructure:"required_acks"`
	MaxAttempts  int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ReportConfig 失败上报配置
type ReportConfig struct {
	// Sink 支持 log | kafka | disabled
	Sink string `yaml:"sink" mapstructure:"sink"`
	// IncludeBody 是否在上报中附带响应体
	IncludeBody  bool `yaml:"include_body" mapstructure:"include_body"`
	MaxBodyBytes int  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ==================== 可观测性配置 ====================

// TracingConfig 分布式追踪配置
type TracingConfig struct {
	Exporter     string            `yaml:"exporter" mapstructure:"exporter"`
	Endpoint     string            `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName  string            `yaml:"service_name" mapstructure:"service_name"`
	Insecure     bool              `yaml:"insecure" mapstructure:"insecure"`
	Headers      map[string]string `yaml:"headers" mapstructure:"headers"`
	SampleRatio  float64           `yaml:"sample_ratio" mapstructure:"sample_ratio"`
	ResourceTags map[string]string `yaml:"resource_tags" mapstructure:"resource_tags"`
}
