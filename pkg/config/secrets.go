package config

import (
	"os"
	"strings"
)

// GetSecretOrEnv 从 Docker Secret 文件或环境变量读取敏感信息
// 优先级: {NAME}_FILE 指定的文件 > {NAME} 环境变量 > 默认值
//
// 示例:
//
//	token := GetSecretOrEnv("PROBE_ACCESS_TOKEN", "")
//	// PROBE_ACCESS_TOKEN_FILE=/run/secrets/probe-token 存在时读取文件内容
func GetSecretOrEnv(name string, defaultValue string) string {
	if filePath := os.Getenv(name + "_FILE"); filePath != "" {
		if data, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}

// SecretDefinition Secret 定义
type SecretDefinition struct {
	Name     string  // Secret 名称 (如 KAFKA_PASSWORD)
	Target   *string // 目标字段指针
	Default  string  // 默认值
	Required bool    // 是否必需
}

// SecretNotFoundError Secret 未找到错误
type SecretNotFoundError struct {
	Name string
}

func (e *SecretNotFoundError) Error() string {
	return "required secret not found: " + e.Name
}

// ApplySecrets 将 Secrets 注入到目标字段
func ApplySecrets(secrets []SecretDefinition) error {
	for _, s := range secrets {
		value := GetSecretOrEnv(s.Name, s.Default)
		if s.Required && value == "" {
			return &SecretNotFoundError{Name: s.Name}
		}
		if s.Target != nil && value != "" {
			*s.Target = value
		}
	}
	return nil
}

// LoadConfigWithSecrets 加载配置并注入 Secrets
//
// 示例:
//
//	cfg := &ProbeConfig{}
//	secretDefs := []config.SecretDefinition{
//	    {Name: "REDIS_PASSWORD", Target: &cfg.Redis.Password},
//	    {Name: "KAFKA_PASSWORD", Target: &cfg.Kafka.Password},
//	}
//	if err := config.LoadConfigWithSecrets(cfg, secretDefs); err != nil {
//	    log.Fatal(err)
//	}
func LoadConfigWithSecrets(cfg any, secrets []SecretDefinition, opts ...LoadOptions) error {
	if err := LoadConfig(cfg, opts...); err != nil {
		return err
	}
	return ApplySecrets(secrets)
}
