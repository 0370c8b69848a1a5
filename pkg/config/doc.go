// Package config provides the configuration types and loader shared by
// httpcall-lib consumers.
//
// Usage:
//
//	import "github.com/Goden-Gun/httpcall-lib/pkg/config"
//
//	type ProbeConfig struct {
//	    App     config.AppConfig        `yaml:"app" mapstructure:"app"`
//	    Log     config.LogConfig        `yaml:"log" mapstructure:"log"`
//	    HTTP    config.HTTPClientConfig `yaml:"http" mapstructure:"http"`
//	    Session config.SessionConfig    `yaml:"session" mapstructure:"session"`
//	}
//
//	func (c *ProbeConfig) ApplyDefaults() {
//	    c.Log.ApplyDefaults()
//	    c.HTTP.ApplyDefaults()
//	    c.Session.ApplyDefaults()
//	}
//
//	cfg := &ProbeConfig{}
//	if err := config.LoadConfig(cfg, config.LoadOptions{EnvPrefix: "PROBE"}); err != nil {
//	    return err
//	}
//
// Durations are whole seconds and accept either a number or a Go duration
// string ("30s", "1m").
package config
