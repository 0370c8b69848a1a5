package main

import "github.com/Goden-Gun/httpcall-lib/pkg/config"

type probeConfig struct {
	App     config.AppConfig        `yaml:"app" mapstructure:"app"`
	Log     config.LogConfig        `yaml:"log" mapstructure:"log"`
	HTTP    config.HTTPClientConfig `yaml:"http" mapstructure:"http"`
	Session config.SessionConfig    `yaml:"session" mapstructure:"session"`
	Redis   config.RedisConfig      `yaml:"redis" mapstructure:"redis"`
	Kafka   config.KafkaConfig      `yaml:"kafka" mapstructure:"kafka"`
	Report  config.ReportConfig     `yaml:"report" mapstructure:"report"`
	Tracing config.TracingConfig    `yaml:"tracing" mapstructure:"tracing"`
}

func (c *probeConfig) ApplyDefaults() {
	c.Log.ApplyDefaults()
	c.HTTP.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Kafka.ApplyDefaults()
	c.Report.ApplyDefaults()
}
