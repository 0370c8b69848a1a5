package bootstrap

import (
	"fmt"

	"github.com/Goden-Gun/httpcall-lib/pkg/config"
	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
	"github.com/Goden-Gun/httpcall-lib/pkg/report"
)

// InitReporter 按 cfg.Sink 创建失败上报器
// kafka 模式同时写日志，返回的 close 函数负责关闭 producer
func InitReporter(cfg config.ReportConfig, kafkaCfg config.KafkaConfig) (report.Reporter, func() error, error) {
	cfg.ApplyDefaults()
	switch cfg.Sink {
	case "disabled", "none":
		return report.Nop, noopClose, nil
	case "log":
		return report.LogReporter{}, noopClose, nil
	case "kafka":
		if !kafkaCfg.Enabled {
			log.Warn("report sink is kafka but kafka is disabled, falling back to log")
			return report.LogReporter{}, noopClose, nil
		}
		kr, err := report.NewKafkaReporter(kafkaCfg)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("topic", kafkaCfg.Topic).Info("kafka reporter initialized")
		return report.Multi(report.LogReporter{}, kr), kr.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown report sink %q", cfg.Sink)
	}
}
