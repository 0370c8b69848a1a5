package bootstrap

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"

	"github.com/Goden-Gun/httpcall-lib/pkg/config"
)

// LoggerOptions 日志初始化选项
type LoggerOptions struct {
	// ServiceName 服务名称，用于日志文件命名
	ServiceName string
	// Output 默认 os.Stdout
	Output io.Writer
	// AddContainerHook 是否添加容器ID钩子
	AddContainerHook bool
}

// containerHook 添加容器ID到日志
type containerHook struct {
	containerID string
}

func (h *containerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *containerHook) Fire(entry *logrus.Entry) error {
	entry.Data["container_id"] = h.containerID
	return nil
}

// detectContainerID 检测容器ID
func detectContainerID() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}
	if data, err := os.ReadFile("/etc/hostname"); err == nil {
		if hostname := strings.TrimSpace(string(data)); hostname != "" {
			return hostname
		}
	}
	return "unknown"
}

// InitLogger 初始化日志，文件输出由 cfg.File 决定
func InitLogger(cfg config.LogConfig) error {
	return InitLoggerWithOptions(cfg, LoggerOptions{})
}

// InitLoggerWithFile 初始化日志并强制输出到文件
func InitLoggerWithFile(cfg config.LogConfig, serviceName string) error {
	cfg.File.Enabled = true
	return InitLoggerWithOptions(cfg, LoggerOptions{ServiceName: serviceName, AddContainerHook: true})
}

// InitLoggerWithOptions 使用完整选项初始化日志
func InitLoggerWithOptions(cfg config.LogConfig, opts LoggerOptions) error {
	cfg.ApplyDefaults()

	switch cfg.Format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if lvl, err := logrus.ParseLevel(cfg.Level); err == nil {
		logrus.SetLevel(lvl)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.Warnf("invalid log level %q, fallback to info", cfg.Level)
	}

	logrus.SetReportCaller(cfg.ReportCaller)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.File.Enabled {
		writer, err := newRotateWriter(cfg.File, opts.ServiceName)
		if err != nil {
			return err
		}
		out = io.MultiWriter(out, writer)
	}
	logrus.SetOutput(out)

	if opts.AddContainerHook {
		logrus.AddHook(&containerHook{containerID: detectContainerID()})
	}
	return nil
}

// newRotateWriter 按天切分日志文件
func newRotateWriter(fileCfg config.LogFileConfig, serviceName string) (io.Writer, error) {
	if err := os.MkdirAll(fileCfg.Dir, 0o755); err != nil {
		logrus.Errorf("创建日志目录失败: %v", err)
		return nil, err
	}

	filename := fileCfg.Filename
	if filename == "" {
		filename = serviceName
	}
	if filename == "" {
		filename = "httpcall"
	}

	writer, err := rotatelogs.New(
		filepath.Join(fileCfg.Dir, filename+".%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(fileCfg.Dir, filename+".log")),
		rotatelogs.WithMaxAge(time.Duration(fileCfg.MaxAgeDays)*24*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(fileCfg.RotationDays)*24*time.Hour),
	)
	if err != nil {
		logrus.Errorf("设置日志输出失败: %v", err)
		return nil, err
	}
	return writer, nil
}
