package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	CV      CVConfig
	Metrics MetricsConfig
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// LoggingConfig 控制日志级别与输出格式。
type LoggingConfig struct {
	Level  string
	Format string
}

// CVConfig 描述简历下载。Path 为空时返回占位内容。
type CVConfig struct {
	Path     string
	FileName string
}

// MetricsConfig 控制 /metrics 暴露。
type MetricsConfig struct {
	Enabled bool
}

// env mirrors the environment variables read by Load.
type env struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	CVPath          string        `envconfig:"CV_PATH"`
	CVFileName      string        `envconfig:"CV_FILENAME" default:"John_Kisinga_CV.pdf"`
	MetricsEnabled  bool          `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	var e env
	if err := envconfig.Process("", &e); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	addr, err := resolveAddr(e.Port)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(strings.TrimSpace(e.LogFormat))
	if format != "json" && format != "console" {
		return nil, fmt.Errorf("invalid LOG_FORMAT value: %q", e.LogFormat)
	}

	return &Config{
		Server: ServerConfig{
			Addr:            addr,
			AllowedOrigins:  trimList(e.AllowedOrigins),
			ShutdownTimeout: e.ShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(strings.TrimSpace(e.LogLevel)),
			Format: format,
		},
		CV: CVConfig{
			Path:     strings.TrimSpace(e.CVPath),
			FileName: e.CVFileName,
		},
		Metrics: MetricsConfig{Enabled: e.MetricsEnabled},
	}, nil
}

// trimList 去除逗号分隔项两侧的空白并丢弃空项。
func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// resolveAddr 解析服务器监听地址。
func resolveAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}
