// Package logger 对 zerolog 做一层薄封装，提供全局日志实例和带上下文字段的子日志
package logger

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ContextKey 请求级日志在 gin.Context 中的键
const ContextKey = "logger"

// Logger 包装 zerolog.Logger
type Logger struct {
	logger zerolog.Logger
}

// Config 日志配置
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json, console
	Output      io.Writer
	EnableColor bool
}

var globalLogger *Logger

// Initialize 初始化全局日志
func Initialize(cfg Config) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.EnableColor,
		}
	}

	l := zerolog.New(output).With().Timestamp().Logger()
	globalLogger = &Logger{logger: l}
	log.Logger = l
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get 返回全局日志（未初始化时使用默认配置）
func Get() *Logger {
	if globalLogger == nil {
		Initialize(Config{Level: "info", Format: "console", EnableColor: true})
	}
	return globalLogger
}

// New 基于指定 writer 创建独立日志，主要给测试用
func New(w io.Writer) *Logger {
	return &Logger{logger: zerolog.New(w).With().Timestamp().Logger()}
}

// FromContext 取出请求级日志，没有则返回全局日志
// gin.Context 的 Value 会查 c.Keys，所以直接传 *gin.Context 也可以
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ContextKey).(*Logger); ok && l != nil {
			return l
		}
	}
	return Get()
}

// WithContext 返回附带额外字段的子日志
func (l *Logger) WithContext(fields map[string]interface{}) *Logger {
	c := l.logger.With()
	for k, v := range fields {
		c = c.Interface(k, v)
	}
	return &Logger{logger: c.Logger()}
}

// Zerolog 暴露底层 zerolog.Logger
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	write(l.logger.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	write(l.logger.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	write(l.logger.Warn(), msg, fields)
}

// Error 记录错误日志，err 可以为 nil
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	write(l.logger.Error().Err(err), msg, fields)
}

// Fatal 记录日志后退出进程
func (l *Logger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	write(l.logger.Fatal().Err(err), msg, fields)
}

// write 统一补充 caller 字段（跳过 write 本身和调用它的方法）
func write(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	if event == nil {
		return
	}
	if pc, file, line, ok := runtime.Caller(2); ok {
		event = event.Str("caller", zerolog.CallerMarshalFunc(pc, file, line))
	}
	if len(fields) > 0 {
		for k, v := range fields[0] {
			event = event.Interface(k, v)
		}
	}
	event.Msg(msg)
}

// ==================== 包级便捷函数 ====================

func Debug(msg string, fields ...map[string]interface{}) {
	write(Get().logger.Debug(), msg, fields)
}

func Info(msg string, fields ...map[string]interface{}) {
	write(Get().logger.Info(), msg, fields)
}

func Warn(msg string, fields ...map[string]interface{}) {
	write(Get().logger.Warn(), msg, fields)
}

func Error(msg string, err error, fields ...map[string]interface{}) {
	write(Get().logger.Error().Err(err), msg, fields)
}

func Fatal(msg string, err error, fields ...map[string]interface{}) {
	write(Get().logger.Fatal().Err(err), msg, fields)
}

// WithContext 基于全局日志创建子日志
func WithContext(fields map[string]interface{}) *Logger {
	return Get().WithContext(fields)
}
