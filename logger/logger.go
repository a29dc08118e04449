package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with recs context.
type Logger struct {
	zl      zerolog.Logger
	service string
}

// Init configures the global logger. Component loggers obtained earlier
// through Get keep their old configuration; see RegisterDefaults.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	SetGlobalLogger(New(cfg, "recs"))
}

// New creates a logger writing to the configured output.
func New(cfg *Config, serviceName string) *Logger {
	return NewWithWriter(cfg, serviceName, outputWriter(cfg.Output))
}

// NewWithWriter creates a logger writing to w instead of the configured
// output. An unknown level logs at info.
func NewWithWriter(cfg *Config, serviceName string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
		zl = zerolog.New(consoleWriter(cfg, serviceName, w))
	default:
		zl = zerolog.New(w)
	}

	zc := zl.Level(level).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{zl: zc.Logger(), service: serviceName}
}

// NewDefault creates a logger with the default configuration.
func NewDefault(serviceName string) *Logger {
	var cfg Config
	cfg.ApplyDefaults()
	return New(&cfg, serviceName)
}

type contextKey int

const (
	runIDKey contextKey = iota
	traceIDKey
)

// ContextWithRunID stores the pipeline run id in ctx.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// ContextWithTraceID stores a trace id in ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// WithContext returns a logger carrying the run and trace ids found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zc := l.zl.With()
	if v, ok := ctx.Value(runIDKey).(string); ok {
		zc = zc.Str(FieldRunID, v)
	}
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		zc = zc.Str(FieldTraceID, v)
	}
	return &Logger{zl: zc.Logger(), service: l.service}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{zl: l.zl.With().Str(FieldComponent, name).Logger(), service: l.service}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(l.zl.Debug(), msg, fields)
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(l.zl.Info(), msg, fields)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(l.zl.Warn(), msg, fields)
}

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(l.zl.Error(), msg, fields)
}

// log sends msg on event. A disabled level yields a nil event.
func (l *Logger) log(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	if event == nil {
		return
	}
	for _, fm := range fields {
		for k, v := range fm {
			event.Interface(k, v)
		}
	}
	event.Msg(msg)
}

var globalLogger atomic.Pointer[Logger]

// SetGlobalLogger replaces the global logger.
func SetGlobalLogger(l *Logger) { globalLogger.Store(l) }

// GetGlobalLogger returns the global logger, installing a default one on
// first use.
func GetGlobalLogger() *Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	globalLogger.CompareAndSwap(nil, NewDefault("recs"))
	return globalLogger.Load()
}

func outputWriter(output string) *os.File {
	if strings.EqualFold(output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

var levelTags = map[string]struct{ tag, color string }{
	"debug": {"DBG", "\033[36m"},
	"info":  {"INF", "\033[32m"},
	"warn":  {"WRN", "\033[33m"},
	"error": {"ERR", "\033[31m"},
	"fatal": {"FTL", "\033[35m"},
}

// consoleWriter renders "15:04:05 recs WRN message key:value".
func consoleWriter(cfg *Config, serviceName string, w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			lvl := fmt.Sprint(i)
			t, ok := levelTags[lvl]
			if !ok {
				t.tag = strings.ToUpper(lvl)
			}
			if cfg.NoColor || t.color == "" {
				return serviceName + " " + t.tag
			}
			return serviceName + " " + t.color + t.tag + "\033[0m"
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
	}
}
