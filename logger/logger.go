// Package logger is the process-wide structured logger.
package logger

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.SugaredLogger
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	SetLogger(New(level, zapcore.AddSync(os.Stdout)))
}

// New creates a console logger writing to w.
func New(enab zapcore.LevelEnabler, w zapcore.WriteSyncer, options ...zap.Option) *zap.SugaredLogger {
	if enab == nil {
		enab = level
	}
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "message",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	})
	return zap.New(zapcore.NewCore(enc, w, enab), options...).Sugar()
}

// Init configures the global logger from the command line / config file.
// An empty file logs to stdout; otherwise output is appended to file.
func Init(levelName, file string) error {
	lvl, ok := ParseLogLevel(levelName)
	if !ok {
		return errors.Errorf("unknown log level: %q", levelName)
	}
	level.SetLevel(lvl)
	if file == "" {
		return nil
	}
	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	SetLogger(New(level, zapcore.AddSync(f)))
	return nil
}

// ParseLogLevel converts string input to zap log level.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info", "":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "fatal", "critical":
		return zapcore.FatalLevel, true
	}
	return zapcore.InfoLevel, false
}

// Level returns the current level of the global logger.
func Level() zapcore.Level {
	return level.Level()
}

// SetLevel changes the level of the global logger.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

func Logger() *zap.SugaredLogger {
	return global
}

// SetLogger replaces the global logger. Not safe to call concurrently
// with logging.
func SetLogger(l *zap.SugaredLogger) {
	global = l
}

// Named returns a child of the global logger for one component.
func Named(name string) *zap.SugaredLogger {
	return global.Named(name)
}

func Sync() {
	_ = global.Sync()
}

func Debug(args ...any)                 { global.Debug(args...) }
func Debugf(format string, args ...any) { global.Debugf(format, args...) }
func Info(args ...any)                  { global.Info(args...) }
func Infof(format string, args ...any)  { global.Infof(format, args...) }
func Warn(args ...any)                  { global.Warn(args...) }
func Warnf(format string, args ...any)  { global.Warnf(format, args...) }
func Error(args ...any)                 { global.Error(args...) }
func Errorf(format string, args ...any) { global.Errorf(format, args...) }

// Fatalf logs and exits with status 1.
func Fatalf(format string, args ...any) { global.Fatalf(format, args...) }
