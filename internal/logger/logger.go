package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide diagnostic logger. User-facing output goes
// through fatih/color in the ui and commands packages instead.
var Logger = New("warn")

// New creates a console zap logger writing to stderr at the given level.
// Unknown levels fall back to warn.
func New(level string) *zap.SugaredLogger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Development = false
	config.DisableStacktrace = true
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// SetLevel replaces the global logger with one at the given level.
func SetLevel(level string) {
	Logger = New(level)
}

func Info(msg string, args ...interface{}) {
	Logger.Infow(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Errorw(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debugw(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warnw(msg, args...)
}
