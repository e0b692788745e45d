package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-weather/configs"
)

var (
	logger *zap.Logger
	Logger *zap.SugaredLogger
)

func init() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "@timestamp"
	encoderConfig.CallerKey = "logger_name"

	level, err := zapcore.ParseLevel(configs.Env.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	SetLogger(zap.New(core,
		zap.Fields(zap.String("logName", configs.Env.ApplicationName)),
		zap.AddCallerSkip(1)))
}

// SetLogger replaces the package logger and returns a func that puts the
// previous one back. Tests use it to capture output.
func SetLogger(l *zap.Logger) (restore func()) {
	previous := logger
	logger = l
	Logger = l.Sugar()

	return func() {
		if previous != nil {
			SetLogger(previous)
		}
	}
}

// Info logs a message at InfoLevel. The message includes any fields passed at the log site, as well as any fields accumulated on the logger.
func Info(message string, fields ...zap.Field) {
	logger.Info(message, fields...)
}

// Infow logs a message with some additional context. The variadic key-value pairs are treated as they are in With.
func Infow(message string, keysAndValues ...any) {
	Logger.Infow(message, keysAndValues...)
}

// Infof formats the message according to the format specifier and logs it at InfoLevel.
func Infof(message string, args ...any) {
	Logger.Infof(message, args...)
}

// Debug logs a message at DebugLevel.
func Debug(message string, fields ...zap.Field) {
	logger.Debug(message, fields...)
}

// Debugw logs a message with some additional context at DebugLevel.
func Debugw(message string, keysAndValues ...any) {
	Logger.Debugw(message, keysAndValues...)
}

// Debugf formats the message according to the format specifier and logs it at DebugLevel.
func Debugf(message string, args ...any) {
	Logger.Debugf(message, args...)
}

// Warn logs a message at WarnLevel.
func Warn(message string, fields ...zap.Field) {
	logger.Warn(message, fields...)
}

// Warnw logs a message with some additional context at WarnLevel.
func Warnw(message string, keysAndValues ...any) {
	Logger.Warnw(message, keysAndValues...)
}

// Warnf formats the message according to the format specifier and logs it at WarnLevel.
func Warnf(message string, args ...any) {
	Logger.Warnf(message, args...)
}

// Error logs a message at ErrorLevel. The message includes any fields passed at the log site, as well as any fields accumulated on the logger.
func Error(message string, fields ...zap.Field) {
	logger.Error(message, fields...)
}

// Errorw logs a message with some additional context. The variadic key-value pairs are treated as they are in With.
func Errorw(message string, keysAndValues ...any) {
	Logger.Errorw(message, keysAndValues...)
}

// Errorf formats the message according to the format specifier and logs it at ErrorLevel.
func Errorf(message string, args ...any) {
	Logger.Errorf(message, args...)
}

// Fatal logs a message at FatalLevel, then calls os.Exit.
func Fatal(message string, fields ...zap.Field) {
	logger.Fatal(message, fields...)
}

// Fatalf formats the message according to the format specifier and calls os.Exit.
func Fatalf(message string, args ...any) {
	Logger.Fatalf(message, args...)
}
