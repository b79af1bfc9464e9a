package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a logger
type Logger struct {
	*zap.SugaredLogger
}

// New creates a logger that writes JSON to stdout, and errors to stderr.
func New(loglevel zapcore.Level) *Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	stderrLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel && lvl >= loglevel
	})
	stdoutLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= loglevel && lvl < zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), stderrLevel),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), stdoutLevel),
	)
	log := zap.New(core)

	// Redirect stdlib log package to zap
	zap.RedirectStdLog(log)

	return &Logger{log.Sugar()}
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}
