// Package acctlog configures the process-wide logger, grounded on
// config/loggerConfig.go's zap.Config-from-JSON pattern, simplified for a
// single-binary CLI instead of the multi-logger (core + per-handler) setup
// that pattern originally served.
package acctlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.SugaredLogger

func init() {
	logger = build(false)
}

func build(verbose bool) *zap.SugaredLogger {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Development:      true,
		Encoding:         "console",
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:   "message",
			LevelKey:     "level",
			EncodeLevel:  zapcore.LowercaseLevelEncoder,
			CallerKey:    "caller",
			TimeKey:      "ts",
			EncodeTime:   zapcore.ISO8601TimeEncoder,
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	built, err := cfg.Build()
	if err != nil {
		panic("bad log configuration: " + err.Error())
	}
	return built.Sugar()
}

// SetVerbose rebuilds the logger at debug level (spec supplement: -v/--verbose).
func SetVerbose(verbose bool) {
	logger = build(verbose)
}

// GetLogger returns the process-wide logger.
func GetLogger() *zap.SugaredLogger {
	return logger
}
