// Package logging builds the zap logger shared by the commands.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a development logger at debug level when verbose, a nop
// logger when quiet, and a production logger at warn level otherwise.
// Logs go to stderr so report output on stdout stays clean.
func New(verbose, quiet bool) (*zap.Logger, error) {
	switch {
	case quiet && !verbose:
		return zap.NewNop(), nil
	case verbose:
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	default:
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}
}
