package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "finance-service"

// New builds the service logger. Production uses the JSON encoder, everything
// else the console one; an unknown level falls back to debug.
func New(levelEnv string, production bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if production {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)

	if levelEnv != "" {
		if err := cfg.Level.UnmarshalText([]byte(levelEnv)); err != nil {
			fmt.Fprintf(os.Stderr, "bad LOG_LEVEL=%s, fallback to debug\n", levelEnv)
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
	}

	l, err := cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("service", serviceName)), nil
}

func Must(levelEnv string, production bool) *zap.Logger {
	l, err := New(levelEnv, production)
	if err != nil {
		panic(err)
	}
	return l
}
