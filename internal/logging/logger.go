package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// L is the shared structured logger used across the project.
	L    = zap.NewNop()
	once sync.Once
)

// Init builds the global logger at the given level ("debug", "info", "warn",
// "error"); unknown levels fall back to info. Only the first call has effect.
func Init(level string) {
	once.Do(func() {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			lvl = zapcore.InfoLevel
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.Sampling = nil
		logger, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		L = logger
	})
}
