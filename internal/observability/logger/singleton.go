package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init builds the process-wide logger. Only the first call has any effect.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L returns the process-wide logger, initialising a dev logger if Init was
// never called.
func L() *zap.Logger {
	Init(Config{Env: "dev", Level: "info"})
	return instance
}

// Named returns a child logger for a component.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered entries.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
