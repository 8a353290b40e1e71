// Package logger provides the process-wide zap logger and request scoping.
//
// Initialise once in main:
//
//	logger.Init(logger.Config{Env: cfg.Log.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
// In handlers and services, pull the request-scoped logger from the context:
//
//	log := logger.From(ctx)
//	log.Warn("profile fetch failed", logger.Provider(name), logger.Err(err))
package logger
