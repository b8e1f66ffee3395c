// Package logger provides a factory for configured slog.Logger instances
// plus attribute helpers for the identifiers this service logs most.
//
// Production loggers emit JSON at info level for log aggregation systems;
// development loggers emit text at debug level. Environment selection:
//
//	log := logger.New(logger.WithEnvironment(cfg.Environment, "chatgate"))
package logger
