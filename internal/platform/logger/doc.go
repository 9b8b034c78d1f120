// Package logger provides structured logging for the service.
//
// It uses the standard library log/slog package with a JSON handler and a
// configurable level, and carries request-scoped loggers through
// context.Context so that handlers, services and stores log with the same
// request ID.
package logger
