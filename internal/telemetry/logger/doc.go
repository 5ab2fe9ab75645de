// Package logger provides structured logging for canikit.
//
// It wraps log/slog:
//
//   - logger.go: handler setup and the dynamic level
//   - context.go: context propagation of loggers and request ids
//   - redact.go: masking of passphrases, secrets and seed material
//
// Request ids are ULIDs, so they sort by creation time.
package logger
