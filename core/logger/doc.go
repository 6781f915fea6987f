// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the CLI (console encoding, colored levels)
// and for the HTTP API (json encoding), and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the log entry, so
// all logs of one request can be correlated. WithSource tags entries with the sync source
// (directory, messages, notes, imap) a command is working on.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log = logger.WithSource(log, "imap")
//	log.Info("Fetched messages", zap.Int("count", n))
package logger
