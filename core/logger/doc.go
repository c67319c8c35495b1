// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) selected by level and encoding.
//
// # Context Awareness
//
// The WithFile helper attaches the data file name being resolved to the
// log entry, ensuring that all logs for one file's resolution chain can
// be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Store opened")
//
//	// While resolving a file:
//	l := logger.WithFile(log, "spell.db2")
//	l.Error("Resolution failed", zap.Error(err))
package logger
