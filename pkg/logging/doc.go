// Package logging provides structured logging configuration for the server.
//
// This package wraps log/slog so that every component logs the same way. It
// supports configurable log levels, text or JSON output, and an optional
// size-rotated log file.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "port", 8080)
//	logger.Error("worker failed", "error", err)
//
// Log to a rotating file, mirrored to stderr:
//
//	logger := logging.New(logging.Config{
//	    Level:   logging.LevelDebug,
//	    Format:  logging.FormatJSON,
//	    File:    logging.FileConfig{Path: "/var/log/actions-server.log", MaxSizeMB: 50},
//	    Console: true,
//	})
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via an
// option. If no logger is provided, use logging.Nop() for a no-op logger.
package logging
