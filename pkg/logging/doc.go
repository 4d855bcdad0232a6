// Package logging provides structured logging configuration for mockario.
//
// This package wraps log/slog so every component logs the same way.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "port", 3001)
//
// Components accept a *slog.Logger in their constructor or via an option.
// If no logger is provided, they use logging.Nop().
//
// Request history shown to users lives in pkg/requestlog, not here.
package logging
