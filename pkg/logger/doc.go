// Package logger creates configured slog loggers with sensible defaults:
// JSON at info level for production, text at debug level for development.
// Attribute helpers keep log keys consistent across the codebase.
//
// Example:
//
//	log := logger.New(logger.WithDevelopment("uploadkit"))
//	uploader, err := upload.New(root, upload.WithLogger(log))
package logger
